package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSONOutsideDevelopment(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter("production", "debug", &buf)

	l.Info().Str("user_id", "u-1").Msg("user created")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "user created", line["message"])
	assert.Equal(t, "hbnb-api", line["service"])
	assert.Equal(t, "u-1", line["user_id"])
}

func TestNewHonoursLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter("production", "warn", &buf)

	l.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	l.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter("production", "loud", &buf)

	l.Debug().Msg("hidden")
	assert.Empty(t, buf.String())
}
