package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCoversEveryKind(t *testing.T) {
	cases := map[Kind]int{
		Validation:     http.StatusBadRequest,
		Duplicate:      http.StatusConflict,
		NotFound:       http.StatusNotFound,
		Authentication: http.StatusUnauthorized,
		Authorization:  http.StatusForbidden,
		Internal:       http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, Status(kind), kind.String())
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("create place: %w", NewNotFound("Owner not found"))

	assert.Equal(t, NotFound, KindOf(err))
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrDuplicate))
	assert.Equal(t, Internal, KindOf(errors.New("boom")))
}

func TestValidationErrorKeepsFields(t *testing.T) {
	err := NewValidationError([]FieldError{
		{Field: "price", Kind: ViolationOutOfRange, Message: "Price must be a positive number"},
		{Field: "title", Kind: ViolationRequired, Message: "Title is required"},
	})

	assert.Equal(t, "Price must be a positive number; Title is required", err.Message)
	assert.Len(t, err.Fields, 2)
	assert.Equal(t, "price", err.Fields[0].Field)
}

func TestRenderHidesInternalCause(t *testing.T) {
	status, body := Render(Wrap(errors.New("dial tcp: refused"), "load users"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal Server Error", body.Error)
	assert.Empty(t, body.Fields)
}
