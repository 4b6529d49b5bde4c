package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hbnb/internal/access"
	"github.com/iliyamo/hbnb/internal/config"
	"github.com/iliyamo/hbnb/internal/errs"
	"github.com/iliyamo/hbnb/internal/utils"
)

const secret = "test-secret-0123456789"

func newEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = GlobalErrorHandler
	e.Use(RequestID(), ContextEnhancer(zerolog.Nop()), Authenticate(secret))
	return e
}

func token(t *testing.T, userID string, admin bool, ttl time.Duration) string {
	t.Helper()
	tok, err := utils.NewAccessToken(secret, userID, userID+"@example.com", admin, ttl)
	require.NoError(t, err)
	return tok.Token
}

func do(e *echo.Echo, method, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRequestIDIsGeneratedOrReused(t *testing.T) {
	e := newEcho()
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, GetRequestID(c)) })

	rec := do(e, http.MethodGet, "/ping", "")
	generated := rec.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestAuthenticateIsOptional(t *testing.T) {
	e := newEcho()
	e.GET("/whoami", func(c echo.Context) error {
		if id := Identity(c); id != nil {
			return c.String(http.StatusOK, id.UserID)
		}
		return c.String(http.StatusOK, "anonymous")
	})

	assert.Equal(t, "anonymous", do(e, http.MethodGet, "/whoami", "").Body.String())
	assert.Equal(t, "anonymous", do(e, http.MethodGet, "/whoami", "garbage").Body.String())
	assert.Equal(t, "u-1", do(e, http.MethodGet, "/whoami", token(t, "u-1", false, time.Hour)).Body.String())
}

func TestRequireAuthenticated(t *testing.T) {
	e := newEcho()
	e.GET("/private", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }, Require(access.Authenticated))

	rec := do(e, http.MethodGet, "/private", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Missing authorization token", decode(t, rec)["error"])

	expired := token(t, "u-1", false, -time.Minute)
	rec = do(e, http.MethodGet, "/private", expired)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or expired token", decode(t, rec)["error"])

	rec = do(e, http.MethodGet, "/private", token(t, "u-1", false, time.Hour))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	e := newEcho()
	e.POST("/admin", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }, Require(access.AdminOnly))

	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodPost, "/admin", "").Code)
	assert.Equal(t, http.StatusForbidden, do(e, http.MethodPost, "/admin", token(t, "u", false, time.Hour)).Code)
	assert.Equal(t, http.StatusNoContent, do(e, http.MethodPost, "/admin", token(t, "a", true, time.Hour)).Code)
}

func TestGlobalErrorHandlerShapes(t *testing.T) {
	e := newEcho()
	e.GET("/validation", func(c echo.Context) error {
		return errs.NewValidationError([]errs.FieldError{{Field: "price", Kind: errs.ViolationOutOfRange, Message: "Price must be a positive number"}})
	})
	e.GET("/boom", func(c echo.Context) error { return assert.AnError })

	rec := do(e, http.MethodGet, "/validation", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Price must be a positive number", body["error"])
	require.Len(t, body["fields"], 1)

	rec = do(e, http.MethodGet, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal Server Error", decode(t, rec)["error"])
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())

	rec = do(e, http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decode(t, rec)["error"])
}

func TestRedisMiddlewaresPassThroughWithoutClient(t *testing.T) {
	e := newEcho()
	calls := 0
	h := func(c echo.Context) error { calls++; return c.String(http.StatusOK, "fresh") }
	cfg := config.DefaultCacheConfig()
	e.GET("/cached", h, Cache(nil, cfg), Invalidate(nil, cfg), RateLimit(nil, config.DefaultRateLimitConfig()))

	for i := 0; i < 3; i++ {
		rec := do(e, http.MethodGet, "/cached", "")
		assert.Equal(t, "fresh", rec.Body.String())
		assert.Empty(t, rec.Header().Get("X-Cache"))
	}
	assert.Equal(t, 3, calls)
}

func TestCacheKeyUsesConcretePath(t *testing.T) {
	e := echo.New()
	cfg := config.DefaultCacheConfig()
	key := func(target string, gen int64) string {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), httptest.NewRecorder())
		c.SetPath("/places/:id")
		return cacheKeyFrom(cfg, gen, c)
	}

	assert.NotEqual(t, key("/places/a", 0), key("/places/b", 0))
	assert.NotEqual(t, key("/places/a", 0), key("/places/a", 1))
	assert.NotEqual(t, key("/places/a?x=1", 0), key("/places/a?x=2", 0))
	assert.Equal(t, key("/places/a", 3), key("/places/a", 3))
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	bs, err := encodePayload(http.StatusOK, hdr, []byte(`{"ok":true}`))
	require.NoError(t, err)

	status, back, body, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", back.Get("Content-Type"))
	assert.True(t, bytes.Equal([]byte(`{"ok":true}`), body))

	_, _, _, ok = decodePayload([]byte{0, 1})
	assert.False(t, ok)
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.7")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/api/v1/auth/login")

	cfg := config.DefaultRateLimitConfig()
	assert.Equal(t, "hbnb:rl:ip:10.0.0.7:route:POST /api/v1/auth/login", buildRateKey(cfg, c))

	cfg.KeyStrategy = "ip_user"
	assert.Equal(t, "hbnb:rl:ip:10.0.0.7:user:guest", buildRateKey(cfg, c))

	SetIdentity(c, &access.Identity{UserID: "u-9"})
	cfg.KeyStrategy = "user"
	assert.Equal(t, "hbnb:rl:user:u-9", buildRateKey(cfg, c))
}

func TestAsInt64(t *testing.T) {
	assert.Equal(t, int64(3), asInt64(int64(3)))
	assert.Equal(t, int64(4), asInt64("4"))
	assert.Equal(t, int64(0), asInt64(nil))
}
