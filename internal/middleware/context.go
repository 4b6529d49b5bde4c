package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// LoggerKey is the echo context key of the request-scoped logger.
const LoggerKey = "logger"

// ContextEnhancer stores a child of base carrying request_id, method, path
// and ip. Handlers read it back with GetLogger. Authenticate later adds
// user_id to the same logger.
func ContextEnhancer(base zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			l := base.With().
				Str("request_id", GetRequestID(c)).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("ip", c.RealIP()).
				Logger()
			c.Set(LoggerKey, &l)
			c.SetRequest(c.Request().WithContext(l.WithContext(c.Request().Context())))
			return next(c)
		}
	}
}

// GetLogger returns the request logger, or a no-op logger when
// ContextEnhancer did not run.
func GetLogger(c echo.Context) *zerolog.Logger {
	if l, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return l
	}
	nop := zerolog.Nop()
	return &nop
}

func enrichLogger(c echo.Context, userID string) {
	l := GetLogger(c).With().Str("user_id", userID).Logger()
	c.Set(LoggerKey, &l)
}
