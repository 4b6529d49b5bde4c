package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/iliyamo/hbnb/internal/errs"
)

// RequestLogger writes one access line per request through the request
// logger. Status comes from the returned error when the handler failed,
// since GlobalErrorHandler has not written the response yet.
func RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogMethod:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			status := v.Status
			if v.Error != nil {
				status, _ = render(v.Error)
			}

			l := GetLogger(c)
			var e *zerolog.Event
			switch {
			case status >= 500:
				e = l.Error().Err(v.Error)
			case status >= 400:
				e = l.Warn()
			default:
				e = l.Info()
			}
			if id := UserID(c); id != "" {
				e = e.Str("user_id", id)
			}
			e.Dur("latency", v.Latency).
				Int("status", status).
				Str("uri", v.URI).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")
			return nil
		},
	})
}

// render maps any error to a status and the JSON error body.
func render(err error) (int, errs.Body) {
	var appErr *errs.Error
	if errors.As(err, &appErr) {
		return errs.Render(appErr)
	}
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		msg, ok := echoErr.Message.(string)
		if !ok {
			msg = http.StatusText(echoErr.Code)
		}
		if echoErr.Code == http.StatusNotFound {
			msg = "Route not found"
		}
		return echoErr.Code, errs.Body{Error: msg}
	}
	return errs.Render(errs.Wrap(err, "unhandled"))
}

// GlobalErrorHandler is installed as echo's HTTPErrorHandler. Client
// errors are logged at debug, server errors with their cause.
func GlobalErrorHandler(err error, c echo.Context) {
	status, body := render(err)

	l := GetLogger(c)
	if status >= 500 {
		l.Error().Stack().Err(err).Int("status", status).Msg("request failed")
	} else {
		l.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	if c.Response().Committed {
		return
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, body)
}
