package middleware // middleware provides shared request processing for handlers

import (
	"github.com/labstack/echo/v4" // echo provides middleware chaining and context

	"github.com/iliyamo/hbnb/internal/access"
	"github.com/iliyamo/hbnb/internal/errs"
)

// Require returns a middleware enforcing policy before the handler runs.
// It covers the policies that need no resource owner (Authenticated and
// AdminOnly); ownership checks happen in the service once the resource is
// loaded. Failures are returned as errors and rendered by
// GlobalErrorHandler: 401 without a valid token, 403 without the admin
// flag.
func Require(policy access.Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch access.Decide(Identity(c), policy, "") {
			case access.Allow:
				return next(c)
			case access.Unauthenticated:
				// Report why the presented token was refused, if one was.
				msg := "Missing authorization token"
				if reason, ok := c.Get(tokenErrorKey).(string); ok {
					msg = reason
				}
				return errs.NewAuthentication(msg)
			}
			return errs.NewAuthorization("Admin privileges required")
		}
	}
}
