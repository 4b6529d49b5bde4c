package middleware // reusable HTTP middleware for the API

import (
	"strings" // prefix handling on the Authorization header

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/iliyamo/hbnb/internal/access"
	"github.com/iliyamo/hbnb/internal/utils" // token parsing shared with the login handler
)

// tokenErrorKey records why a presented token was rejected so Require can
// report it on protected routes.
const tokenErrorKey = "token_error"

// Authenticate returns an Echo middleware that validates an optional
// Bearer access token. When the token is valid the caller's identity is
// stored in the context. A missing header leaves the request anonymous; a
// malformed, expired or foreign-signed token is remembered but does not
// fail the request here, because public routes must keep working. Require
// turns the remembered failure into 401 on routes that need a caller.
func Authenticate(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// No header at all: anonymous caller.
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if auth == "" {
				return next(c)
			}
			// Anything other than "Bearer <token>" counts as a bad token.
			raw, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				c.Set(tokenErrorKey, "Missing bearer token")
				return next(c)
			}

			// ParseAccessToken checks the HMAC signature, expiry and subject.
			claims, err := utils.ParseAccessToken(secret, strings.TrimSpace(raw))
			if err != nil {
				c.Set(tokenErrorKey, "Invalid or expired token")
				return next(c)
			}

			// Store the identity and tag the request logger with the user.
			SetIdentity(c, &access.Identity{
				UserID:  claims.Subject,
				Email:   claims.Email,
				IsAdmin: claims.IsAdmin,
			})
			enrichLogger(c, claims.Subject)
			return next(c)
		}
	}
}
