package middleware

// identity.go holds the helpers shared across middleware and handlers for
// reading the authenticated caller. Authenticate stores the identity under
// IdentityKey and the bare user id under UserIDKey.

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hbnb/internal/access"
)

const (
	IdentityKey = "identity"
	UserIDKey   = "user_id"
)

// SetIdentity stores the verified caller in the context.
func SetIdentity(c echo.Context, id *access.Identity) {
	c.Set(IdentityKey, id)
	c.Set(UserIDKey, id.UserID)
}

// Identity returns the verified caller, or nil for anonymous requests.
func Identity(c echo.Context) *access.Identity {
	if id, ok := c.Get(IdentityKey).(*access.Identity); ok {
		return id
	}
	return nil
}

// UserID returns the caller's id, or "" when anonymous.
func UserID(c echo.Context) string {
	if id := Identity(c); id != nil {
		return id.UserID
	}
	return ""
}

// rateSubject identifies the caller for rate limiting; anonymous callers
// share the "guest" bucket per ip.
func rateSubject(c echo.Context) string {
	if id := UserID(c); id != "" {
		return id
	}
	return "guest"
}
