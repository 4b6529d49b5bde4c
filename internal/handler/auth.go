package handler

import (
	"fmt"
	"net/http" // HTTP status codes and primitives
	"strings"  // string manipulation utilities
	"time"

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/iliyamo/hbnb/internal/errs"
	"github.com/iliyamo/hbnb/internal/middleware"
	"github.com/iliyamo/hbnb/internal/service"
	"github.com/iliyamo/hbnb/internal/utils" // token issuing
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	base
	Secret string
	TTL    time.Duration
}

func NewAuthHandler(svc *service.Service, secret string, ttl time.Duration) *AuthHandler {
	return &AuthHandler{base: newBase(svc), Secret: secret, TTL: ttl}
}

// ----- DTOs -----

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResp struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Login verifies the credentials and returns a signed access token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := bind(c, &req); err != nil {
		return err
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return errs.NewValidationError([]errs.FieldError{{
			Field: "email", Kind: errs.ViolationRequired, Message: "Email and password are required",
		}})
	}

	ctx, cancel := withTimeout(c)
	defer cancel()

	u, err := h.Svc.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}
	access, err := utils.NewAccessToken(h.Secret, u.ID, u.Email, u.IsAdmin, h.TTL)
	if err != nil {
		return errs.Wrap(err, "issue access token")
	}

	middleware.GetLogger(c).Info().Str("user_id", u.ID).Msg("login succeeded")
	return c.JSON(http.StatusOK, loginResp{
		AccessToken: access.Token,
		TokenType:   "Bearer",
		ExpiresAt:   access.Exp,
	})
}

// Protected greets the authenticated caller; clients use it to check a
// token.
func (h *AuthHandler) Protected(c echo.Context) error {
	id := middleware.Identity(c)
	if id == nil {
		return errs.NewAuthentication("Missing authorization token")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":  fmt.Sprintf("Hello, user %s", id.UserID),
		"user_id":  id.UserID,
		"email":    id.Email,
		"is_admin": id.IsAdmin,
	})
}
