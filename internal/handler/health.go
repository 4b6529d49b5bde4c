package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hbnb/internal/middleware"
)

const healthTimeout = 2 * time.Second

// HealthHandler answers load balancer checks. With a ping configured the
// backing database must respond before the check reports "ok".
type HealthHandler struct {
	ping func(context.Context) error
}

// NewHealthHandler accepts a nil ping for stores that cannot go away, such
// as the in-memory one.
func NewHealthHandler(ping func(context.Context) error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

func (h *HealthHandler) Check(c echo.Context) error {
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			middleware.GetLogger(c).Warn().Err(err).Msg("health: store ping failed")
			return c.String(http.StatusServiceUnavailable, "unavailable")
		}
	}
	return c.String(http.StatusOK, "ok")
}
