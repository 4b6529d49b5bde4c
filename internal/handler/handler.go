package handler // handler defines http handlers

import (
	"context" // request-scoped deadlines for service calls
	"time"    // handler timeout

	"github.com/labstack/echo/v4" // echo defines request context types

	"github.com/iliyamo/hbnb/internal/errs"
	"github.com/iliyamo/hbnb/internal/service"
)

// requestTimeout bounds every service call made by a handler.
const requestTimeout = 5 * time.Second

// base is embedded by every resource handler. It carries the facade all
// handlers talk to.
type base struct {
	Svc *service.Service
}

func newBase(svc *service.Service) base {
	if svc == nil {
		panic("nil service passed to handler") // wiring bug, fail at startup
	}
	return base{Svc: svc}
}

// bind decodes the request body into dst. Any decoding failure becomes a
// 400 with a generic message; the decoder's text is not shown to clients.
func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return errs.NewBadRequest("Invalid input data")
	}
	return nil
}

// withTimeout derives the service context from the request context.
func withTimeout(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), requestTimeout)
}
