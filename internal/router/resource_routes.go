package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hbnb/internal/access"
	"github.com/iliyamo/hbnb/internal/handler"
	"github.com/iliyamo/hbnb/internal/middleware" // access gate
)

var (
	authenticated = middleware.Require(access.Authenticated)
	adminOnly     = middleware.Require(access.AdminOnly)
)

// RegisterUsers registers /users. Creating accounts is admin-only; an
// update is gated to a logged-in caller here and to self-or-admin in the
// service.
func RegisterUsers(g *echo.Group, h *handler.UserHandler) {
	g.POST("/users", h.Create, adminOnly)
	g.GET("/users", h.List)
	g.GET("/users/:id", h.Get)
	g.PUT("/users/:id", h.Update, authenticated)
	g.GET("/users/:id/places", h.Places)
	g.GET("/users/:id/reviews", h.Reviews)
}

// RegisterAmenities registers /amenities. Reads are public, writes are
// admin-only.
func RegisterAmenities(g *echo.Group, h *handler.AmenityHandler) {
	g.POST("/amenities", h.Create, adminOnly)
	g.GET("/amenities", h.List)
	g.GET("/amenities/:id", h.Get)
	g.PUT("/amenities/:id", h.Update, adminOnly)
	g.GET("/amenities/:id/places", h.Places)
}

// RegisterPlaces registers /places. Any logged-in user may list a place;
// the owner or an admin may edit it.
func RegisterPlaces(g *echo.Group, h *handler.PlaceHandler) {
	g.POST("/places", h.Create, authenticated)
	g.GET("/places", h.List)
	g.GET("/places/:id", h.Get)
	g.PUT("/places/:id", h.Update, authenticated)
	g.GET("/places/:id/reviews", h.Reviews)
}

// RegisterReviews registers /reviews. The author or an admin may edit or
// delete a review. /reviews/places/:id/reviews mirrors
// /places/:id/reviews.
func RegisterReviews(g *echo.Group, h *handler.ReviewHandler, places *handler.PlaceHandler) {
	g.POST("/reviews", h.Create, authenticated)
	g.GET("/reviews", h.List)
	g.GET("/reviews/:id", h.Get)
	g.PUT("/reviews/:id", h.Update, authenticated)
	g.DELETE("/reviews/:id", h.Delete, authenticated)
	g.GET("/reviews/places/:id/reviews", places.Reviews)
}
