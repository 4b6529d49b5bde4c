package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hbnb/internal/middleware"
	"github.com/iliyamo/hbnb/internal/model"
	"github.com/iliyamo/hbnb/internal/service"
)

// PlaceHandler serves /places.
type PlaceHandler struct{ base }

func NewPlaceHandler(svc *service.Service) *PlaceHandler { return &PlaceHandler{base: newBase(svc)} }

// Create lists a place owned by the caller.
func (h *PlaceHandler) Create(c echo.Context) error {
	var in model.PlaceInput
	if err := bind(c, &in); err != nil {
		return err
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	p, err := h.Svc.CreatePlace(ctx, middleware.Identity(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *PlaceHandler) List(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	places, err := h.Svc.ListPlaces(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, places)
}

// Get returns the place with its owner and amenities inlined.
func (h *PlaceHandler) Get(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	p, err := h.Svc.GetPlace(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Update is allowed for the owner or an admin; ownership is checked in
// the service once the place is loaded.
func (h *PlaceHandler) Update(c echo.Context) error {
	var patch model.PlacePatch
	if err := bind(c, &patch); err != nil {
		return err
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	p, err := h.Svc.UpdatePlace(ctx, middleware.Identity(c), c.Param("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Reviews lists the reviews of one place.
func (h *PlaceHandler) Reviews(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	reviews, err := h.Svc.ReviewsForPlace(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviews)
}
