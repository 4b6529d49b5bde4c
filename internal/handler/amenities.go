package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hbnb/internal/middleware"
	"github.com/iliyamo/hbnb/internal/model"
	"github.com/iliyamo/hbnb/internal/service"
)

// AmenityHandler serves /amenities. Writes are admin-only at the router.
type AmenityHandler struct{ base }

func NewAmenityHandler(svc *service.Service) *AmenityHandler {
	return &AmenityHandler{base: newBase(svc)}
}

func (h *AmenityHandler) Create(c echo.Context) error {
	var in model.AmenityInput
	if err := bind(c, &in); err != nil {
		return err
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	a, err := h.Svc.CreateAmenity(ctx, middleware.Identity(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *AmenityHandler) List(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	all, err := h.Svc.ListAmenities(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, all)
}

func (h *AmenityHandler) Get(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	a, err := h.Svc.GetAmenity(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

func (h *AmenityHandler) Update(c echo.Context) error {
	var patch model.AmenityPatch
	if err := bind(c, &patch); err != nil {
		return err
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	a, err := h.Svc.UpdateAmenity(ctx, middleware.Identity(c), c.Param("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

// Places lists the places offering the amenity.
func (h *AmenityHandler) Places(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	places, err := h.Svc.PlacesWithAmenity(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, places)
}
