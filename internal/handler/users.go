package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hbnb/internal/middleware"
	"github.com/iliyamo/hbnb/internal/model"
	"github.com/iliyamo/hbnb/internal/service"
)

// UserHandler serves /users.
type UserHandler struct{ base }

func NewUserHandler(svc *service.Service) *UserHandler { return &UserHandler{base: newBase(svc)} }

// Create registers a user. The route is admin-only.
func (h *UserHandler) Create(c echo.Context) error {
	var in model.UserInput
	if err := bind(c, &in); err != nil {
		return err
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	u, err := h.Svc.CreateUser(ctx, middleware.Identity(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	users, err := h.Svc.ListUsers(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Get(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	u, err := h.Svc.GetUser(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// Update lets a user edit their own names; admins may change any field.
func (h *UserHandler) Update(c echo.Context) error {
	var patch model.UserPatch
	if err := bind(c, &patch); err != nil {
		return err
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	u, err := h.Svc.UpdateUser(ctx, middleware.Identity(c), c.Param("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// Places lists the places owned by the user.
func (h *UserHandler) Places(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	places, err := h.Svc.PlacesOwnedBy(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, places)
}

// Reviews lists the reviews written by the user.
func (h *UserHandler) Reviews(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	reviews, err := h.Svc.ReviewsByUser(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviews)
}
