package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hbnb/internal/middleware"
	"github.com/iliyamo/hbnb/internal/model"
	"github.com/iliyamo/hbnb/internal/service"
)

// ReviewHandler serves /reviews.
type ReviewHandler struct{ base }

func NewReviewHandler(svc *service.Service) *ReviewHandler { return &ReviewHandler{base: newBase(svc)} }

// Create records the caller's review. The user_id of the body is ignored.
func (h *ReviewHandler) Create(c echo.Context) error {
	var in model.ReviewInput
	if err := bind(c, &in); err != nil {
		return err
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	r, err := h.Svc.CreateReview(ctx, middleware.Identity(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *ReviewHandler) List(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	reviews, err := h.Svc.ListReviews(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) Get(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	r, err := h.Svc.GetReview(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

func (h *ReviewHandler) Update(c echo.Context) error {
	var patch model.ReviewPatch
	if err := bind(c, &patch); err != nil {
		return err
	}
	ctx, cancel := withTimeout(c)
	defer cancel()

	r, err := h.Svc.UpdateReview(ctx, middleware.Identity(c), c.Param("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

func (h *ReviewHandler) Delete(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	if err := h.Svc.DeleteReview(ctx, middleware.Identity(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Review deleted successfully"})
}
