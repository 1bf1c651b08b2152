package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventura/marketplace-system/internal/core/ports"
)

// ReviewHandler handles provider reviews.
type ReviewHandler struct {
	reviewService ports.ReviewService
}

func NewReviewHandler(reviewService ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

type createReviewRequest struct {
	RequestID string `json:"request_id" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

// Create rates the provider of a completed request.
//
// @Summary      Create a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createReviewRequest  true  "Review details"
// @Success      201   {object}  domain.Review
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	created, err := h.reviewService.Create(c.Request().Context(), actor, ports.CreateReviewInput{
		RequestID: req.RequestID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Get returns one review.
//
// @Summary      Get a review
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Review id"
// @Success      200  {object}  domain.Review
// @Failure      404  {object}  errorResponse
// @Router       /v1/reviews/{id} [get]
func (h *ReviewHandler) Get(c echo.Context) error {
	review, err := h.reviewService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, review)
}

// ListForProvider returns the reviews left on a provider.
//
// @Summary      List a provider's reviews
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true   "Provider user id"
// @Param        page   query     int     false  "Page number (1-based)"
// @Param        limit  query     int     false  "Page size (max 100)"
// @Success      200    {object}  map[string]interface{}
// @Router       /v1/providers/{id}/reviews [get]
func (h *ReviewHandler) ListForProvider(c echo.Context) error {
	page, err := h.reviewService.ListForProvider(c.Request().Context(), c.Param("id"), pageFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newListResponse(page))
}
