package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventura/marketplace-system/internal/api/metrics"
	"github.com/eventura/marketplace-system/internal/core/ports"
)

// PitchHandler handles pitch lifecycle operations.
type PitchHandler struct {
	pitchService ports.PitchService
}

func NewPitchHandler(pitchService ports.PitchService) *PitchHandler {
	return &PitchHandler{pitchService: pitchService}
}

type createPitchRequest struct {
	RequestID     string  `json:"request_id" validate:"required"`
	Message       string  `json:"message" validate:"required"`
	ProposedPrice float64 `json:"proposed_price" validate:"required,gt=0"`
}

// Create submits a pitch against an open request.
//
// @Summary      Submit a pitch
// @Tags         pitches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPitchRequest  true  "Pitch details"
// @Success      201   {object}  domain.Pitch
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/pitches [post]
func (h *PitchHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createPitchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	created, err := h.pitchService.Create(c.Request().Context(), actor, ports.CreatePitchInput{
		RequestID:     req.RequestID,
		Message:       req.Message,
		ProposedPrice: req.ProposedPrice,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Get returns one pitch.
//
// @Summary      Get a pitch
// @Tags         pitches
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Pitch id"
// @Success      200  {object}  domain.Pitch
// @Failure      404  {object}  errorResponse
// @Router       /v1/pitches/{id} [get]
func (h *PitchHandler) Get(c echo.Context) error {
	pitch, err := h.pitchService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pitch)
}

// ListMine returns the authenticated provider's own pitches.
//
// @Summary      List own pitches
// @Tags         pitches
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (1-based)"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {object}  map[string]interface{}
// @Failure      403    {object}  errorResponse
// @Router       /v1/pitches/mine [get]
func (h *PitchHandler) ListMine(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	page, err := h.pitchService.ListMine(c.Request().Context(), actor, pageFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newListResponse(page))
}

// UpdateStatus marks a pitch WIN or LOSE.
//
// @Summary      Decide a pitch
// @Tags         pitches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Pitch id"
// @Param        body  body      statusUpdateRequest  true  "Target status"
// @Success      200   {object}  domain.Pitch
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/pitches/{id}/status [patch]
func (h *PitchHandler) UpdateStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req statusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	updated, err := h.pitchService.UpdateStatus(c.Request().Context(), actor, c.Param("id"), req.Status)
	if err != nil {
		return err
	}

	metrics.StatusTransitionsTotal.WithLabelValues("pitch", string(updated.Status)).Inc()
	return c.JSON(http.StatusOK, updated)
}

// Withdraw deletes the authenticated provider's own pitch.
//
// @Summary      Withdraw a pitch
// @Tags         pitches
// @Security     BearerAuth
// @Param        id  path  string  true  "Pitch id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/pitches/{id} [delete]
func (h *PitchHandler) Withdraw(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.pitchService.Withdraw(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
