package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventura/marketplace-system/internal/api/metrics"
	"github.com/eventura/marketplace-system/internal/core/ports"
)

// RequestHandler handles service request lifecycle operations.
type RequestHandler struct {
	requestService ports.RequestService
	pitchService   ports.PitchService
	paymentService ports.PaymentService
}

func NewRequestHandler(requestService ports.RequestService, pitchService ports.PitchService, paymentService ports.PaymentService) *RequestHandler {
	return &RequestHandler{
		requestService: requestService,
		pitchService:   pitchService,
		paymentService: paymentService,
	}
}

type createRequestRequest struct {
	Title       string  `json:"title" validate:"required"`
	EventName   string  `json:"event_name" validate:"required"`
	EventDate   string  `json:"event_date" validate:"required"`
	Location    string  `json:"location" validate:"required"`
	ServiceType string  `json:"service_type" validate:"required"`
	Description string  `json:"description"`
	Budget      float64 `json:"budget" validate:"required,gt=0"`
}

type assignProviderRequest struct {
	ProviderID string `json:"provider_id" validate:"required"`
}

type updateBudgetRequest struct {
	Budget float64 `json:"budget" validate:"required,gt=0"`
}

// Create posts a new service request.
//
// @Summary      Post a service request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRequestRequest  true  "Request details"
// @Success      201   {object}  domain.ServiceRequest
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/requests [post]
func (h *RequestHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	created, err := h.requestService.Create(c.Request().Context(), actor, ports.CreateRequestInput{
		Title:       req.Title,
		EventName:   req.EventName,
		EventDate:   req.EventDate,
		Location:    req.Location,
		ServiceType: req.ServiceType,
		Description: req.Description,
		Budget:      req.Budget,
	})
	if err != nil {
		return err
	}

	metrics.RequestsCreatedTotal.WithLabelValues(created.ServiceType).Inc()
	return c.JSON(http.StatusCreated, created)
}

// Get returns one service request.
//
// @Summary      Get a service request
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request id"
// @Success      200  {object}  domain.ServiceRequest
// @Failure      404  {object}  errorResponse
// @Router       /v1/requests/{id} [get]
func (h *RequestHandler) Get(c echo.Context) error {
	req, err := h.requestService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, req)
}

// List returns requests in every status, optionally filtered by service type.
//
// @Summary      Browse service requests
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        service_type  query     string  false  "Filter by service type"
// @Param        page          query     int     false  "Page number (1-based)"
// @Param        limit         query     int     false  "Page size (max 100)"
// @Success      200           {object}  map[string]interface{}
// @Router       /v1/requests [get]
func (h *RequestHandler) List(c echo.Context) error {
	page, err := h.requestService.List(c.Request().Context(), c.QueryParam("service_type"), pageFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newListResponse(page))
}

// ListMine returns the authenticated client's own requests.
//
// @Summary      List own service requests
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (1-based)"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {object}  map[string]interface{}
// @Failure      403    {object}  errorResponse
// @Router       /v1/requests/mine [get]
func (h *RequestHandler) ListMine(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	page, err := h.requestService.ListByClient(c.Request().Context(), actor, pageFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newListResponse(page))
}

// Assign sets the provider on an OPEN request.
//
// @Summary      Assign a provider to a request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Request id"
// @Param        body  body      assignProviderRequest  true  "Provider to assign"
// @Success      200   {object}  domain.ServiceRequest
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/requests/{id}/assign [post]
func (h *RequestHandler) Assign(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req assignProviderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	updated, err := h.requestService.AssignProvider(c.Request().Context(), actor, c.Param("id"), req.ProviderID)
	if err != nil {
		return err
	}

	metrics.StatusTransitionsTotal.WithLabelValues("request", string(updated.Status)).Inc()
	return c.JSON(http.StatusOK, updated)
}

// UpdateBudget changes the budget of a non-terminal request.
//
// @Summary      Update a request's budget
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Request id"
// @Param        body  body      updateBudgetRequest  true  "New budget"
// @Success      200   {object}  domain.ServiceRequest
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/requests/{id}/budget [patch]
func (h *RequestHandler) UpdateBudget(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	updated, err := h.requestService.UpdateBudget(c.Request().Context(), actor, c.Param("id"), req.Budget)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// UpdateStatus applies a lifecycle transition to a request.
//
// @Summary      Update a request's status
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Request id"
// @Param        body  body      statusUpdateRequest  true  "Target status"
// @Success      200   {object}  domain.ServiceRequest
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/requests/{id}/status [patch]
func (h *RequestHandler) UpdateStatus(c echo.Context) error {
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

	updated, err := h.requestService.UpdateStatus(c.Request().Context(), actor, c.Param("id"), req.Status)
	if err != nil {
		return err
	}

	metrics.StatusTransitionsTotal.WithLabelValues("request", string(updated.Status)).Inc()
	return c.JSON(http.StatusOK, updated)
}

// Delete removes a request: soft for the owning client, hard with cascade
// for admins.
//
// @Summary      Delete a service request
// @Tags         requests
// @Security     BearerAuth
// @Param        id  path  string  true  "Request id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/requests/{id} [delete]
func (h *RequestHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.requestService.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListPitches returns the pitches submitted against a request.
//
// @Summary      List pitches for a request
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true   "Request id"
// @Param        page   query     int     false  "Page number (1-based)"
// @Param        limit  query     int     false  "Page size (max 100)"
// @Success      200    {object}  map[string]interface{}
// @Failure      404    {object}  errorResponse
// @Router       /v1/requests/{id}/pitches [get]
func (h *RequestHandler) ListPitches(c echo.Context) error {
	page, err := h.pitchService.ListForRequest(c.Request().Context(), c.Param("id"), pageFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newListResponse(page))
}

// CurrentPayment returns the most recently created payment of a request.
//
// @Summary      Get the current payment of a request
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request id"
// @Success      200  {object}  domain.Payment
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/requests/{id}/payment [get]
func (h *RequestHandler) CurrentPayment(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	payment, err := h.paymentService.CurrentForRequest(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payment)
}
