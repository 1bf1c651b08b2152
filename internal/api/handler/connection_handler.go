package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventura/marketplace-system/internal/api/metrics"
	"github.com/eventura/marketplace-system/internal/core/domain"
	"github.com/eventura/marketplace-system/internal/core/ports"
)

// ConnectionHandler handles direct connection lifecycle operations.
type ConnectionHandler struct {
	connectionService ports.ConnectionService
}

func NewConnectionHandler(connectionService ports.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{connectionService: connectionService}
}

type createConnectionRequest struct {
	ProviderID   string `json:"provider_id" validate:"required"`
	EventDetails string `json:"event_details" validate:"required"`
	ProposedDate string `json:"proposed_date" validate:"required"`
}

// Create proposes a direct engagement to a provider.
//
// @Summary      Request a direct connection
// @Tags         connections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createConnectionRequest  true  "Connection details"
// @Success      201   {object}  domain.DirectConnection
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/connections [post]
func (h *ConnectionHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createConnectionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	created, err := h.connectionService.Create(c.Request().Context(), actor, ports.CreateConnectionInput{
		ProviderID:   req.ProviderID,
		EventDetails: req.EventDetails,
		ProposedDate: req.ProposedDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Get returns one connection, visible to its two parties only.
//
// @Summary      Get a direct connection
// @Tags         connections
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Connection id"
// @Success      200  {object}  domain.DirectConnection
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/connections/{id} [get]
func (h *ConnectionHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	conn, err := h.connectionService.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, conn)
}

// List returns the authenticated user's connections: proposed for clients,
// received for providers.
//
// @Summary      List own direct connections
// @Tags         connections
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (1-based)"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {object}  map[string]interface{}
// @Failure      403    {object}  errorResponse
// @Router       /v1/connections [get]
func (h *ConnectionHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var page ports.Paged[*domain.DirectConnection]
	if actor.Role == domain.RoleProvider {
		page, err = h.connectionService.ListByProvider(c.Request().Context(), actor, pageFromQuery(c))
	} else {
		page, err = h.connectionService.ListByClient(c.Request().Context(), actor, pageFromQuery(c))
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newListResponse(page))
}

// Accept approves a pending connection request.
//
// @Summary      Accept a direct connection
// @Tags         connections
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Connection id"
// @Success      200  {object}  domain.DirectConnection
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/connections/{id}/accept [post]
func (h *ConnectionHandler) Accept(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	updated, err := h.connectionService.Accept(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}

	metrics.StatusTransitionsTotal.WithLabelValues("connection", string(updated.Status)).Inc()
	return c.JSON(http.StatusOK, updated)
}

// Reject declines a pending connection request.
//
// @Summary      Reject a direct connection
// @Tags         connections
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Connection id"
// @Success      200  {object}  domain.DirectConnection
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/connections/{id}/reject [post]
func (h *ConnectionHandler) Reject(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	updated, err := h.connectionService.Reject(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}

	metrics.StatusTransitionsTotal.WithLabelValues("connection", string(updated.Status)).Inc()
	return c.JSON(http.StatusOK, updated)
}

// Delete removes a connection the authenticated client created.
//
// @Summary      Delete a direct connection
// @Tags         connections
// @Security     BearerAuth
// @Param        id  path  string  true  "Connection id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/connections/{id} [delete]
func (h *ConnectionHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.connectionService.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
