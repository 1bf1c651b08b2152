package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventura/marketplace-system/internal/api/metrics"
	"github.com/eventura/marketplace-system/internal/core/domain"
	"github.com/eventura/marketplace-system/internal/core/ports"
)

// PaymentHandler handles payment lifecycle operations.
type PaymentHandler struct {
	paymentService ports.PaymentService
}

func NewPaymentHandler(paymentService ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

type createPaymentRequest struct {
	RequestID string  `json:"request_id" validate:"required"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
}

// Create opens a payment against an assigned request.
//
// @Summary      Create a payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPaymentRequest  true  "Payment details"
// @Success      201   {object}  domain.Payment
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/payments [post]
func (h *PaymentHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	created, err := h.paymentService.Create(c.Request().Context(), actor, ports.CreatePaymentInput{
		RequestID: req.RequestID,
		Amount:    req.Amount,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Get returns one payment, visible to its two parties only.
//
// @Summary      Get a payment
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Payment id"
// @Success      200  {object}  domain.Payment
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/payments/{id} [get]
func (h *PaymentHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	payment, err := h.paymentService.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payment)
}

// List returns the authenticated user's payments: sent for clients,
// received for providers.
//
// @Summary      List own payments
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (1-based)"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {object}  map[string]interface{}
// @Failure      403    {object}  errorResponse
// @Router       /v1/payments [get]
func (h *PaymentHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var page ports.Paged[*domain.Payment]
	if actor.Role == domain.RoleProvider {
		page, err = h.paymentService.ListByProvider(c.Request().Context(), actor, pageFromQuery(c))
	} else {
		page, err = h.paymentService.ListByClient(c.Request().Context(), actor, pageFromQuery(c))
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newListResponse(page))
}

// UpdateStatus settles a pending payment as COMPLETED or FAILED.
//
// @Summary      Update a payment's status
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Payment id"
// @Param        body  body      statusUpdateRequest  true  "Target status"
// @Success      200   {object}  domain.Payment
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/payments/{id}/status [patch]
func (h *PaymentHandler) UpdateStatus(c echo.Context) error {
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

	updated, err := h.paymentService.UpdateStatus(c.Request().Context(), actor, c.Param("id"), req.Status)
	if err != nil {
		return err
	}

	metrics.StatusTransitionsTotal.WithLabelValues("payment", string(updated.Status)).Inc()
	if updated.Status == domain.PaymentCompleted {
		metrics.PaymentsAmountTotal.Add(updated.Amount)
	}
	return c.JSON(http.StatusOK, updated)
}
