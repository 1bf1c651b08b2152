package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eventura/marketplace-system/internal/core/ports"
)

// NotificationHandler handles the authenticated user's in-app inbox.
type NotificationHandler struct {
	notificationService ports.NotificationService
}

func NewNotificationHandler(notificationService ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

type unreadCountResponse struct {
	Count int64 `json:"count"`
}

// List returns the inbox, optionally filtered with ?is_read=true|false.
//
// @Summary      List own notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        is_read  query     bool  false  "Filter on the read flag"
// @Param        page     query     int   false  "Page number (1-based)"
// @Param        limit    query     int   false  "Page size (max 100)"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  errorResponse
// @Router       /v1/notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var isRead *bool
	if raw := c.QueryParam("is_read"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "is_read must be a boolean")
		}
		isRead = &parsed
	}

	page, err := h.notificationService.List(c.Request().Context(), actor.ID, isRead, pageFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newListResponse(page))
}

// UnreadCount returns the number of unread notifications.
//
// @Summary      Count unread notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  unreadCountResponse
// @Router       /v1/notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	count, err := h.notificationService.UnreadCount(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, unreadCountResponse{Count: count})
}

// MarkRead flips one owned notification to read.
//
// @Summary      Mark a notification read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Notification id"
// @Success      200  {object}  domain.Notification
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/notifications/{id}/read [patch]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	updated, err := h.notificationService.MarkRead(c.Request().Context(), actor.ID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}
