package handler

import (
	"net/http"

	"marketplace_api/internal/domain/notification/service"
	"marketplace_api/internal/pkg/middleware"
	"marketplace_api/internal/pkg/ws"
	"marketplace_api/pkg/response"
	"marketplace_api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	service service.NotificationService
	hub     *ws.Hub
}

func NewNotificationHandler(s service.NotificationService, hub *ws.Hub) *NotificationHandler {
	return &NotificationHandler{service: s, hub: hub}
}

// List godoc
// @Summary List the authenticated user's notifications
// @Tags notifications
// @Produce json
// @Success 200 {object} response.Response
// @Router /notifications [get]
// @Security BearerAuth
func (h *NotificationHandler) List(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.List(claims.UserID, &p)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, result)
}

// UnreadCount godoc
// @Summary Count unread notifications
// @Tags notifications
// @Produce json
// @Success 200 {object} response.Response
// @Router /notifications/unread-count [get]
// @Security BearerAuth
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	count, err := h.service.UnreadCount(claims.UserID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, gin.H{"count": count})
}

// MarkRead godoc
// @Summary Mark one notification as read
// @Tags notifications
// @Produce json
// @Param id path string true "notification id"
// @Success 200 {object} response.Response
// @Router /notifications/{id}/read [patch]
// @Security BearerAuth
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	if err := h.service.MarkRead(c.Param("id"), claims.UserID); err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Notification marked as read", nil)
}

// MarkAllRead godoc
// @Summary Mark every notification as read
// @Tags notifications
// @Produce json
// @Success 200 {object} response.Response
// @Router /notifications/read-all [patch]
// @Security BearerAuth
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	if err := h.service.MarkAllRead(claims.UserID); err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "All notifications marked as read", nil)
}

// Subscribe upgrades to a websocket that streams the user's notifications in
// real time.
func (h *NotificationHandler) Subscribe(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	if err := h.hub.ServeWS(c.Writer, c.Request, claims.UserID); err != nil {
		response.Error(c, http.StatusBadRequest, "WebSocket upgrade failed")
	}
}
