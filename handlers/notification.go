package handlers

import (
	"net/http"

	"devnotify/services/notification"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	NotificationService notification.NotificationService
}

// GetNotificationsHandler handles GET /api/users/notifications.
func (h *NotificationHandler) GetNotificationsHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	list, err := h.NotificationService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to fetch notifications")
		return
	}
	c.JSON(http.StatusOK, list)
}

// MarkNotificationReadHandler handles PUT /api/users/notifications/:id/read.
func (h *NotificationHandler) MarkNotificationReadHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	n, err := h.NotificationService.MarkRead(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to update notification")
		return
	}
	c.JSON(http.StatusOK, n)
}
