package handlers

import (
	"net/http"

	"devnotify/models"
	"devnotify/services/reminder"

	"github.com/gin-gonic/gin"
)

type ReminderHandler struct {
	ReminderService reminder.ReminderService
}

func (h *ReminderHandler) respondList(c *gin.Context, userID string) {
	list, err := h.ReminderService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to fetch reminders")
		return
	}
	reminder.SortByReminderTime(list)
	c.JSON(http.StatusOK, list)
}

// GetRemindersHandler handles GET /api/users/reminders.
func (h *ReminderHandler) GetRemindersHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	h.respondList(c, userID)
}

// SetReminderHandler handles POST /api/users/reminders and returns the
// user's reminders after the change.
func (h *ReminderHandler) SetReminderHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.ReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if _, err := h.ReminderService.Set(c.Request.Context(), userID, req); err != nil {
		respondError(c, err, "Failed to save reminder")
		return
	}
	h.respondList(c, userID)
}

// DeleteReminderHandler handles DELETE /api/users/reminders/:eventId.
func (h *ReminderHandler) DeleteReminderHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.ReminderService.Delete(c.Request.Context(), userID, models.EventID(c.Param("eventId"))); err != nil {
		respondError(c, err, "Failed to delete reminder")
		return
	}
	h.respondList(c, userID)
}
