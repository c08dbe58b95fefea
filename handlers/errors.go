package handlers

import (
	"errors"
	"net/http"

	eventSvc "devnotify/services/event"
	"devnotify/services/notification"
	"devnotify/services/reminder"
	"devnotify/services/user"
	"devnotify/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service errors to HTTP statuses.
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, reminder.ErrInvalidInput),
		errors.Is(err, user.ErrInvalidInput),
		errors.Is(err, eventSvc.ErrInvalidInput),
		errors.Is(err, notification.ErrInvalidType):
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
	case errors.Is(err, user.ErrEmailTaken):
		utils.JSONError(c, http.StatusBadRequest, "User already exists", "")
	case errors.Is(err, user.ErrInvalidCredentials):
		utils.JSONError(c, http.StatusBadRequest, "Invalid credentials", "")
	case errors.Is(err, reminder.ErrNotFound),
		errors.Is(err, user.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "User not found", "")
	case errors.Is(err, notification.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Notification not found", "")
	default:
		getLogger(c).Error(fallback, zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse{Message: "Server error", Details: fallback})
	}
}

// bindError reports a malformed request body.
func bindError(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
}
