package handlers

import (
	"net/http"

	"devnotify/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger retrieves the request logger set by middleware, or the global one.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get("logger"); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}

// currentUserID returns the ID stored by the auth middleware.
func currentUserID(c *gin.Context) (string, bool) {
	id := c.GetString("userID")
	if id == "" {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "")
		return "", false
	}
	return id, true
}
