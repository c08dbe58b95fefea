package handlers

import (
	"net/http"

	"devnotify/utils"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	Monitor     *utils.HealthMonitor
	Env         string
	FrontendURL string
}

// HealthCheckHandler handles GET /api/health.
func (h *HealthHandler) HealthCheckHandler(c *gin.Context) {
	var status utils.HealthStatus
	if h.Monitor != nil {
		status = h.Monitor.Status()
	}
	frontend := h.FrontendURL
	if frontend == "" {
		frontend = "Not set"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Server is running",
		"environment": gin.H{
			"env":            h.Env,
			"frontendUrl":    frontend,
			"mongoConnected": status.Mongo,
			"redisConnected": status.Redis,
			"checkedAt":      status.CheckedAt,
		},
	})
}
