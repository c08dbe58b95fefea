package handlers

import (
	"net/http"

	"devnotify/models"
	eventSvc "devnotify/services/event"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	EventService eventSvc.EventService
}

// ListEventsHandler handles GET /api/events.
func (h *EventHandler) ListEventsHandler(c *gin.Context) {
	events, err := h.EventService.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch events")
		return
	}
	c.JSON(http.StatusOK, events)
}

// CreateEventHandler handles POST /api/events.
func (h *EventHandler) CreateEventHandler(c *gin.Context) {
	var req models.Event
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	created, err := h.EventService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create event")
		return
	}
	c.JSON(http.StatusCreated, created)
}
