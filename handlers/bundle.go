package handlers

import (
	"devnotify/middleware"
	"devnotify/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandlerBundle groups all endpoint handlers and the auth dependencies routes need.
type HandlerBundle struct {
	Tokens      *utils.TokenIssuer
	Revocations middleware.RevocationChecker
	AdminToken  string
	Logger      *zap.Logger

	// Health
	HealthCheckHandler gin.HandlerFunc

	// User endpoints
	RegisterUserHandler     gin.HandlerFunc
	LoginUserHandler        gin.HandlerFunc
	GetProfileHandler       gin.HandlerFunc
	ToggleSavedEventHandler gin.HandlerFunc
	SetFCMTokenHandler      gin.HandlerFunc
	LogoutHandler           gin.HandlerFunc

	// Reminder endpoints
	GetRemindersHandler   gin.HandlerFunc
	SetReminderHandler    gin.HandlerFunc
	DeleteReminderHandler gin.HandlerFunc

	// Notification endpoints
	GetNotificationsHandler     gin.HandlerFunc
	MarkNotificationReadHandler gin.HandlerFunc

	// Event endpoints
	ListEventsHandler  gin.HandlerFunc
	CreateEventHandler gin.HandlerFunc

	// Realtime
	ServeSocketHandler gin.HandlerFunc
}
