package routes

import (
	"strings"
	"time"

	"devnotify/handlers"
	"devnotify/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers account, reminder and notification endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.RegisterUserHandler)
		api.POST("/login", hb.LoginUserHandler)

		// Protected routes (Require Authentication)
		protected := api.Group("")
		protected.Use(middleware.JWTAuthUserMiddleware(hb.Tokens, hb.Revocations, hb.Logger))
		protected.GET("/me", hb.GetProfileHandler)
		protected.POST("/events/save", hb.ToggleSavedEventHandler)
		protected.PUT("/fcm-token", hb.SetFCMTokenHandler)
		protected.POST("/logout", hb.LogoutHandler)

		protected.GET("/reminders", hb.GetRemindersHandler)
		protected.POST("/reminders", hb.SetReminderHandler)
		protected.DELETE("/reminders/:eventId", hb.DeleteReminderHandler)

		protected.GET("/notifications", hb.GetNotificationsHandler)
		protected.PUT("/notifications/:id/read", hb.MarkNotificationReadHandler)
	}
}

// RegisterEventRoutes registers the public event list and admin creation endpoint.
func RegisterEventRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/events")
	{
		api.GET("", hb.ListEventsHandler)
		api.POST("", middleware.AdminTokenMiddleware(hb.AdminToken), hb.CreateEventHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/health", hb.HealthCheckHandler)
}

// RegisterSocketRoute registers the realtime notification socket.
func RegisterSocketRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/ws", hb.ServeSocketHandler)
}

// Options configures the global middleware.
type Options struct {
	FrontendURL       string
	MaxRequestsPerMin int
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, opts Options) {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "x-auth-token", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if origin := strings.TrimSpace(opts.FrontendURL); origin == "" || origin == "*" {
		// Credentials cannot be combined with a wildcard origin.
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = []string{origin}
	}
	r.Use(cors.New(corsCfg))
	r.Use(middleware.RateLimitMiddleware(opts.MaxRequestsPerMin, hb.Logger))

	RegisterHealthRoute(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterEventRoutes(r, hb)
	RegisterSocketRoute(r, hb)
}
