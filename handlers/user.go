package handlers

import (
	"net/http"

	"devnotify/models"
	"devnotify/services/user"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	UserService user.UserService
}

// RegisterUserHandler handles POST /api/users/register.
func (h *UserHandler) RegisterUserHandler(c *gin.Context) {
	var req models.UserRegistration
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	resp, err := h.UserService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Registration failed")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LoginUserHandler handles POST /api/users/login.
func (h *UserHandler) LoginUserHandler(c *gin.Context) {
	var req models.UserLogin
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	resp, err := h.UserService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Login failed")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetProfileHandler handles GET /api/users/me.
func (h *UserHandler) GetProfileHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	profile, err := h.UserService.Profile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ToggleSavedEventHandler handles POST /api/users/events/save.
func (h *UserHandler) ToggleSavedEventHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req struct {
		EventID models.EventID `json:"eventId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	saved, err := h.UserService.ToggleSavedEvent(c.Request.Context(), userID, req.EventID)
	if err != nil {
		respondError(c, err, "Failed to save event")
		return
	}
	c.JSON(http.StatusOK, saved)
}

// SetFCMTokenHandler handles PUT /api/users/fcm-token.
func (h *UserHandler) SetFCMTokenHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req struct {
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := h.UserService.SetFCMToken(c.Request.Context(), userID, req.Token); err != nil {
		respondError(c, err, "Failed to update device token")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Device token updated"})
}

// LogoutHandler handles POST /api/users/logout.
func (h *UserHandler) LogoutHandler(c *gin.Context) {
	if err := h.UserService.Logout(c.Request.Context(), c.GetString("token")); err != nil {
		respondError(c, err, "Logout failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
