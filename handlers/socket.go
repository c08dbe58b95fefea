package handlers

import (
	"net/http"
	"strings"

	"devnotify/middleware"
	"devnotify/services/push"
	"devnotify/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type SocketHandler struct {
	Hub         *push.Hub
	Tokens      *utils.TokenIssuer
	Revocations middleware.RevocationChecker
	upgrader    websocket.Upgrader
}

// NewSocketHandler accepts websocket connections from allowedOrigin, or from
// any origin when it is "*" or empty.
func NewSocketHandler(hub *push.Hub, tokens *utils.TokenIssuer, revocations middleware.RevocationChecker, allowedOrigin string) *SocketHandler {
	return &SocketHandler{
		Hub:         hub,
		Tokens:      tokens,
		Revocations: revocations,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if allowedOrigin == "" || allowedOrigin == "*" {
					return true
				}
				return strings.EqualFold(r.Header.Get("Origin"), allowedOrigin)
			},
		},
	}
}

// ServeSocketHandler handles GET /ws?token=... and joins the caller's room.
func (h *SocketHandler) ServeSocketHandler(c *gin.Context) {
	logger := getLogger(c)

	token := c.Query("token")
	if token == "" {
		token = middleware.TokenFromRequest(c)
	}
	userID, err := h.Tokens.ExtractIDFromToken(token)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "Token is not valid", "")
		return
	}
	if h.Revocations != nil {
		if revoked, err := h.Revocations.IsRevoked(c.Request.Context(), token); err == nil && revoked {
			utils.JSONError(c, http.StatusUnauthorized, "Token has been revoked", "")
			return
		}
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", zap.String("userId", userID), zap.Error(err))
		return
	}
	h.Hub.Serve(conn, userID)
}
