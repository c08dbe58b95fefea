package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminTokenMiddleware guards admin routes with the static token in x-auth-token.
// An empty configured token rejects every request.
func AdminTokenMiddleware(adminToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("x-auth-token")
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token provided"})
			return
		}
		if adminToken == "" || subtle.ConstantTimeCompare([]byte(token), []byte(adminToken)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Invalid admin token"})
			return
		}
		c.Set("isAdmin", true)
		c.Next()
	}
}
