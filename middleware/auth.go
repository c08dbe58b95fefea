package middleware

import (
	"context"
	"net/http"
	"strings"

	"devnotify/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ContextUserID = "userID"
	ContextToken  = "token"
)

// RevocationChecker reports whether a token was logged out.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// TokenFromRequest reads the token from x-auth-token or a Bearer Authorization header.
func TokenFromRequest(c *gin.Context) string {
	if token := strings.TrimSpace(c.GetHeader("x-auth-token")); token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

// JWTAuthUserMiddleware authenticates the caller and stores its ID under ContextUserID.
// revoked may be nil when no revocation store is configured.
func JWTAuthUserMiddleware(tokens *utils.TokenIssuer, revoked RevocationChecker, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := TokenFromRequest(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token, authorization denied"})
			return
		}

		userID, err := tokens.ExtractIDFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token is not valid"})
			return
		}

		if revoked != nil {
			isRevoked, err := revoked.IsRevoked(c.Request.Context(), tokenString)
			if err != nil {
				// Revocation store outage degrades to signature-only checks.
				logger.Warn("token revocation check failed", zap.Error(err))
			} else if isRevoked {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token has been revoked"})
				return
			}
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextToken, tokenString)
		c.Next()
	}
}
