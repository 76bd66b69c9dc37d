package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"shearbook/utils"
)

// OwnerAuthMiddleware validates the bearer token, checks it against the
// auth cache (so signed-out tokens are rejected before expiry), and
// stores the owner ID in the request context.
func OwnerAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		ownerID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || ownerID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		cached, err := utils.GetAuthCacheClient().Get(ctx, "authtoken:"+ownerID).Result()
		if err != nil || cached != utils.HashToken(tokenString) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired, sign in again"})
			return
		}

		c.Set("ownerID", ownerID)
		c.Next()
	}
}
