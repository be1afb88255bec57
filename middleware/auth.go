package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shoplane-dev/storefront-api/auth"
	"github.com/shoplane-dev/storefront-api/rbac"
)

// ValidateToken parses the Authorization bearer token and stores the
// principal's ID and role in the gin context. Role gating itself lives in
// the rbac package; this middleware only authenticates.
func ValidateToken(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			c.Abort()
			return
		}
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")

		claims, err := auth.ValidateToken(secret, tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set(rbac.ContextRoleKey, claims.Role)

		c.Next()
	}
}
