package middleware

import (
	"connectingbr/internal/domain" // Domain models
	"net/http"                     // HTTP status codes
	"slices"                       // Role membership

	"github.com/gin-gonic/gin" // Gin web framework
)

// RequireRole lets the request through only when the authenticated user holds
// one of roles. It must run after JWTAuthMiddleware.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if !slices.Contains(roles, user.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}
