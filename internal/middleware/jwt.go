package middleware

import (
	"connectingbr/internal/domain" // Domain models
	"connectingbr/internal/utils"  // JWT utility functions
	"context"                      // Lookup context
	"errors"                       // Error inspection
	"net/http"                     // HTTP status codes
	"strings"                      // String manipulation

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// Context keys set by JWTAuthMiddleware
const (
	UserIDKey = "userID"
	UserKey   = "user"
)

// UserFinder loads the account behind a token
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*domain.User, error)
}

// JWTAuthMiddleware validates the bearer token and loads the user it names.
// Tokens for deleted users are rejected.
func JWTAuthMiddleware(secret string, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseJWT(tokenStr, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		user, err := users.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
				return
			}
			logrus.WithFields(logrus.Fields{"user_id": claims.UserID, "error": err}).Error("Failed to load authenticated user")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.Set(UserIDKey, user.ID) // Store userID in context
		c.Set(UserKey, user)      // Store the loaded user for handlers
		c.Next()
	}
}

// CurrentUser returns the user stored by JWTAuthMiddleware
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(UserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok && user != nil
}
