package api

import (
	"connectingbr/internal/domain"   // Domain models
	"connectingbr/internal/services" // User service
	"connectingbr/internal/utils"    // JWT and cache helpers
	"net/http"                       // HTTP status codes
	"time"                           // Token lifetime

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
	Token   string       `json:"token"`
}

// RegisterHandler creates a client or professional account and signs it in
func RegisterHandler(users *services.UserService, cache utils.Cache, jwtSecret string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req services.RegisterInput
		if !bindJSON(c, "auth.register", &req) {
			return
		}
		user, err := users.Register(c.Request.Context(), req)
		if err != nil {
			respondError(c, "auth.register", err)
			return
		}
		token, err := utils.GenerateJWT(user.ID, user.Email, jwtSecret, ttl)
		if err != nil {
			respondError(c, "auth.register", err)
			return
		}
		if user.Role == domain.RoleProfessional {
			if err := cache.DeletePrefix(c.Request.Context(), utils.ProfessionalsPrefix); err != nil {
				logrus.WithField("error", err).Warn("Failed to invalidate professionals cache")
			}
		}
		logrus.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("User registered")
		c.JSON(http.StatusCreated, AuthResponse{Message: "User registered successfully", User: user, Token: token})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(users *services.UserService, jwtSecret string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if !bindJSON(c, "auth.login", &req) {
			return
		}
		user, err := users.Authenticate(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, "auth.login", err)
			return
		}
		token, err := utils.GenerateJWT(user.ID, user.Email, jwtSecret, ttl)
		if err != nil {
			respondError(c, "auth.login", err)
			return
		}
		logrus.WithField("user_id", user.ID).Info("User logged in")
		c.JSON(http.StatusOK, AuthResponse{Message: "Login successful", User: user, Token: token})
	}
}

// LogoutHandler exists for client symmetry; tokens are stateless and simply expire
func LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
	}
}

// ProfileHandler returns the authenticated user
func ProfileHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := actor(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
