package api

import (
	"connectingbr/internal/domain"   // Domain models
	"connectingbr/internal/services" // User service
	"connectingbr/internal/utils"    // Cache helpers
	"context"                        // Cache invalidation
	"net/http"                       // HTTP status codes
	"strconv"                        // Query parsing
	"strings"                        // Search term trimming

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// UserPage is the paginated response of GET /user
type UserPage struct {
	Users      []domain.User `json:"users"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	Total      int64         `json:"total"`
	TotalPages int           `json:"total_pages"`
}

// invalidateUsers drops every cache entry that may embed user data
func invalidateUsers(ctx context.Context, cache utils.Cache) {
	for _, prefix := range []string{utils.ProfessionalsPrefix, utils.ReviewsPrefix} {
		if err := cache.DeletePrefix(ctx, prefix); err != nil {
			logrus.WithFields(logrus.Fields{"prefix": prefix, "error": err}).Warn("Failed to invalidate cache")
		}
	}
}

// ListUsersHandler returns users page by page (page, page_size query params)
func ListUsersHandler(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := 1      // Default page number
		pageSize := 20 // Default page size
		if p := c.Query("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v
			}
		}
		if ps := c.Query("page_size"); ps != "" {
			if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
				pageSize = v
			}
		}
		list, total, err := users.FindPage(c.Request.Context(), page, pageSize)
		if err != nil {
			respondError(c, "user.list", err)
			return
		}
		totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
		c.JSON(http.StatusOK, UserPage{Users: list, Page: page, PageSize: pageSize, Total: total, TotalPages: totalPages})
	}
}

// ListProfessionalsHandler is the professionals directory, best rated first.
// Searches (?q=) bypass the cache.
func ListProfessionalsHandler(users *services.UserService, cache utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categoryID *uint
		if raw := c.Query("category_id"); raw != "" {
			v, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
				return
			}
			id := uint(v)
			categoryID = &id
		}
		query := strings.TrimSpace(c.Query("q"))
		ctx := c.Request.Context()
		if query != "" {
			list, err := users.Professionals(ctx, categoryID, query)
			if err != nil {
				respondError(c, "user.search", err)
				return
			}
			c.JSON(http.StatusOK, list)
			return
		}

		key := utils.ProfessionalsKey(categoryID)
		var cached []domain.User
		if found, err := cache.Get(ctx, key, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		} else if err != nil {
			logrus.WithFields(logrus.Fields{"key": key, "error": err}).Warn("Cache read failed")
		}
		list, err := users.Professionals(ctx, categoryID, "")
		if err != nil {
			respondError(c, "user.professionals", err)
			return
		}
		if err := cache.Set(ctx, key, list); err != nil {
			logrus.WithFields(logrus.Fields{"key": key, "error": err}).Warn("Cache write failed")
		}
		c.JSON(http.StatusOK, list)
	}
}

func GetUserHandler(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		user, err := users.FindOne(c.Request.Context(), id)
		if err != nil {
			respondError(c, "user.get", err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// CreateUserHandler lets an admin create an account with any role
func CreateUserHandler(users *services.UserService, cache utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req services.CreateUserInput
		if !bindJSON(c, "user.create", &req) {
			return
		}
		user, err := users.Create(c.Request.Context(), req)
		if err != nil {
			respondError(c, "user.create", err)
			return
		}
		invalidateUsers(c.Request.Context(), cache)
		logrus.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("User created")
		c.JSON(http.StatusCreated, user)
	}
}

// UpdateUserHandler edits a profile; only the owner or an admin may
func UpdateUserHandler(users *services.UserService, cache utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, ok := actor(c)
		if !ok {
			return
		}
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var req services.UpdateUserInput
		if !bindJSON(c, "user.update", &req) {
			return
		}
		user, err := users.Update(c.Request.Context(), current, id, req)
		if err != nil {
			respondError(c, "user.update", err)
			return
		}
		invalidateUsers(c.Request.Context(), cache)
		logrus.WithFields(logrus.Fields{"user_id": id, "actor_id": current.ID}).Info("User updated")
		c.JSON(http.StatusOK, user)
	}
}

// DeleteUserHandler removes an account together with its reviews
func DeleteUserHandler(users *services.UserService, cache utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, ok := actor(c)
		if !ok {
			return
		}
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		if err := users.Remove(c.Request.Context(), current, id); err != nil {
			respondError(c, "user.delete", err)
			return
		}
		invalidateUsers(c.Request.Context(), cache)
		logrus.WithFields(logrus.Fields{"user_id": id, "actor_id": current.ID}).Info("User deleted")
		c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
	}
}
