package api

import (
	"connectingbr/internal/services" // Category service
	"connectingbr/internal/utils"    // Cache helpers
	"net/http"                       // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// ListCategoriesHandler lists categories; ?active=true hides inactive ones
func ListCategoriesHandler(categories *services.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := categories.FindAll(c.Request.Context(), c.Query("active") == "true")
		if err != nil {
			respondError(c, "category.list", err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func GetCategoryHandler(categories *services.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		category, err := categories.FindOne(c.Request.Context(), id)
		if err != nil {
			respondError(c, "category.get", err)
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

func CreateCategoryHandler(categories *services.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req services.CreateCategoryInput
		if !bindJSON(c, "category.create", &req) {
			return
		}
		category, err := categories.Create(c.Request.Context(), req)
		if err != nil {
			respondError(c, "category.create", err)
			return
		}
		logrus.WithFields(logrus.Fields{"category_id": category.ID, "name": category.Name}).Info("Category created")
		c.JSON(http.StatusCreated, category)
	}
}

// UpdateCategoryHandler edits a category. The professionals directory embeds
// categories, so its cache entries are dropped.
func UpdateCategoryHandler(categories *services.CategoryService, cache utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var req services.UpdateCategoryInput
		if !bindJSON(c, "category.update", &req) {
			return
		}
		category, err := categories.Update(c.Request.Context(), id, req)
		if err != nil {
			respondError(c, "category.update", err)
			return
		}
		if err := cache.DeletePrefix(c.Request.Context(), utils.ProfessionalsPrefix); err != nil {
			logrus.WithField("error", err).Warn("Failed to invalidate professionals cache")
		}
		logrus.WithField("category_id", id).Info("Category updated")
		c.JSON(http.StatusOK, category)
	}
}

// DeleteCategoryHandler removes a category no service still uses
func DeleteCategoryHandler(categories *services.CategoryService, cache utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		if err := categories.Remove(c.Request.Context(), id); err != nil {
			respondError(c, "category.delete", err)
			return
		}
		// Professionals of the category were detached from it
		if err := cache.DeletePrefix(c.Request.Context(), utils.ProfessionalsPrefix); err != nil {
			logrus.WithField("error", err).Warn("Failed to invalidate professionals cache")
		}
		logrus.WithField("category_id", id).Info("Category deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
	}
}
