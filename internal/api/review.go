package api

import (
	"connectingbr/internal/domain"   // Domain models
	"connectingbr/internal/services" // Review service
	"connectingbr/internal/utils"    // Cache helpers
	"context"                        // Cache invalidation
	"net/http"                       // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// invalidateProfessional drops the cached review list of the professional and
// the professionals directory, whose order depends on average ratings
func invalidateProfessional(ctx context.Context, cache utils.Cache, professionalID uint) {
	if err := cache.Delete(ctx, utils.ProfessionalReviewsKey(professionalID)); err != nil {
		logrus.WithFields(logrus.Fields{"professional_id": professionalID, "error": err}).Warn("Failed to invalidate review cache")
	}
	if err := cache.DeletePrefix(ctx, utils.ProfessionalsPrefix); err != nil {
		logrus.WithField("error", err).Warn("Failed to invalidate professionals cache")
	}
}

// CreateReviewHandler stores a review written by the authenticated user
func CreateReviewHandler(reviews *services.ReviewService, cache utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := actor(c)
		if !ok {
			return
		}
		var req services.CreateReviewInput
		if !bindJSON(c, "review.create", &req) {
			return
		}
		review, err := reviews.Create(c.Request.Context(), user.ID, req)
		if err != nil {
			respondError(c, "review.create", err)
			return
		}
		invalidateProfessional(c.Request.Context(), cache, review.ProfessionalID)
		logrus.WithFields(logrus.Fields{
			"review_id":       review.ID,
			"reviewer_id":     review.ReviewerID,
			"professional_id": review.ProfessionalID,
			"rating":          review.Rating,
		}).Info("Review created")
		c.JSON(http.StatusCreated, review)
	}
}

// ListReviewsHandler returns every review, most recent first
func ListReviewsHandler(reviews *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := reviews.FindAll(c.Request.Context())
		if err != nil {
			respondError(c, "review.list", err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// ProfessionalReviewsHandler lists a professional's reviews, served from cache when possible
func ProfessionalReviewsHandler(reviews *services.ReviewService, cache utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		professionalID, ok := pathID(c, "id")
		if !ok {
			return
		}
		ctx := c.Request.Context()
		key := utils.ProfessionalReviewsKey(professionalID)
		var cached []domain.Review
		if found, err := cache.Get(ctx, key, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		} else if err != nil {
			logrus.WithFields(logrus.Fields{"key": key, "error": err}).Warn("Cache read failed")
		}
		list, err := reviews.FindByProfessional(ctx, professionalID)
		if err != nil {
			respondError(c, "review.list_by_professional", err)
			return
		}
		if err := cache.Set(ctx, key, list); err != nil {
			logrus.WithFields(logrus.Fields{"key": key, "error": err}).Warn("Cache write failed")
		}
		c.JSON(http.StatusOK, list)
	}
}

// AverageRatingHandler aggregates the professional's reviews; never cached
func AverageRatingHandler(reviews *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		professionalID, ok := pathID(c, "id")
		if !ok {
			return
		}
		summary, err := reviews.AverageRating(c.Request.Context(), professionalID)
		if err != nil {
			respondError(c, "review.average", err)
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

func GetReviewHandler(reviews *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		review, err := reviews.FindOne(c.Request.Context(), id)
		if err != nil {
			respondError(c, "review.get", err)
			return
		}
		c.JSON(http.StatusOK, review)
	}
}

// UpdateReviewHandler patches a review owned by the authenticated user
func UpdateReviewHandler(reviews *services.ReviewService, cache utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := actor(c)
		if !ok {
			return
		}
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var req services.UpdateReviewInput
		if !bindJSON(c, "review.update", &req) {
			return
		}
		review, err := reviews.Update(c.Request.Context(), id, user.ID, req)
		if err != nil {
			respondError(c, "review.update", err)
			return
		}
		invalidateProfessional(c.Request.Context(), cache, review.ProfessionalID)
		logrus.WithFields(logrus.Fields{"review_id": review.ID, "user_id": user.ID}).Info("Review updated")
		c.JSON(http.StatusOK, review)
	}
}

// DeleteReviewHandler removes a review owned by the authenticated user
func DeleteReviewHandler(reviews *services.ReviewService, cache utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := actor(c)
		if !ok {
			return
		}
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		removed, err := reviews.Remove(c.Request.Context(), id, user.ID)
		if err != nil {
			respondError(c, "review.delete", err)
			return
		}
		invalidateProfessional(c.Request.Context(), cache, removed.ProfessionalID)
		logrus.WithFields(logrus.Fields{"review_id": id, "user_id": user.ID}).Info("Review deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
	}
}
