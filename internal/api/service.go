package api

import (
	"connectingbr/internal/repository" // Search filter
	"connectingbr/internal/services"   // Offering service
	"net/http"                         // HTTP status codes
	"strconv"                          // Query parsing

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/google/uuid"     // Service ids
	"github.com/sirupsen/logrus" // Logging library
)

// searchFilter reads the query string of GET /service
func searchFilter(c *gin.Context) (repository.ServiceFilter, bool) {
	filter := repository.ServiceFilter{Query: c.Query("q")}
	if raw := c.Query("category_id"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
			return filter, false
		}
		id := uint(v)
		filter.CategoryID = &id
	}
	floats := []struct {
		name string
		dest **float64
	}{
		{"min_price", &filter.MinPrice},
		{"max_price", &filter.MaxPrice},
		{"min_rating", &filter.MinRating},
	}
	for _, f := range floats {
		raw := c.Query(f.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + f.name})
			return filter, false
		}
		*f.dest = &v
	}
	return filter, true
}

// serviceID parses the uuid path parameter
func serviceID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

// SearchServicesHandler filters offerings by category, text, price and provider rating
func SearchServicesHandler(offerings *services.OfferingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, ok := searchFilter(c)
		if !ok {
			return
		}
		list, err := offerings.Search(c.Request.Context(), filter)
		if err != nil {
			respondError(c, "service.search", err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func GetServiceHandler(offerings *services.OfferingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := serviceID(c)
		if !ok {
			return
		}
		offering, err := offerings.FindOne(c.Request.Context(), id)
		if err != nil {
			respondError(c, "service.get", err)
			return
		}
		c.JSON(http.StatusOK, offering)
	}
}

func CreateServiceHandler(offerings *services.OfferingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := actor(c)
		if !ok {
			return
		}
		var req services.CreateServiceInput
		if !bindJSON(c, "service.create", &req) {
			return
		}
		offering, err := offerings.Create(c.Request.Context(), user, req)
		if err != nil {
			respondError(c, "service.create", err)
			return
		}
		logrus.WithFields(logrus.Fields{"service_id": offering.ID, "provider_id": offering.ProviderID}).Info("Service created")
		c.JSON(http.StatusCreated, offering)
	}
}

func UpdateServiceHandler(offerings *services.OfferingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := actor(c)
		if !ok {
			return
		}
		id, ok := serviceID(c)
		if !ok {
			return
		}
		var req services.UpdateServiceInput
		if !bindJSON(c, "service.update", &req) {
			return
		}
		offering, err := offerings.Update(c.Request.Context(), user, id, req)
		if err != nil {
			respondError(c, "service.update", err)
			return
		}
		logrus.WithFields(logrus.Fields{"service_id": id, "actor_id": user.ID}).Info("Service updated")
		c.JSON(http.StatusOK, offering)
	}
}

func DeleteServiceHandler(offerings *services.OfferingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := actor(c)
		if !ok {
			return
		}
		id, ok := serviceID(c)
		if !ok {
			return
		}
		if err := offerings.Remove(c.Request.Context(), user, id); err != nil {
			respondError(c, "service.delete", err)
			return
		}
		logrus.WithFields(logrus.Fields{"service_id": id, "actor_id": user.ID}).Info("Service deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
	}
}
