package api

import (
	"context"  // Ping timeout
	"net/http" // HTTP status codes
	"time"     // Ping timeout

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// HealthHandler pings the database and, when configured, Redis
func HealthHandler(db *gorm.DB, cachePing func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := gin.H{"database": "ok"}
		healthy := true
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			logrus.WithField("error", err).Error("Database health check failed")
			status["database"] = "unavailable"
			healthy = false
		}
		if cachePing != nil {
			status["cache"] = "ok"
			if err := cachePing(ctx); err != nil {
				logrus.WithField("error", err).Warn("Cache health check failed")
				status["cache"] = "unavailable"
				healthy = false
			}
		}
		if !healthy {
			status["status"] = "degraded"
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
		status["status"] = "ok"
		c.JSON(http.StatusOK, status)
	}
}
