package main

import (
	"connectingbr/internal/api"        // Custom package for API handlers
	"connectingbr/internal/config"     // Custom package for configuration
	"connectingbr/internal/db"         // Database connection and migration
	"connectingbr/internal/middleware" // Custom package for middleware
	"connectingbr/internal/utils"      // Cache implementation
	"context"                          // context package is needed for Redis operations

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	// Setup logger
	setupLogger(cfg)

	// Connect to the database and keep the schema current
	conn, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		logrus.Fatalf("failed to migrate DB: %v", err)
	}

	deps := api.Deps{
		DB:        conn,
		Cache:     utils.NopCache{},
		JWTSecret: cfg.JWTSecret,
		JWTTTL:    cfg.JWTTTL(),
	}

	// Setup Redis client when a cache address is configured
	if cfg.CacheEnabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		cache := utils.NewRedisCache(redisClient, cfg.CacheTTL())
		deps.Cache = cache
		deps.CachePing = cache.Ping
		logrus.WithFields(logrus.Fields{"addr": cfg.RedisAddr, "ttl": cfg.CacheTTL()}).Info("Redis cache enabled")
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.CORSMiddleware(cfg.CORSOrigins))

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	api.RegisterRoutes(r, deps)

	logrus.WithFields(logrus.Fields{"port": cfg.AppPort, "driver": cfg.DBDriver}).Info("Server running")
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}

// setupLogger applies the formatter and level from the configuration
func setupLogger(cfg *config.Config) {
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.WithField("level", cfg.LogLevel).Warn("Unknown LOG_LEVEL, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
