package main

import (
	"connectingbr/internal/config" // Custom import path (Config)
	"connectingbr/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus" // Logging library
)

// Main entry point for migration
func main() {
	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	conn, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		logrus.Fatalf("%v", err)
	}
}
