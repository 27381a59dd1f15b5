package db

import (
	"connectingbr/internal/config" // Custom import path (Config)
	"connectingbr/internal/domain" // Importing domain models
	"fmt"                          // Error formatting

	"github.com/sirupsen/logrus" // Logging library

	"gorm.io/driver/mysql"    // MySQL driver for GORM
	"gorm.io/driver/postgres" // PostgreSQL driver for GORM
	"gorm.io/driver/sqlite"   // SQLite driver for GORM
	"gorm.io/gorm"            // GORM ORM library
)

// Models lists every table in migration order
func Models() []any {
	return []any{&domain.Category{}, &domain.User{}, &domain.Review{}, &domain.ServiceOffering{}}
}

// Dialector picks the GORM dialector for the configured driver
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case config.DriverMySQL:
		return mysql.Open(cfg.MySQLDSN()), nil
	case config.DriverPostgres:
		return postgres.Open(cfg.DatabaseURL), nil
	case config.DriverSQLite:
		// Foreign keys are off by default in SQLite
		return sqlite.Open(cfg.SQLitePath + "?_foreign_keys=on&_busy_timeout=5000"), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// Open connects to the configured database.
// TranslateError maps unique violations of every driver to gorm.ErrDuplicatedKey.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}
	conn, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.DBDriver, err)
	}
	if cfg.DBDriver == config.DriverSQLite {
		// SQLite allows a single writer; one connection serializes transactions
		sqlDB, err := conn.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return conn, nil
}

// Migrate performs automatic migration for the database schema
func Migrate(conn *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := conn.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}
