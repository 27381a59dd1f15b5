package config

import (
	"fmt"     // Error formatting
	"strings" // String manipulation
	"time"    // Durations

	"github.com/joho/godotenv"             // For loading .env files
	"github.com/kelseyhightower/envconfig" // For mapping env vars onto the struct
)

// Supported database drivers
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Config holds the application configuration
type Config struct {
	AppPort         string   `envconfig:"APP_PORT" default:"8080"`                 // Application port
	DBDriver        string   `envconfig:"DB_DRIVER" default:"sqlite"`              // sqlite, mysql or postgres
	DatabaseURL     string   `envconfig:"DATABASE_URL"`                            // Postgres connection URL
	DBUser          string   `envconfig:"DB_USER"`                                 // MySQL user
	DBPassword      string   `envconfig:"DB_PASSWORD"`                             // MySQL password
	DBHost          string   `envconfig:"DB_HOST" default:"localhost"`             // MySQL host
	DBPort          string   `envconfig:"DB_PORT" default:"3306"`                  // MySQL port
	DBName          string   `envconfig:"DB_NAME" default:"connectingbr"`          // MySQL database name
	SQLitePath      string   `envconfig:"SQLITE_PATH" default:"connectingbr.sqlite"` // SQLite file
	JWTSecret       string   `envconfig:"JWT_SECRET" required:"true"`              // JWT secret key
	JWTTTLHours     int      `envconfig:"JWT_TTL_HOURS" default:"24"`              // Token lifetime
	RedisAddr       string   `envconfig:"REDIS_ADDR"`                              // Redis server address, cache disabled when empty
	RedisPass       string   `envconfig:"REDIS_PASS"`                              // Redis password
	RedisDB         int      `envconfig:"REDIS_DB" default:"0"`                    // Redis database number
	CacheTTLSeconds int      `envconfig:"CACHE_TTL_SECONDS" default:"60"`          // Read cache lifetime
	CORSOrigins     []string `envconfig:"CORS_ORIGINS" default:"http://localhost:4200"`
	LogLevel        string   `envconfig:"LOG_LEVEL" default:"info"` // logrus level
	IsProd          bool     `envconfig:"IS_PROD" default:"false"`  // Is production environment
}

// LoadConfig loads configuration from a .env file (if present) and the environment
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // Load .env file if present
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks driver specific settings
func (c *Config) Validate() error {
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	switch c.DBDriver {
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite driver")
		}
	case DriverMySQL:
		if c.DBUser == "" {
			return fmt.Errorf("DB_USER is required for the mysql driver")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.JWTTTLHours <= 0 {
		return fmt.Errorf("JWT_TTL_HOURS must be positive")
	}
	return nil
}

// MySQLDSN builds the Data Source Name for the mysql driver
func (c *Config) MySQLDSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

// JWTTTL returns the token lifetime
func (c *Config) JWTTTL() time.Duration {
	return time.Duration(c.JWTTTLHours) * time.Hour
}

// CacheTTL returns the read cache lifetime
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// CacheEnabled reports whether a Redis address was configured
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}
