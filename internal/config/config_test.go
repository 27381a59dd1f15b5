package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	for _, key := range []string{"APP_PORT", "DB_DRIVER", "SQLITE_PATH", "JWT_TTL_HOURS", "CACHE_TTL_SECONDS", "REDIS_ADDR", "IS_PROD"} {
		t.Setenv(key, "") // registers restore on cleanup
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "connectingbr.sqlite", cfg.SQLitePath)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL())
	assert.Equal(t, 60*time.Second, cfg.CacheTTL())
	assert.False(t, cfg.CacheEnabled())
	assert.False(t, cfg.IsProd)
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"sqlite ok", Config{DBDriver: "sqlite", SQLitePath: "x.db", JWTTTLHours: 1, JWTSecret: "s"}, false},
		{"driver is normalized", Config{DBDriver: " SQLite ", SQLitePath: "x.db", JWTTTLHours: 1, JWTSecret: "s"}, false},
		{"sqlite without path", Config{DBDriver: "sqlite", JWTTTLHours: 1, JWTSecret: "s"}, true},
		{"mysql ok", Config{DBDriver: "mysql", DBUser: "root", JWTTTLHours: 1, JWTSecret: "s"}, false},
		{"mysql without user", Config{DBDriver: "mysql", JWTTTLHours: 1, JWTSecret: "s"}, true},
		{"postgres ok", Config{DBDriver: "postgres", DatabaseURL: "postgres://x", JWTTTLHours: 1, JWTSecret: "s"}, false},
		{"postgres without url", Config{DBDriver: "postgres", JWTTTLHours: 1, JWTSecret: "s"}, true},
		{"unknown driver", Config{DBDriver: "oracle", JWTTTLHours: 1, JWTSecret: "s"}, true},
		{"non positive ttl", Config{DBDriver: "sqlite", SQLitePath: "x.db", JWTSecret: "s"}, true},
		{"blank secret", Config{DBDriver: "sqlite", SQLitePath: "x.db", JWTTTLHours: 1, JWTSecret: "  "}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMySQLDSN(t *testing.T) {
	cfg := Config{DBUser: "app", DBPassword: "pw", DBHost: "db", DBPort: "3306", DBName: "market"}
	assert.Equal(t, "app:pw@tcp(db:3306)/market?parseTime=true", cfg.MySQLDSN())
}
