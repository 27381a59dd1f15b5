package testutil

import (
	"connectingbr/internal/db"
	"connectingbr/internal/domain"
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var seq atomic.Int64

// NewTestDB opens a migrated in-memory SQLite database private to the test.
// A single connection keeps the memory database alive and serializes transactions.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(conn); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return conn
}

// CreateUser inserts a user with the given role and a unique email
func CreateUser(t *testing.T, conn *gorm.DB, role domain.Role) *domain.User {
	t.Helper()

	n := seq.Add(1)
	user := &domain.User{
		Name:     fmt.Sprintf("User%d", n),
		Surname:  "Test",
		Email:    fmt.Sprintf("user%d@example.com", n),
		Password: "not-a-real-hash",
		Role:     role,
	}
	if err := conn.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}

// CreateCategory inserts an active category with a unique name
func CreateCategory(t *testing.T, conn *gorm.DB) *domain.Category {
	t.Helper()

	category := &domain.Category{Name: fmt.Sprintf("Category %d", seq.Add(1)), IsActive: true}
	if err := conn.Create(category).Error; err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}
	return category
}

// ReloadUser reads the user row back from the database
func ReloadUser(t *testing.T, conn *gorm.DB, id uint) *domain.User {
	t.Helper()

	var user domain.User
	if err := conn.First(&user, id).Error; err != nil {
		t.Fatalf("Failed to reload user %d: %v", id, err)
	}
	return &user
}
