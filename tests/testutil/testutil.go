package testutil

import (
	"fmt"
	"os"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/comedor/lunch-orders-api/models"
)

// RequireTestEnvironment ensures that tests are running in the test environment.
// This prevents accidental execution of tests against production or development databases.
// It will fail the test immediately if GO_ENV is not set to "test".
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	env := os.Getenv("GO_ENV")
	if env != "test" {
		t.Fatalf("SAFETY CHECK FAILED: Tests must run with GO_ENV=test to prevent data loss. Current GO_ENV=%q. Set GO_ENV=test before running tests.", env)
	}
}

// RequireTestEnvironmentOrSkip is similar to RequireTestEnvironment but skips the test
// instead of failing it. Use this for optional tests that should only run in test environment.
func RequireTestEnvironmentOrSkip(t *testing.T) {
	t.Helper()

	env := os.Getenv("GO_ENV")
	if env != "test" {
		t.Skipf("Skipping test: GO_ENV must be 'test' (current: %q)", env)
	}
}

// MustSetTestEnvironment sets GO_ENV to test and fails if it cannot be set.
// Use this in TestMain or suite setup functions.
func MustSetTestEnvironment(t *testing.T) {
	t.Helper()

	if err := os.Setenv("GO_ENV", "test"); err != nil {
		t.Fatalf("Failed to set GO_ENV=test: %v", err)
	}

	if os.Getenv("GO_ENV") != "test" {
		t.Fatal("Failed to verify GO_ENV=test")
	}
}

// NewTestDB opens an isolated in-memory database with the full schema
// migrated. Every caller gets a fresh store.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	// Every connection to :memory: is its own database; keep the pool at one
	// so concurrent fetches see the same data.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.Menu{}, &models.Order{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// CreateUser inserts a user row for tests and returns it
func CreateUser(t *testing.T, db *gorm.DB, auth0ID, displayName string) models.User {
	t.Helper()

	user := models.User{
		Auth0ID:     auth0ID,
		DisplayName: displayName,
		Email:       auth0ID + "@example.com",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// PrintEnvironmentInfo prints the current test environment configuration.
// Useful for debugging test environment issues.
func PrintEnvironmentInfo() {
	fmt.Printf("Test Environment Info:\n")
	fmt.Printf("  GO_ENV: %s\n", os.Getenv("GO_ENV"))
	fmt.Printf("  PORT: %s\n", os.Getenv("PORT"))
}
