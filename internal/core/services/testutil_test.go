package services

import (
	"fmt"
	"testing"

	"servini-backend/internal/adapters/persistence/models"
	"servini-backend/internal/config"
	"servini-backend/internal/core/domain"
	"servini-backend/internal/pkg/password"
	"servini-backend/internal/pkg/upload"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// Single connection so the in-memory database is shared by every query
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.AutoMigrate(db))
	return db
}

func setupTestUploads(t *testing.T) *upload.Store {
	t.Helper()
	store, err := upload.NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			AccessTokenHours: 24,
		},
	}
}

var testUserSeq int

// createTestUser inserts a user with a real bcrypt hash of "password123"
func createTestUser(t *testing.T, db *gorm.DB, role domain.Role) *models.User {
	t.Helper()

	testUserSeq++
	hashed, err := password.Hash("password123")
	require.NoError(t, err)

	user := &models.User{
		Email:     fmt.Sprintf("user%d@example.com", testUserSeq),
		Password:  hashed,
		FirstName: "Test",
		LastName:  fmt.Sprintf("User%d", testUserSeq),
		Role:      string(role),
		Status:    domain.UserStatusActive,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestProject(t *testing.T, db *gorm.DB, clientID uint, status string) *models.Project {
	t.Helper()

	project := &models.Project{
		ClientID: clientID,
		Title:    "Bathroom renovation",
		Budget:   2500,
		Location: "Madrid",
		Status:   status,
	}
	require.NoError(t, db.Create(project).Error)
	return project
}
