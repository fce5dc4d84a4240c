package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"servini-backend/internal/adapters/persistence/models"
	"servini-backend/internal/adapters/persistence/repositories"
	"servini-backend/internal/config"
	"servini-backend/internal/core/domain"
	"servini-backend/internal/pkg/jwt"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "middleware-test-secret"

func setupAuthApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, models.AutoMigrate(db))

	cfg := &config.Config{
		AppMode: "dev",
		JWT:     config.JWTConfig{Secret: testSecret, AccessTokenHours: 24},
	}
	userRepo := repositories.NewUserRepository(db)

	app := fiber.New()
	auth := AuthMiddleware(cfg, userRepo)
	app.Get("/protected", auth, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals("userID")})
	})
	app.Get("/admin", auth, AdminOnly(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	return app, db
}

var middlewareUserSeq int

func createUser(t *testing.T, db *gorm.DB, role domain.Role, status string) *models.User {
	t.Helper()
	middlewareUserSeq++
	user := &models.User{
		Email:     fmt.Sprintf("mw%d@example.com", middlewareUserSeq),
		Password:  "irrelevant-hash",
		FirstName: "Middle",
		LastName:  "Ware",
		Role:      string(role),
		Status:    status,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := jwt.GenerateAccessToken(user.ID, user.Email, user.Role, testSecret, 24)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAuthMissingToken(t *testing.T) {
	app, _ := setupAuthApp(t)

	resp := doRequest(t, app, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthValidToken(t *testing.T) {
	app, db := setupAuthApp(t)
	user := createUser(t, db, domain.RoleClient, domain.UserStatusActive)

	resp := doRequest(t, app, "/protected", tokenFor(t, user))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthExpiredToken(t *testing.T) {
	app, db := setupAuthApp(t)
	user := createUser(t, db, domain.RoleClient, domain.UserStatusActive)

	expired, err := jwt.GenerateAccessToken(user.ID, user.Email, user.Role, testSecret, -1)
	require.NoError(t, err)

	resp := doRequest(t, app, "/protected", expired)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthTamperedToken(t *testing.T) {
	app, db := setupAuthApp(t)
	user := createUser(t, db, domain.RoleClient, domain.UserStatusActive)

	forged, err := jwt.GenerateAccessToken(user.ID, user.Email, user.Role, "attacker-secret", 24)
	require.NoError(t, err)

	resp := doRequest(t, app, "/protected", forged)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// A token issued before a suspension must stop working immediately: the
// middleware re-reads the user row on every request.
func TestAuthSuspendedAfterTokenIssued(t *testing.T) {
	app, db := setupAuthApp(t)
	user := createUser(t, db, domain.RoleClient, domain.UserStatusActive)
	token := tokenFor(t, user)

	resp := doRequest(t, app, "/protected", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("status", domain.UserStatusSuspended).Error)

	resp = doRequest(t, app, "/protected", token)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAuthDeletedAccount(t *testing.T) {
	app, db := setupAuthApp(t)
	user := createUser(t, db, domain.RoleClient, domain.UserStatusActive)
	token := tokenFor(t, user)

	require.NoError(t, db.Delete(&models.User{}, user.ID).Error)

	resp := doRequest(t, app, "/protected", token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRoleGate(t *testing.T) {
	app, db := setupAuthApp(t)
	client := createUser(t, db, domain.RoleClient, domain.UserStatusActive)
	admin := createUser(t, db, domain.RoleAdmin, domain.UserStatusActive)

	resp := doRequest(t, app, "/admin", tokenFor(t, client))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doRequest(t, app, "/admin", tokenFor(t, admin))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
