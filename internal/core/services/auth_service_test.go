package services

import (
	"context"
	"testing"

	"servini-backend/internal/adapters/persistence/models"
	"servini-backend/internal/adapters/persistence/repositories"
	"servini-backend/internal/core/domain"
	"servini-backend/internal/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*AuthService, repositories.UserRepository) {
	t.Helper()
	db := setupTestDB(t)
	userRepo := repositories.NewUserRepository(db)
	return NewAuthService(userRepo, testConfig()), userRepo
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, userRepo := newAuthService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, &RegisterInput{
		Email:     "maria@example.com",
		Password:  "supersecret1",
		FirstName: "Maria",
		LastName:  "Lopez",
		Role:      "client",
	})
	require.NoError(t, err)
	require.NotNil(t, result.User)
	assert.NotEmpty(t, result.Token)

	stored, err := userRepo.GetByEmail(ctx, "maria@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "supersecret1", stored.Password)
	assert.NotEmpty(t, stored.Password)

	// Issued token carries the user's identity and role
	claims, err := jwt.ValidateAccessToken(result.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, stored.ID, claims.UserID)
	assert.Equal(t, "client", claims.Role)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(context.Background(), &RegisterInput{
		Email:     "boss@example.com",
		Password:  "supersecret1",
		FirstName: "Boss",
		LastName:  "Person",
		Role:      "admin",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(context.Background(), &RegisterInput{
		Email:     "tiny@example.com",
		Password:  "tiny",
		FirstName: "Tiny",
		LastName:  "Password",
		Role:      "client",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	input := &RegisterInput{
		Email:     "dup@example.com",
		Password:  "supersecret1",
		FirstName: "First",
		LastName:  "Taker",
		Role:      "contractor",
	}
	_, err := svc.Register(ctx, input)
	require.NoError(t, err)

	_, err = svc.Register(ctx, input)
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestLoginEnumerationSafe(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterInput{
		Email:     "known@example.com",
		Password:  "supersecret1",
		FirstName: "Known",
		LastName:  "User",
		Role:      "client",
	})
	require.NoError(t, err)

	// Wrong password on an existing account and an unknown account must
	// yield the exact same error
	_, errWrongPass := svc.Login(ctx, &LoginInput{Email: "known@example.com", Password: "not-the-password"})
	_, errUnknown := svc.Login(ctx, &LoginInput{Email: "nobody@example.com", Password: "whatever123"})

	assert.ErrorIs(t, errWrongPass, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknown, domain.ErrInvalidCredentials)
	assert.Equal(t, errWrongPass, errUnknown)
}

func TestLoginSuspendedAccount(t *testing.T) {
	db := setupTestDB(t)
	userRepo := repositories.NewUserRepository(db)
	svc := NewAuthService(userRepo, testConfig())
	ctx := context.Background()

	user := createTestUser(t, db, domain.RoleContractor)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("status", domain.UserStatusSuspended).Error)

	_, err := svc.Login(ctx, &LoginInput{Email: user.Email, Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrAccountSuspended)
}

func TestLoginSuccess(t *testing.T) {
	db := setupTestDB(t)
	userRepo := repositories.NewUserRepository(db)
	svc := NewAuthService(userRepo, testConfig())

	user := createTestUser(t, db, domain.RoleClient)

	result, err := svc.Login(context.Background(), &LoginInput{Email: user.Email, Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, result.User.ID)
	assert.NotEmpty(t, result.Token)
}
