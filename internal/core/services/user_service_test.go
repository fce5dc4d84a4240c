package services

import (
	"context"
	"testing"

	"servini-backend/internal/adapters/persistence/repositories"
	"servini-backend/internal/core/domain"
	"servini-backend/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(t *testing.T) (*UserService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return NewUserService(repositories.NewUserRepository(db), setupTestUploads(t)), db
}

func TestUpdateProfilePartialFields(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()
	user := createTestUser(t, db, domain.RoleContractor)

	bio := "Twenty years of carpentry"
	updated, err := svc.UpdateProfile(ctx, user.ID, &UpdateProfileInput{
		Bio:    &bio,
		Skills: []string{"carpentry", "framing"},
	})
	require.NoError(t, err)
	assert.Equal(t, bio, updated.Bio)
	assert.Equal(t, []string{"carpentry", "framing"}, updated.Skills)

	// Untouched fields keep their values
	assert.Equal(t, user.FirstName, updated.FirstName)
	assert.Equal(t, user.Email, updated.Email)
}

func TestChangePasswordVerifiesOld(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()
	user := createTestUser(t, db, domain.RoleClient)

	err := svc.ChangePassword(ctx, user.ID, &ChangePasswordInput{
		OldPassword: "not-the-password",
		NewPassword: "brandnewpass1",
	})
	assert.ErrorIs(t, err, ErrOldPasswordWrong)

	require.NoError(t, svc.ChangePassword(ctx, user.ID, &ChangePasswordInput{
		OldPassword: "password123",
		NewPassword: "brandnewpass1",
	}))

	// New hash verifies the new password, not the old one
	var stored struct{ Password string }
	require.NoError(t, db.Table("users").Where("id = ?", user.ID).Take(&stored).Error)
	assert.True(t, password.Verify("brandnewpass1", stored.Password))
	assert.False(t, password.Verify("password123", stored.Password))
}

func TestGetProfileNotFound(t *testing.T) {
	svc, _ := newUserService(t)

	_, err := svc.GetProfile(context.Background(), 9999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
