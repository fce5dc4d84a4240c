package services

import (
	"context"
	"errors"
	"log"

	"servini-backend/internal/adapters/persistence/models"
	"servini-backend/internal/adapters/persistence/repositories"
	"servini-backend/internal/core/domain"
	"servini-backend/internal/pkg/password"
	"servini-backend/internal/pkg/upload"

	"gorm.io/gorm"
)

// ErrOldPasswordWrong is returned when a password change fails re-verification
var ErrOldPasswordWrong = errors.New("old password is incorrect")

// UserService handles profile business logic
type UserService struct {
	userRepo repositories.UserRepository
	uploads  *upload.Store
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, uploads *upload.Store) *UserService {
	return &UserService{
		userRepo: userRepo,
		uploads:  uploads,
	}
}

// UpdateProfileInput represents update profile input
type UpdateProfileInput struct {
	FirstName    *string  `json:"first_name"`
	LastName     *string  `json:"last_name"`
	Phone        *string  `json:"phone"`
	Bio          *string  `json:"bio"`
	Skills       []string `json:"skills"`
	ProfileImage string   `json:"-"`
}

// ChangePasswordInput represents change password input
type ChangePasswordInput struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// GetProfile returns the sanitized profile of a user
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// UpdateProfile updates the requester's own profile. Role is immutable
// here: nothing in the input can change it.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input *UpdateProfileInput) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Skills != nil {
		user.Skills = input.Skills
	}

	oldImage := ""
	if input.ProfileImage != "" {
		oldImage = user.ProfileImage
		user.ProfileImage = input.ProfileImage
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	// Replaced image file is cleaned up best-effort after the update lands
	if oldImage != "" {
		s.uploads.Remove(oldImage)
	}

	return user.ToResponse(), nil
}

// ChangePassword changes the requester's password after re-verifying the
// old one
func (s *UserService) ChangePassword(ctx context.Context, userID uint, input *ChangePasswordInput) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if !password.Verify(input.OldPassword, user.Password) {
		return ErrOldPasswordWrong
	}

	if err := password.ValidatePassword(input.NewPassword); err != nil {
		return domain.ErrInvalidInput
	}
	hashed, err := password.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	user.Password = hashed
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	log.Printf("✅ Password changed for user ID: %d", userID)
	return nil
}
