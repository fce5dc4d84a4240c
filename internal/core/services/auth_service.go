package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"servini-backend/internal/adapters/persistence/models"
	"servini-backend/internal/adapters/persistence/repositories"
	"servini-backend/internal/config"
	"servini-backend/internal/core/domain"
	"servini-backend/internal/pkg/jwt"
	"servini-backend/internal/pkg/password"

	"gorm.io/gorm"
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo repositories.UserRepository
	cfg      *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Role      string `json:"role" validate:"required,oneof=client contractor"`
	Phone     string `json:"phone" validate:"max=30"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User  *models.UserResponse `json:"user"`
	Token string               `json:"token"`
}

// Register registers a new user
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResponse, error) {
	// 1. Only client/contractor may self-register; admin comes from the seeder
	role := domain.Role(input.Role)
	if !role.CanRegister() {
		return nil, domain.ErrInvalidRole
	}

	// 2. Reject duplicate email (case-sensitive exact match)
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEmail
	}

	// 3. Hash password before anything touches storage
	if err := password.ValidatePassword(input.Password); err != nil {
		return nil, domain.ErrInvalidInput
	}
	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	// 4. Create user
	user := &models.User{
		Email:     input.Email,
		Password:  hashedPassword,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      string(role),
		Status:    domain.UserStatusActive,
		Phone:     input.Phone,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// 5. Issue token
	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User registered: %s (%s)", user.Email, user.Role)

	return &AuthResponse{
		User:  user.ToResponse(),
		Token: token,
	}, nil
}

// Login authenticates a user. Unknown email and wrong password yield the
// identical error so the response cannot be used for account enumeration.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	// 1. Find user by email
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Verify password
	if !password.Verify(input.Password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	// 3. Suspended accounts cannot log in
	if user.Status == domain.UserStatusSuspended {
		return nil, domain.ErrAccountSuspended
	}

	// 4. Issue token
	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User logged in: %s", user.Email)

	return &AuthResponse{
		User:  user.ToResponse(),
		Token: token,
	}, nil
}

// GetUserByID gets a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// generateToken issues a 24h access token carrying user id and role
func (s *AuthService) generateToken(user *models.User) (string, error) {
	return jwt.GenerateAccessToken(
		user.ID,
		user.Email,
		user.Role,
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenHours,
	)
}

// NormalizeEmail trims surrounding whitespace. Matching stays
// case-sensitive: two registrations differing only by case are distinct
// addresses as far as the store is concerned.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(email)
}
