package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"servini-backend/internal/adapters/persistence/models"
	"servini-backend/internal/adapters/persistence/repositories"
	"servini-backend/internal/core/domain"
	"servini-backend/internal/pkg/upload"

	"gorm.io/gorm"
)

// AdminService handles privileged cross-cutting operations
type AdminService struct {
	userRepo    repositories.UserRepository
	projectRepo repositories.ProjectRepository
	uploads     *upload.Store
	db          *gorm.DB
}

// NewAdminService creates a new admin service
func NewAdminService(
	userRepo repositories.UserRepository,
	projectRepo repositories.ProjectRepository,
	uploads *upload.Store,
	db *gorm.DB,
) *AdminService {
	return &AdminService{
		userRepo:    userRepo,
		projectRepo: projectRepo,
		uploads:     uploads,
		db:          db,
	}
}

// UserStats aggregates user counts, admins excluded
type UserStats struct {
	TotalUsers      int64 `json:"total_users"`
	ClientCount     int64 `json:"client_count"`
	ContractorCount int64 `json:"contractor_count"`
	SuspendedCount  int64 `json:"suspended_count"`
}

// ProjectStats aggregates project counts
type ProjectStats struct {
	TotalProjects     int64 `json:"total_projects"`
	OpenProjects      int64 `json:"open_projects"`
	CompletedProjects int64 `json:"completed_projects"`
}

// PlatformStats is the admin stats payload
type PlatformStats struct {
	Users             UserStats    `json:"users"`
	Projects          ProjectStats `json:"projects"`
	TotalOffers       int64        `json:"total_offers"`
	TotalApplications int64        `json:"total_applications"`
}

// ListUsers lists all users, sanitized, with pagination
func (s *AdminService) ListUsers(ctx context.Context, offset, limit int) ([]*models.UserResponse, int64, error) {
	users, total, err := s.userRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, user.ToResponse())
	}
	return responses, total, nil
}

// UpdateUserStatus toggles a user between active and suspended. Admin
// accounts may not be targeted.
func (s *AdminService) UpdateUserStatus(ctx context.Context, userID uint, status string) (*models.UserResponse, error) {
	if status != domain.UserStatusActive && status != domain.UserStatusSuspended {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if user.Role == string(domain.RoleAdmin) {
		return nil, domain.ErrForbidden
	}

	user.Status = status
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ User %d status set to %s", userID, status)
	return user.ToResponse(), nil
}

// DeleteUser removes a user and every dependent record as one atomic
// unit, then cleans up the referenced upload files best-effort. Admin
// accounts may not be targeted.
func (s *AdminService) DeleteUser(ctx context.Context, userID uint) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if user.Role == string(domain.RoleAdmin) {
		return domain.ErrForbidden
	}

	filePaths, err := s.userRepo.DeleteCascade(ctx, userID)
	if err != nil {
		log.Printf("❌ Cascade delete failed for user %d: %v", userID, err)
		return fmt.Errorf("%w: %v", domain.ErrDeletionFailed, err)
	}

	// Data is gone; file cleanup after commit is best-effort only
	s.uploads.RemoveAll(filePaths)

	log.Printf("✅ User %d and all associated data deleted", userID)
	return nil
}

// ListProjects lists every project with client info and application
// counts
func (s *AdminService) ListProjects(ctx context.Context) ([]*models.ProjectResponse, error) {
	projects, err := s.projectRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.ProjectResponse, 0, len(projects))
	for _, project := range projects {
		resp := project.ToResponse()
		count, err := s.projectRepo.CountApplications(ctx, project.ID)
		if err != nil {
			return nil, err
		}
		resp.ApplicationsCount = count
		responses = append(responses, resp)
	}
	return responses, nil
}

// Stats aggregates platform-wide counts for the admin dashboard
func (s *AdminService) Stats(ctx context.Context) (*PlatformStats, error) {
	stats := &PlatformStats{}
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.User{}).Where("role != ?", domain.RoleAdmin).Count(&stats.Users.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.User{}).Where("role = ?", domain.RoleClient).Count(&stats.Users.ClientCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.User{}).Where("role = ?", domain.RoleContractor).Count(&stats.Users.ContractorCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.User{}).Where("status = ?", domain.UserStatusSuspended).Count(&stats.Users.SuspendedCount).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Project{}).Count(&stats.Projects.TotalProjects).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Project{}).Where("status = ?", domain.ProjectStatusOpen).Count(&stats.Projects.OpenProjects).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Project{}).Where("status = ?", domain.ProjectStatusCompleted).Count(&stats.Projects.CompletedProjects).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Offer{}).Count(&stats.TotalOffers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Application{}).Count(&stats.TotalApplications).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
