package repositories

import (
	"context"

	"servini-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// applicationRepository implements ApplicationRepository interface
type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// Create creates a new application
func (r *applicationRepository) Create(ctx context.Context, application *models.Application) error {
	return r.db.WithContext(ctx).Create(application).Error
}

// GetByID gets an application by ID with its project
func (r *applicationRepository) GetByID(ctx context.Context, id uint) (*models.Application, error) {
	var application models.Application
	err := r.db.WithContext(ctx).Preload("Project").Where("id = ?", id).First(&application).Error
	if err != nil {
		return nil, err
	}
	return &application, nil
}

// Exists checks whether a contractor already applied to a project
func (r *applicationRepository) Exists(ctx context.Context, projectID, contractorID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("project_id = ? AND contractor_id = ?", projectID, contractorID).
		Count(&count).Error
	return count > 0, err
}

// ListByProject lists applications on a project with contractor info
func (r *applicationRepository) ListByProject(ctx context.Context, projectID uint) ([]*models.Application, error) {
	var applications []*models.Application
	err := r.db.WithContext(ctx).
		Preload("Contractor").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&applications).Error
	return applications, err
}

// ListByContractor lists a contractor's own applications with project info
func (r *applicationRepository) ListByContractor(ctx context.Context, contractorID uint) ([]*models.Application, error) {
	var applications []*models.Application
	err := r.db.WithContext(ctx).
		Preload("Project").
		Where("contractor_id = ?", contractorID).
		Order("created_at DESC").
		Find(&applications).Error
	return applications, err
}

// Update updates an application
func (r *applicationRepository) Update(ctx context.Context, application *models.Application) error {
	return r.db.WithContext(ctx).Save(application).Error
}
