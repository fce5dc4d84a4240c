package repositories

import (
	"context"

	"servini-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// projectRepository implements ProjectRepository interface
type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// Create creates a new project
func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// GetByID gets a project by ID with its client
func (r *projectRepository) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).Preload("Client").Where("id = ?", id).First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// ListByClient lists a client's own projects, newest first
func (r *projectRepository) ListByClient(ctx context.Context, clientID uint) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

// ListByStatus lists projects in a given status with client info, newest first
func (r *projectRepository) ListByStatus(ctx context.Context, status string) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.WithContext(ctx).
		Preload("Client").
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

// ListAll lists every project with client info, newest first
func (r *projectRepository) ListAll(ctx context.Context) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.WithContext(ctx).
		Preload("Client").
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

// CountApplications counts applications on a project
func (r *projectRepository) CountApplications(ctx context.Context, projectID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return count, err
}

// Update updates a project
func (r *projectRepository) Update(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

// Delete deletes a project and its applications as one unit
func (r *projectRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, id).Error
	})
}
