package repositories

import (
	"context"

	"servini-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// portfolioRepository implements PortfolioRepository interface
type portfolioRepository struct {
	db *gorm.DB
}

// NewPortfolioRepository creates a new portfolio repository
func NewPortfolioRepository(db *gorm.DB) PortfolioRepository {
	return &portfolioRepository{db: db}
}

// Create creates a portfolio project and its image rows as one unit
func (r *portfolioRepository) Create(ctx context.Context, project *models.PortfolioProject, imageURLs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		for _, url := range imageURLs {
			img := models.PortfolioImage{ProjectID: project.ID, ImageURL: url}
			if err := tx.Create(&img).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID gets a portfolio project by ID with its images
func (r *portfolioRepository) GetByID(ctx context.Context, id uint) (*models.PortfolioProject, error) {
	var project models.PortfolioProject
	err := r.db.WithContext(ctx).Preload("Images").Where("id = ?", id).First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// ListByContractor lists a contractor's portfolio with images, newest first
func (r *portfolioRepository) ListByContractor(ctx context.Context, contractorID uint) ([]*models.PortfolioProject, error) {
	var projects []*models.PortfolioProject
	err := r.db.WithContext(ctx).
		Preload("Images").
		Where("contractor_id = ?", contractorID).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

// Update updates a portfolio project
func (r *portfolioRepository) Update(ctx context.Context, project *models.PortfolioProject) error {
	return r.db.WithContext(ctx).Save(project).Error
}

// AddImages appends image rows to a portfolio project
func (r *portfolioRepository) AddImages(ctx context.Context, projectID uint, imageURLs []string) error {
	for _, url := range imageURLs {
		img := models.PortfolioImage{ProjectID: projectID, ImageURL: url}
		if err := r.db.WithContext(ctx).Create(&img).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a portfolio project and its image rows, returning the
// image URLs so the caller can unlink the files after commit.
func (r *portfolioRepository) Delete(ctx context.Context, id uint) ([]string, error) {
	var urls []string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var images []models.PortfolioImage
		if err := tx.Where("project_id = ?", id).Find(&images).Error; err != nil {
			return err
		}
		for _, img := range images {
			urls = append(urls, img.ImageURL)
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.PortfolioImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.PortfolioProject{}, id).Error
	})

	if err != nil {
		return nil, err
	}
	return urls, nil
}
