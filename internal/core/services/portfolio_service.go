package services

import (
	"context"
	"log"
	"time"

	"servini-backend/internal/adapters/persistence/models"
	"servini-backend/internal/adapters/persistence/repositories"
	"servini-backend/internal/core/domain"
	"servini-backend/internal/pkg/upload"
)

// PortfolioService handles contractor portfolio business logic
type PortfolioService struct {
	portfolioRepo repositories.PortfolioRepository
	uploads       *upload.Store
}

// NewPortfolioService creates a new portfolio service
func NewPortfolioService(portfolioRepo repositories.PortfolioRepository, uploads *upload.Store) *PortfolioService {
	return &PortfolioService{
		portfolioRepo: portfolioRepo,
		uploads:       uploads,
	}
}

// CreatePortfolioInput represents portfolio project creation input
type CreatePortfolioInput struct {
	Title          string     `json:"title" validate:"required,max=200"`
	Description    string     `json:"description"`
	CompletionDate *time.Time `json:"completion_date"`
	ClientName     string     `json:"client_name" validate:"max=200"`
	Images         []string   `json:"-"`
}

// UpdatePortfolioInput represents portfolio project update input
type UpdatePortfolioInput struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	CompletionDate *time.Time `json:"completion_date"`
	ClientName     *string    `json:"client_name"`
	NewImages      []string   `json:"-"`
}

// ListByContractor lists the requesting contractor's portfolio
func (s *PortfolioService) ListByContractor(ctx context.Context, contractorID uint) ([]*models.PortfolioProject, error) {
	return s.portfolioRepo.ListByContractor(ctx, contractorID)
}

// Create creates a portfolio project with its images. If the row insert
// fails the already-saved files are unlinked so nothing is left orphaned.
func (s *PortfolioService) Create(ctx context.Context, contractorID uint, input *CreatePortfolioInput) (*models.PortfolioProject, error) {
	project := &models.PortfolioProject{
		ContractorID:   contractorID,
		Title:          input.Title,
		Description:    input.Description,
		CompletionDate: input.CompletionDate,
		ClientName:     input.ClientName,
	}

	if err := s.portfolioRepo.Create(ctx, project, input.Images); err != nil {
		s.uploads.RemoveAll(input.Images)
		return nil, err
	}

	log.Printf("✅ Portfolio project created: %d by contractor %d", project.ID, contractorID)
	return s.portfolioRepo.GetByID(ctx, project.ID)
}

// Update updates a portfolio project. Only the owning contractor (or an
// admin) may mutate it.
func (s *PortfolioService) Update(ctx context.Context, id, requesterID uint, role domain.Role, input *UpdatePortfolioInput) (*models.PortfolioProject, error) {
	project, err := loadOwned(ctx, s.portfolioRepo.GetByID, ownerOfPortfolio, id, requesterID, role)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		project.Title = *input.Title
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.CompletionDate != nil {
		project.CompletionDate = input.CompletionDate
	}
	if input.ClientName != nil {
		project.ClientName = *input.ClientName
	}

	if err := s.portfolioRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	if len(input.NewImages) > 0 {
		if err := s.portfolioRepo.AddImages(ctx, project.ID, input.NewImages); err != nil {
			s.uploads.RemoveAll(input.NewImages)
			return nil, err
		}
	}

	return s.portfolioRepo.GetByID(ctx, project.ID)
}

// Delete deletes a portfolio project and unlinks its image files
// best-effort after the row deletes commit.
func (s *PortfolioService) Delete(ctx context.Context, id, requesterID uint, role domain.Role) error {
	project, err := loadOwned(ctx, s.portfolioRepo.GetByID, ownerOfPortfolio, id, requesterID, role)
	if err != nil {
		return err
	}

	urls, err := s.portfolioRepo.Delete(ctx, project.ID)
	if err != nil {
		return err
	}

	s.uploads.RemoveAll(urls)
	log.Printf("✅ Portfolio project deleted: %d", project.ID)
	return nil
}

func ownerOfPortfolio(p *models.PortfolioProject) uint {
	return p.ContractorID
}
