package services

import (
	"context"
	"errors"
	"log"
	"time"

	"servini-backend/internal/adapters/persistence/models"
	"servini-backend/internal/adapters/persistence/repositories"
	"servini-backend/internal/core/domain"

	"gorm.io/gorm"
)

// ProjectService handles project and application business logic
type ProjectService struct {
	projectRepo     repositories.ProjectRepository
	applicationRepo repositories.ApplicationRepository
}

// NewProjectService creates a new project service
func NewProjectService(
	projectRepo repositories.ProjectRepository,
	applicationRepo repositories.ApplicationRepository,
) *ProjectService {
	return &ProjectService{
		projectRepo:     projectRepo,
		applicationRepo: applicationRepo,
	}
}

// CreateProjectInput represents project creation input
type CreateProjectInput struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description"`
	Budget      float64    `json:"budget" validate:"gte=0"`
	Location    string     `json:"location" validate:"max=200"`
	Deadline    *time.Time `json:"deadline"`
}

// ApplyInput represents project application input
type ApplyInput struct {
	Message string `json:"message"`
}

// Create creates a project owned by the requesting client
func (s *ProjectService) Create(ctx context.Context, clientID uint, input *CreateProjectInput) (*models.ProjectResponse, error) {
	project := &models.Project{
		ClientID:    clientID,
		Title:       input.Title,
		Description: input.Description,
		Budget:      input.Budget,
		Location:    input.Location,
		Deadline:    input.Deadline,
		Status:      domain.ProjectStatusOpen,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	log.Printf("✅ Project created: %d by client %d", project.ID, clientID)
	return project.ToResponse(), nil
}

// ListByClient lists the requesting client's own projects
func (s *ProjectService) ListByClient(ctx context.Context, clientID uint) ([]*models.ProjectResponse, error) {
	projects, err := s.projectRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return toProjectResponses(projects), nil
}

// ListAvailable lists open projects for contractors to browse
func (s *ProjectService) ListAvailable(ctx context.Context) ([]*models.ProjectResponse, error) {
	projects, err := s.projectRepo.ListByStatus(ctx, domain.ProjectStatusOpen)
	if err != nil {
		return nil, err
	}
	return toProjectResponses(projects), nil
}

// Apply submits a contractor's application to a project. At most one
// application per (contractor, project) pair; the duplicate check runs
// before the insert and the composite unique index backs it up.
func (s *ProjectService) Apply(ctx context.Context, projectID, contractorID uint, input *ApplyInput) (*models.ApplicationResponse, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if project.Status != domain.ProjectStatusOpen {
		return nil, domain.ErrForbidden
	}

	exists, err := s.applicationRepo.Exists(ctx, projectID, contractorID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateApplication
	}

	application := &models.Application{
		ProjectID:    projectID,
		ContractorID: contractorID,
		Message:      input.Message,
		Status:       domain.ApplicationStatusPending,
	}

	if err := s.applicationRepo.Create(ctx, application); err != nil {
		return nil, err
	}

	log.Printf("✅ Application submitted: contractor %d -> project %d", contractorID, projectID)
	return application.ToResponse(), nil
}

// ListApplications lists applications on a project. Only the owning
// client (or an admin) may see them.
func (s *ProjectService) ListApplications(ctx context.Context, projectID, requesterID uint, role domain.Role) ([]*models.ApplicationResponse, error) {
	if _, err := loadOwned(ctx, s.projectRepo.GetByID, ownerOfProject, projectID, requesterID, role); err != nil {
		return nil, err
	}

	applications, err := s.applicationRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return toApplicationResponses(applications), nil
}

// ListMyApplications lists the requesting contractor's own applications
func (s *ProjectService) ListMyApplications(ctx context.Context, contractorID uint) ([]*models.ApplicationResponse, error) {
	applications, err := s.applicationRepo.ListByContractor(ctx, contractorID)
	if err != nil {
		return nil, err
	}
	return toApplicationResponses(applications), nil
}

// UpdateStatus transitions a project's status. Only the owning client
// (or an admin) may perform the transition.
func (s *ProjectService) UpdateStatus(ctx context.Context, projectID, requesterID uint, role domain.Role, status string) (*models.ProjectResponse, error) {
	if !domain.ValidProjectStatus(status) {
		return nil, domain.ErrInvalidInput
	}

	project, err := loadOwned(ctx, s.projectRepo.GetByID, ownerOfProject, projectID, requesterID, role)
	if err != nil {
		return nil, err
	}

	project.Status = status
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	return project.ToResponse(), nil
}

// UpdateApplicationStatus accepts/rejects an application. Only the
// client owning the applied-to project (or an admin) may decide.
func (s *ProjectService) UpdateApplicationStatus(ctx context.Context, applicationID, requesterID uint, role domain.Role, status string) (*models.ApplicationResponse, error) {
	if !domain.ValidApplicationStatus(status) {
		return nil, domain.ErrInvalidInput
	}

	application, err := s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if _, err := loadOwned(ctx, s.projectRepo.GetByID, ownerOfProject, application.ProjectID, requesterID, role); err != nil {
		return nil, err
	}

	application.Status = status
	if err := s.applicationRepo.Update(ctx, application); err != nil {
		return nil, err
	}

	return application.ToResponse(), nil
}

// Delete deletes a project and its applications. Admin only; the role
// gate enforces that at the route, the service re-checks existence.
func (s *ProjectService) Delete(ctx context.Context, projectID uint) error {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	if err := s.projectRepo.Delete(ctx, projectID); err != nil {
		return err
	}

	log.Printf("✅ Project deleted: %d", projectID)
	return nil
}

func ownerOfProject(p *models.Project) uint {
	return p.ClientID
}

func toProjectResponses(projects []*models.Project) []*models.ProjectResponse {
	responses := make([]*models.ProjectResponse, 0, len(projects))
	for _, project := range projects {
		responses = append(responses, project.ToResponse())
	}
	return responses
}

func toApplicationResponses(applications []*models.Application) []*models.ApplicationResponse {
	responses := make([]*models.ApplicationResponse, 0, len(applications))
	for _, application := range applications {
		responses = append(responses, application.ToResponse())
	}
	return responses
}
