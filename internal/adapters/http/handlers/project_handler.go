package handlers

import (
	"errors"

	"servini-backend/internal/core/domain"
	"servini-backend/internal/core/services"
	"servini-backend/internal/pkg/response"
	"servini-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// ProjectHandler handles project post and application endpoints
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// statusRequest carries a status transition body
type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Create handles project creation (client only)
// @Summary Create project
// @Description Post a new project looking for contractors
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateProjectInput true "Project data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /projects [post]
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	clientID := c.Locals("userID").(uint)

	var input services.CreateProjectInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	project, err := h.projectService.Create(c.Context(), clientID, &input)
	if err != nil {
		return response.InternalServerError(c, "Failed to create project")
	}

	return response.Created(c, "Project created successfully", project)
}

// ListMine handles listing of the client's own projects
// @Summary List own projects
// @Tags Projects
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /projects/client [get]
func (h *ProjectHandler) ListMine(c *fiber.Ctx) error {
	clientID := c.Locals("userID").(uint)

	projects, err := h.projectService.ListByClient(c.Context(), clientID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list projects")
	}

	return response.Success(c, "Projects retrieved", projects)
}

// ListAvailable handles listing of open projects (contractor only)
// @Summary List available projects
// @Description List open projects contractors can apply to
// @Tags Projects
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /projects/available [get]
func (h *ProjectHandler) ListAvailable(c *fiber.Ctx) error {
	projects, err := h.projectService.ListAvailable(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list projects")
	}

	return response.Success(c, "Projects retrieved", projects)
}

// Apply handles a contractor's application to a project
// @Summary Apply to project
// @Description Submit an application to an open project
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param body body services.ApplyInput true "Application message"
// @Success 201 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /projects/{id}/apply [post]
func (h *ProjectHandler) Apply(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid project ID")
	}
	contractorID := c.Locals("userID").(uint)

	var input services.ApplyInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	application, err := h.projectService.Apply(c.Context(), uint(id), contractorID, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Project not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "Project is not open for applications")
		case errors.Is(err, domain.ErrDuplicateApplication):
			return response.ErrorCode(c, fiber.StatusConflict, response.CodeDuplicateApplication, "You have already applied to this project")
		default:
			return response.InternalServerError(c, "Failed to submit application")
		}
	}

	return response.Created(c, "Application submitted successfully", application)
}

// ListApplications handles listing of applications on a project
// @Summary List project applications
// @Description List applications on an owned project
// @Tags Projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /projects/{id}/applications [get]
func (h *ProjectHandler) ListApplications(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid project ID")
	}
	requesterID := c.Locals("userID").(uint)
	role := domain.Role(c.Locals("role").(string))

	applications, err := h.projectService.ListApplications(c.Context(), uint(id), requesterID, role)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Project not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You can only view applications on your own projects")
		default:
			return response.InternalServerError(c, "Failed to list applications")
		}
	}

	return response.Success(c, "Applications retrieved", applications)
}

// ListMyApplications handles listing of the contractor's own applications
// @Summary List own applications
// @Tags Projects
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /applications/my [get]
func (h *ProjectHandler) ListMyApplications(c *fiber.Ctx) error {
	contractorID := c.Locals("userID").(uint)

	applications, err := h.projectService.ListMyApplications(c.Context(), contractorID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list applications")
	}

	return response.Success(c, "Applications retrieved", applications)
}

// UpdateStatus handles project status transition
// @Summary Update project status
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param body body statusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /projects/{id}/status [patch]
func (h *ProjectHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid project ID")
	}
	requesterID := c.Locals("userID").(uint)
	role := domain.Role(c.Locals("role").(string))

	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	project, err := h.projectService.UpdateStatus(c.Context(), uint(id), requesterID, role, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid project status")
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Project not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You can only modify your own projects")
		default:
			return response.InternalServerError(c, "Failed to update project")
		}
	}

	return response.Success(c, "Project status updated", project)
}

// Delete handles project removal (admin moderation)
// @Summary Delete project
// @Description Remove a project and its applications
// @Tags Projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /projects/{id} [delete]
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid project ID")
	}

	if err := h.projectService.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Project not found")
		}
		return response.InternalServerError(c, "Failed to delete project")
	}

	return response.Success(c, "Project deleted", nil)
}

// UpdateApplicationStatus handles accepting/rejecting an application
// @Summary Update application status
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param body body statusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /applications/{id}/status [patch]
func (h *ProjectHandler) UpdateApplicationStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid application ID")
	}
	requesterID := c.Locals("userID").(uint)
	role := domain.Role(c.Locals("role").(string))

	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	application, err := h.projectService.UpdateApplicationStatus(c.Context(), uint(id), requesterID, role, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid application status")
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Application not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You can only decide applications on your own projects")
		default:
			return response.InternalServerError(c, "Failed to update application")
		}
	}

	return response.Success(c, "Application status updated", application)
}
