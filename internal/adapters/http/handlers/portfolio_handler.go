package handlers

import (
	"errors"

	"servini-backend/internal/core/domain"
	"servini-backend/internal/core/services"
	"servini-backend/internal/pkg/response"
	"servini-backend/internal/pkg/upload"
	"servini-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// PortfolioHandler handles contractor portfolio endpoints
type PortfolioHandler struct {
	portfolioService *services.PortfolioService
	uploads          *upload.Store
}

// NewPortfolioHandler creates a new portfolio handler
func NewPortfolioHandler(portfolioService *services.PortfolioService, uploads *upload.Store) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
		uploads:          uploads,
	}
}

// ListMine handles listing of the contractor's own portfolio
// @Summary List own portfolio
// @Tags Portfolio
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /portfolio [get]
func (h *PortfolioHandler) ListMine(c *fiber.Ctx) error {
	contractorID := c.Locals("userID").(uint)

	projects, err := h.portfolioService.ListByContractor(c.Context(), contractorID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list portfolio")
	}

	return response.Success(c, "Portfolio retrieved", projects)
}

// ListByContractor handles listing another contractor's portfolio
// @Summary List a contractor's portfolio
// @Tags Portfolio
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contractor ID"
// @Success 200 {object} response.Response
// @Router /portfolio/contractor/{id} [get]
func (h *PortfolioHandler) ListByContractor(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid contractor ID")
	}

	projects, err := h.portfolioService.ListByContractor(c.Context(), uint(id))
	if err != nil {
		return response.InternalServerError(c, "Failed to list portfolio")
	}

	return response.Success(c, "Portfolio retrieved", projects)
}

// Create handles portfolio project creation (contractor only)
// @Summary Create portfolio project
// @Description Add a past project to the contractor's portfolio
// @Tags Portfolio
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /portfolio [post]
func (h *PortfolioHandler) Create(c *fiber.Ctx) error {
	contractorID := c.Locals("userID").(uint)

	var input services.CreatePortfolioInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	images, err := h.uploads.SaveImages(c, "images", upload.KindPortfolio)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	input.Images = images

	project, err := h.portfolioService.Create(c.Context(), contractorID, &input)
	if err != nil {
		return response.InternalServerError(c, "Failed to create portfolio project")
	}

	return response.Created(c, "Portfolio project created", project)
}

// Update handles portfolio project update (owner or admin)
// @Summary Update portfolio project
// @Tags Portfolio
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Portfolio project ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /portfolio/{id} [patch]
func (h *PortfolioHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid portfolio project ID")
	}
	requesterID := c.Locals("userID").(uint)
	role := domain.Role(c.Locals("role").(string))

	var input services.UpdatePortfolioInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	newImages, err := h.uploads.SaveImages(c, "images", upload.KindPortfolio)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	input.NewImages = newImages

	project, err := h.portfolioService.Update(c.Context(), uint(id), requesterID, role, &input)
	if err != nil {
		h.uploads.RemoveAll(newImages)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Portfolio project not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You can only modify your own portfolio")
		default:
			return response.InternalServerError(c, "Failed to update portfolio project")
		}
	}

	return response.Success(c, "Portfolio project updated", project)
}

// Delete handles portfolio project deletion (owner or admin)
// @Summary Delete portfolio project
// @Tags Portfolio
// @Produce json
// @Security BearerAuth
// @Param id path int true "Portfolio project ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /portfolio/{id} [delete]
func (h *PortfolioHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid portfolio project ID")
	}
	requesterID := c.Locals("userID").(uint)
	role := domain.Role(c.Locals("role").(string))

	if err := h.portfolioService.Delete(c.Context(), uint(id), requesterID, role); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Portfolio project not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You can only delete your own portfolio")
		default:
			return response.InternalServerError(c, "Failed to delete portfolio project")
		}
	}

	return response.Success(c, "Portfolio project deleted", nil)
}
