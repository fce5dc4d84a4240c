package handlers

import (
	"errors"

	"servini-backend/internal/core/domain"
	"servini-backend/internal/core/services"
	"servini-backend/internal/pkg/pagination"
	"servini-backend/internal/pkg/response"
	"servini-backend/internal/pkg/upload"
	"servini-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// OfferHandler handles contractor offer endpoints
type OfferHandler struct {
	offerService *services.OfferService
	uploads      *upload.Store
}

// NewOfferHandler creates a new offer handler
func NewOfferHandler(offerService *services.OfferService, uploads *upload.Store) *OfferHandler {
	return &OfferHandler{
		offerService: offerService,
		uploads:      uploads,
	}
}

// List handles offer listing
// @Summary List offers
// @Description List all offers with pagination
// @Tags Offers
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /offers [get]
func (h *OfferHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	offers, total, err := h.offerService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list offers")
	}

	return response.Success(c, "Offers retrieved", pagination.NewResponse(offers, params, total))
}

// Get handles single offer retrieval
// @Summary Get offer
// @Description Get a single offer by ID
// @Tags Offers
// @Produce json
// @Param id path int true "Offer ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /offers/{id} [get]
func (h *OfferHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid offer ID")
	}

	offer, err := h.offerService.Get(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Offer not found")
		}
		return response.InternalServerError(c, "Failed to get offer")
	}

	return response.Success(c, "Offer retrieved", offer)
}

// Create handles offer creation (contractor only)
// @Summary Create offer
// @Description Create a new service offer with optional images
// @Tags Offers
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /offers [post]
func (h *OfferHandler) Create(c *fiber.Ctx) error {
	contractorID := c.Locals("userID").(uint)

	var input services.CreateOfferInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	images, err := h.uploads.SaveImages(c, "images", upload.KindOffers)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	input.Images = images

	offer, err := h.offerService.Create(c.Context(), contractorID, &input)
	if err != nil {
		// Creation failed after files were written; unlink them
		h.uploads.RemoveAll(images)
		return response.InternalServerError(c, "Failed to create offer")
	}

	return response.Created(c, "Offer created successfully", offer)
}

// Update handles offer update (owner or admin)
// @Summary Update offer
// @Description Update an offer's fields and images
// @Tags Offers
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Offer ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /offers/{id} [put]
func (h *OfferHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid offer ID")
	}
	requesterID := c.Locals("userID").(uint)
	role := domain.Role(c.Locals("role").(string))

	var input services.UpdateOfferInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	newImages, err := h.uploads.SaveImages(c, "images", upload.KindOffers)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	input.NewImages = newImages

	offer, err := h.offerService.Update(c.Context(), uint(id), requesterID, role, &input)
	if err != nil {
		h.uploads.RemoveAll(newImages)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Offer not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You can only modify your own offers")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid offer status")
		default:
			return response.InternalServerError(c, "Failed to update offer")
		}
	}

	return response.Success(c, "Offer updated successfully", offer)
}

// Delete handles offer deletion (owner or admin)
// @Summary Delete offer
// @Description Delete an offer and its images
// @Tags Offers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Offer ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /offers/{id} [delete]
func (h *OfferHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid offer ID")
	}
	requesterID := c.Locals("userID").(uint)
	role := domain.Role(c.Locals("role").(string))

	if err := h.offerService.Delete(c.Context(), uint(id), requesterID, role); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Offer not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You can only delete your own offers")
		default:
			return response.InternalServerError(c, "Failed to delete offer")
		}
	}

	return response.Success(c, "Offer deleted successfully", nil)
}
