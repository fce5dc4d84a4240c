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

// FeedHandler handles community feed endpoints
type FeedHandler struct {
	feedService *services.FeedService
	uploads     *upload.Store
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(feedService *services.FeedService, uploads *upload.Store) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
		uploads:     uploads,
	}
}

// List handles feed listing
// @Summary List feed posts
// @Description List feed posts newest first with pagination
// @Tags Feed
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /feed [get]
func (h *FeedHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	posts, total, err := h.feedService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list feed posts")
	}

	return response.Success(c, "Feed retrieved", pagination.NewResponse(posts, params, total))
}

// Create handles feed post creation
// @Summary Create feed post
// @Description Post to the community feed with optional images
// @Tags Feed
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /feed [post]
func (h *FeedHandler) Create(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var input services.CreateFeedPostInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	images, err := h.uploads.SaveImages(c, "images", upload.KindFeeds)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	input.Images = images

	post, err := h.feedService.Create(c.Context(), userID, &input)
	if err != nil {
		h.uploads.RemoveAll(images)
		return response.InternalServerError(c, "Failed to create feed post")
	}

	return response.Created(c, "Feed post created", post)
}

// Delete handles feed post deletion (author or admin)
// @Summary Delete feed post
// @Tags Feed
// @Produce json
// @Security BearerAuth
// @Param id path int true "Feed post ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /feed/{id} [delete]
func (h *FeedHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid feed post ID")
	}
	requesterID := c.Locals("userID").(uint)
	role := domain.Role(c.Locals("role").(string))

	if err := h.feedService.Delete(c.Context(), uint(id), requesterID, role); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Feed post not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You can only delete your own posts")
		default:
			return response.InternalServerError(c, "Failed to delete feed post")
		}
	}

	return response.Success(c, "Feed post deleted", nil)
}
