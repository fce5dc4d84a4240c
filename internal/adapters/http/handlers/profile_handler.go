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

// ProfileHandler handles the authenticated user's profile endpoints
type ProfileHandler struct {
	userService *services.UserService
	uploads     *upload.Store
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(userService *services.UserService, uploads *upload.Store) *ProfileHandler {
	return &ProfileHandler{
		userService: userService,
		uploads:     uploads,
	}
}

// Get handles profile retrieval
// @Summary Get own profile
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /profile [get]
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	profile, err := h.userService.GetProfile(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to get profile")
	}

	return response.Success(c, "Profile retrieved", profile)
}

// GetByID handles public profile retrieval
// @Summary Get a user's public profile
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [get]
func (h *ProfileHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid user ID")
	}

	profile, err := h.userService.GetProfile(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to get profile")
	}

	return response.Success(c, "Profile retrieved", profile)
}

// Update handles profile update
// @Summary Update own profile
// @Description Update profile fields and optionally replace the profile image
// @Tags Profile
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /profile [put]
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var input services.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	image, err := h.uploads.SaveImage(c, "profile_image", upload.KindProfiles)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	input.ProfileImage = image

	profile, err := h.userService.UpdateProfile(c.Context(), userID, &input)
	if err != nil {
		if image != "" {
			h.uploads.Remove(image)
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to update profile")
	}

	return response.Success(c, "Profile updated successfully", profile)
}

// ChangePassword handles password change
// @Summary Change own password
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /profile/password [put]
func (h *ProfileHandler) ChangePassword(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var input services.ChangePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	if err := h.userService.ChangePassword(c.Context(), userID, &input); err != nil {
		switch {
		case errors.Is(err, services.ErrOldPasswordWrong):
			return response.Unauthorized(c, "Old password is incorrect")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Password must be at least 8 characters")
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to change password")
		}
	}

	return response.Success(c, "Password changed successfully", nil)
}
