package handlers

import (
	"errors"

	"servini-backend/internal/core/domain"
	"servini-backend/internal/core/services"
	"servini-backend/internal/pkg/pagination"
	"servini-backend/internal/pkg/response"
	"servini-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles admin moderation endpoints
type AdminHandler struct {
	adminService *services.AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// userStatusRequest carries a user status change body
type userStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active suspended"`
}

// ListUsers handles user listing
// @Summary List users
// @Description List all users with pagination
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	users, total, err := h.adminService.ListUsers(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list users")
	}

	return response.Success(c, "Users retrieved", pagination.NewResponse(users, params, total))
}

// UpdateUserStatus handles suspending/reactivating a user
// @Summary Update user status
// @Description Suspend or reactivate a user account
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body userStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/users/{id} [patch]
func (h *AdminHandler) UpdateUserStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid user ID")
	}

	var req userStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	user, err := h.adminService.UpdateUserStatus(c.Context(), uint(id), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Status must be active or suspended")
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "Admin accounts cannot be modified")
		default:
			return response.InternalServerError(c, "Failed to update user status")
		}
	}

	return response.Success(c, "User status updated", user)
}

// DeleteUser handles cascading user deletion
// @Summary Delete user
// @Description Delete a user and every dependent record atomically
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid user ID")
	}

	if err := h.adminService.DeleteUser(c.Context(), uint(id)); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "Admin accounts cannot be deleted")
		default:
			return response.InternalServerError(c, "Failed to delete user")
		}
	}

	return response.Success(c, "User and all associated data deleted", nil)
}

// ListProjects handles listing every project for moderation
// @Summary List all projects
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/projects [get]
func (h *AdminHandler) ListProjects(c *fiber.Ctx) error {
	projects, err := h.adminService.ListProjects(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list projects")
	}

	return response.Success(c, "Projects retrieved", projects)
}

// Stats handles the platform stats dashboard
// @Summary Platform statistics
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.adminService.Stats(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to compute statistics")
	}

	return response.Success(c, "Statistics retrieved", stats)
}
