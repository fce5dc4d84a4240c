package handlers

import (
	"errors"

	"servini-backend/internal/core/domain"
	"servini-backend/internal/core/services"
	"servini-backend/internal/pkg/response"
	"servini-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles user registration
// @Summary Register new user
// @Description Register a new client or contractor account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.RegisterInput true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input.Email = services.NormalizeEmail(input.Email)
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	result, err := h.authService.Register(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRole):
			return response.ErrorCode(c, fiber.StatusBadRequest, response.CodeInvalidRole, "Role must be client or contractor")
		case errors.Is(err, domain.ErrDuplicateEmail):
			return response.ErrorCode(c, fiber.StatusConflict, response.CodeDuplicateEmail, "Email already registered")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Password must be at least 8 characters")
		default:
			return response.InternalServerError(c, "Failed to register user")
		}
	}

	return response.Created(c, "User registered successfully", result)
}

// Login handles user login
// @Summary Login user
// @Description Authenticate user and return an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input services.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input.Email = services.NormalizeEmail(input.Email)
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	result, err := h.authService.Login(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			return response.ErrorCode(c, fiber.StatusUnauthorized, response.CodeInvalidCredentials, "Invalid email or password")
		case errors.Is(err, domain.ErrAccountSuspended):
			return response.ErrorCode(c, fiber.StatusForbidden, response.CodeAccountSuspended, "Account is suspended")
		default:
			return response.InternalServerError(c, "Failed to login")
		}
	}

	return response.Success(c, "Login successful", result)
}

// Verify returns the authenticated user's current record
// @Summary Verify token
// @Description Return the account behind the presented access token
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/verify [get]
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := h.authService.GetUserByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.Unauthorized(c, "Account no longer exists")
		}
		return response.InternalServerError(c, "Failed to verify token")
	}

	return response.Success(c, "Token is valid", user.ToResponse())
}
