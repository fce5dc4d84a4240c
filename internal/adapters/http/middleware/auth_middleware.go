package middleware

import (
	"errors"
	"strings"

	"servini-backend/internal/adapters/persistence/repositories"
	"servini-backend/internal/config"
	"servini-backend/internal/core/domain"
	"servini-backend/internal/pkg/jwt"
	"servini-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthMiddleware creates authentication middleware. Identity comes
// from the Bearer token only, never from the request body. The user
// row is re-read on every request so that a suspension takes effect
// immediately even for tokens issued before it.
func AuthMiddleware(cfg *config.Config, userRepo repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Get token from Authorization header
		var accessToken string
		authHeader := c.Get("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			accessToken = strings.TrimPrefix(authHeader, "Bearer ")
		}

		// 2. No token found
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		// 3. Validate token
		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return response.ErrorCode(c, fiber.StatusUnauthorized, response.CodeTokenExpired, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		// 4. Re-check the account against the database
		user, err := userRepo.GetByID(c.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.Unauthorized(c, "Account no longer exists")
			}
			return response.InternalServerError(c, "Failed to verify account")
		}
		if user.Status == domain.UserStatusSuspended {
			return response.ErrorCode(c, fiber.StatusForbidden, response.CodeAccountSuspended, "Account is suspended")
		}

		// 5. Set user info in context (role from the live row, not the token)
		c.Locals("userID", user.ID)
		c.Locals("email", user.Email)
		c.Locals("role", user.Role)

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		// Check if user's role is in allowed roles
		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only the admin role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(string(domain.RoleAdmin))
}

// ClientOnly middleware allows only the client role
func ClientOnly() fiber.Handler {
	return RoleMiddleware(string(domain.RoleClient))
}

// ContractorOnly middleware allows only the contractor role
func ContractorOnly() fiber.Handler {
	return RoleMiddleware(string(domain.RoleContractor))
}
