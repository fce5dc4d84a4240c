package response

import "github.com/gofiber/fiber/v2"

// Stable machine-readable error kinds. Clients branch on these instead
// of parsing the human-readable message or the HTTP status.
const (
	CodeInvalidInput         = "INVALID_INPUT"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeForbidden            = "FORBIDDEN"
	CodeNotFound             = "NOT_FOUND"
	CodeConflict             = "CONFLICT"
	CodeInternalError        = "INTERNAL_ERROR"
	CodeInvalidCredentials   = "INVALID_CREDENTIALS"
	CodeAccountSuspended     = "ACCOUNT_SUSPENDED"
	CodeTokenExpired         = "TOKEN_EXPIRED"
	CodeInvalidRole          = "INVALID_ROLE"
	CodeDuplicateEmail       = "DUPLICATE_EMAIL"
	CodeDuplicateApplication = "DUPLICATE_APPLICATION"
)

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Code    string      `json:"code,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success sends a success response
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created sends a 201 created response
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error sends an error response with a code derived from the status
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return ErrorCode(c, statusCode, codeForStatus(statusCode), message)
}

// ErrorCode sends an error response carrying an explicit error kind,
// used where one status covers several domain failures
func ErrorCode(c *fiber.Ctx, statusCode int, code, message string) error {
	return c.Status(statusCode).JSON(Response{
		Success: false,
		Code:    code,
		Error:   message,
	})
}

func codeForStatus(statusCode int) string {
	switch statusCode {
	case fiber.StatusBadRequest:
		return CodeInvalidInput
	case fiber.StatusUnauthorized:
		return CodeUnauthorized
	case fiber.StatusForbidden:
		return CodeForbidden
	case fiber.StatusNotFound:
		return CodeNotFound
	case fiber.StatusConflict:
		return CodeConflict
	default:
		return CodeInternalError
	}
}

// BadRequest sends a 400 bad request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Unauthorized sends a 401 unauthorized response
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

// Forbidden sends a 403 forbidden response
func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

// NotFound sends a 404 not found response
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// Conflict sends a 409 conflict response
func Conflict(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusConflict, message)
}

// InternalServerError sends a 500 internal server error response
func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}
