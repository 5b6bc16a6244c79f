package utils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/securepulse/internal/types"
)

// SuccessResponse sends a standard success response
func SuccessResponse(c *fiber.Ctx, data interface{}, status int) error {
	return c.Status(status).JSON(data)
}

// ErrorResponse sends a standard error response
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return c.Status(status).JSON(ErrorResponseStruct{
		Status:    status,
		Message:   message,
		Ok:        false,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		URL:       c.OriginalURL(),
		Type:      errorType,
	})
}

// CustomErrorResponse renders a *types.CustomError in the standard envelope
func CustomErrorResponse(c *fiber.Ctx, err *types.CustomError) error {
	return ErrorResponse(c, err.Message, err.Code, err.Type)
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, message, fiber.StatusNotFound, types.ErrorTypeNotFound)
}

// InternalErrorResponse sends a 500 without leaking the cause
func InternalErrorResponse(c *fiber.Ctx) error {
	return ErrorResponse(c, "Internal server error", fiber.StatusInternalServerError, types.ErrorTypeInternal)
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Ok        bool   `json:"ok"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
	Type      string `json:"type,omitempty"`
}
