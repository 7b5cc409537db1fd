package presenter

import "github.com/gofiber/fiber/v2"

// ErrorResponse is the uniform error envelope: a boolean flag, a
// human-readable message and an optional details payload (field-level
// messages, or internal error text in development mode).
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Error: true, Message: message})
}

func ErrorWithDetails(c *fiber.Ctx, status int, message string, details any) error {
	return JSON(c, status, ErrorResponse{Error: true, Message: message, Details: details})
}
