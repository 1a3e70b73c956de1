package utils

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/gss-portal/internal/types"
)

// SuccessResponse sends a standard success response
func SuccessResponse(c *fiber.Ctx, data interface{}, status int) error {
	return c.Status(status).JSON(data)
}

// ErrorResponse sends a standard error response
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":    status,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"status":    fiber.StatusNotFound,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
	})
}

// MutationSuccessResponse sends a success response for mutations
func MutationSuccessResponse(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":   "Success",
		"ok":        true,
		"data":      data,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// DomainErrorResponse maps a typed domain error to its HTTP response.
// Unrecognized errors become opaque 500s.
func DomainErrorResponse(c *fiber.Ctx, err error, errorType string) error {
	var validationErr *types.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":    fiber.StatusBadRequest,
			"message":   validationErr.Message,
			"fields":    validationErr.Fields,
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
			"type":      errorType,
		})
	}

	var policyErr *types.PolicyViolation
	if errors.As(err, &policyErr) {
		return ErrorResponse(c, policyErr.Message, fiber.StatusForbidden, errorType)
	}

	var notFoundErr *types.NotFound
	if errors.As(err, &notFoundErr) {
		return NotFoundResponse(c, notFoundErr.Error())
	}

	var selectionErr *types.SelectionError
	if errors.As(err, &selectionErr) {
		return ErrorResponse(c, selectionErr.Message, fiber.StatusUnprocessableEntity, errorType)
	}

	var conflictErr *types.ConflictError
	if errors.As(err, &conflictErr) {
		return ErrorResponse(c, conflictErr.Message, fiber.StatusConflict, errorType)
	}

	var customErr *types.CustomError
	if errors.As(err, &customErr) {
		return ErrorResponse(c, customErr.Message, customErr.Code, customErr.Type)
	}

	return ErrorResponse(c, "Internal server error", fiber.StatusInternalServerError, errorType)
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status    int                `json:"status"`
	Message   string             `json:"message"`
	Ok        bool               `json:"ok"`
	Timestamp string             `json:"timestamp"`
	URL       string             `json:"url"`
	Type      string             `json:"type,omitempty"`
	Fields    []types.FieldError `json:"fields,omitempty"`
}

// SuccessResponseStruct defines the schema for mutation success responses
type SuccessResponseStruct struct {
	Message   string      `json:"message"`
	Ok        bool        `json:"ok"`
	Data      interface{} `json:"data"`
	Timestamp string      `json:"timestamp"`
}
