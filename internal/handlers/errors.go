package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/fieldlink/interactions-api/internal/types"
	"github.com/fieldlink/interactions-api/internal/utils"
)

// ErrorHandler maps the error taxonomy onto the response envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	var fiberErr *fiber.Error
	var customErr *types.CustomError
	var validationErr *types.ValidationError
	var notFoundErr *types.NotFoundError
	var permissionErr *types.PermissionError
	var conflictErr *types.ConflictError

	switch {
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	case errors.As(err, &customErr):
		code = customErr.Code
		message = customErr.Message
		errorType = customErr.Type
	case errors.As(err, &validationErr):
		code = fiber.StatusBadRequest
		errorType = "validation"
	case errors.As(err, &notFoundErr):
		code = fiber.StatusNotFound
		errorType = "not_found"
	case errors.As(err, &permissionErr):
		code = fiber.StatusForbidden
		errorType = "permission"
	case errors.As(err, &conflictErr):
		code = fiber.StatusConflict
		errorType = "conflict"
	}

	return utils.ErrorResponse(c, message, code, errorType)
}
