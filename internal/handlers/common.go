package handlers

import (
	"strconv"
	"strings"

	"github.com/fieldlink/interactions-api/internal/models"
	"github.com/fieldlink/interactions-api/internal/types"
	"github.com/gofiber/fiber/v2"
)

// currentUser pulls the authenticated account out of request locals. The auth
// middleware guarantees it is set on protected routes.
func currentUser(c *fiber.Ctx) (*models.User, error) {
	user, ok := c.Locals("user").(*models.User)
	if !ok || user == nil {
		return nil, &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: "No authenticated user on request",
			Type:    "authorization",
		}
	}
	return user, nil
}

// parseIDParam parses a numeric path parameter.
func parseIDParam(c *fiber.Ctx, name string) (uint64, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, &types.ValidationError{
			Field:   name,
			Message: "must be a positive integer id",
		}
	}
	return id, nil
}

// parseIDListQuery parses a comma-separated id list query parameter.
func parseIDListQuery(c *fiber.Ctx, name string) ([]uint64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil || id == 0 {
			return nil, &types.ValidationError{
				Field:   name,
				Message: "must be a comma-separated list of positive integer ids",
			}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseOptionalIDQuery parses a numeric query parameter, nil when absent.
func parseOptionalIDQuery(c *fiber.Ctx, name string) (*uint64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return nil, &types.ValidationError{
			Field:   name,
			Message: "must be a positive integer id",
		}
	}
	return &id, nil
}
