package middleware

import (
	"fmt"

	"github.com/fieldlink/interactions-api/internal/services"
	"github.com/fieldlink/interactions-api/internal/types"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthUser validates the session cookie and resolves the local account into
// request locals for the authorization resolver.
func AuthUser(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get session cookie
		session := c.Cookies("cookie_session")
		if session == "" {
			return &types.CustomError{
				Code:    fiber.StatusForbidden,
				Message: "Authorizer cookie \"cookie_session\" not found",
				Type:    "authorization",
			}
		}

		// Validate session
		data, err := services.ValidateSession(session, nil)
		if err != nil {
			return &types.CustomError{
				Code:    fiber.StatusForbidden,
				Message: fmt.Sprintf("Invalid session: %v", err),
				Type:    "authorization",
			}
		}

		email := services.SessionEmail(data)
		if email == "" {
			return &types.CustomError{
				Code:    fiber.StatusForbidden,
				Message: "Session carries no email identity",
				Type:    "authorization",
			}
		}

		// Resolve the local account
		user, err := services.ResolveUser(db, email)
		if err != nil {
			return &types.CustomError{
				Code:    fiber.StatusForbidden,
				Message: fmt.Sprintf("No account for session identity: %v", err),
				Type:    "authorization",
			}
		}

		c.Locals("user", user)
		return c.Next()
	}
}
