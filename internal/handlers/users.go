package handlers

import (
	"github.com/fieldlink/interactions-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserHandler handles account routes
type UserHandler struct {
	DB *gorm.DB
}

// Me handles GET /api/users/me
// @Summary Current user
// @Description The authenticated account with roles, permissions and memberships
// @Tags Users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /users/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	roleNames := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		roleNames = append(roleNames, role.Name)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"id":               user.ID,
		"email":            user.Email,
		"business_title":   user.BusinessTitle,
		"is_staff":         user.IsStaff,
		"roles":            roleNames,
		"permissions":      services.Permissions(user),
		"affiliate_groups": user.AffiliateGroups,
		"tas":              user.TherapeuticAreas,
	})
}
