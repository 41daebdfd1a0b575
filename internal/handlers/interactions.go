package handlers

import (
	"github.com/fieldlink/interactions-api/internal/services"
	"github.com/fieldlink/interactions-api/internal/types"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// InteractionHandler handles logged field interaction routes
type InteractionHandler struct {
	DB *gorm.DB
}

// ListInteractions handles GET /api/interactions
// @Summary List interactions
// @Description List interactions within the current user's visibility scope
// @Tags Interactions
// @Produce json
// @Success 200 {array} models.Interaction
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /interactions [get]
func (h *InteractionHandler) ListInteractions(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	interactions, err := services.ListInteractions(h.DB, user)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(interactions)
}

// GetInteraction handles GET /api/interactions/:id
// @Summary Get an interaction
// @Tags Interactions
// @Produce json
// @Param id path int true "Interaction ID"
// @Success 200 {object} models.Interaction
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /interactions/{id} [get]
func (h *InteractionHandler) GetInteraction(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	interaction, err := services.GetInteraction(h.DB, user, id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(interaction)
}

// CreateInteraction handles POST /api/interactions
// @Summary Log an interaction
// @Description Log a field interaction; non-staff users are recorded as the acting user
// @Tags Interactions
// @Accept json
// @Produce json
// @Param interaction body types.InteractionRequest true "Interaction"
// @Success 201 {object} models.Interaction
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /interactions [post]
func (h *InteractionHandler) CreateInteraction(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := services.CanCreateInteraction(user); err != nil {
		return err
	}
	var req types.InteractionRequest
	if err := c.BodyParser(&req); err != nil {
		return &types.ValidationError{Message: "malformed interaction: " + err.Error()}
	}
	interaction, err := services.CreateInteraction(h.DB, user, &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(interaction)
}
