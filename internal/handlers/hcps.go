package handlers

import (
	"github.com/fieldlink/interactions-api/internal/services"
	"github.com/fieldlink/interactions-api/internal/types"
	"github.com/fieldlink/interactions-api/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// HCPHandler handles healthcare provider routes
type HCPHandler struct {
	DB *gorm.DB
}

// ListHCPs handles GET /api/hcps
// @Summary List HCPs
// @Description List HCPs visible to the current user, with search and plan filters
// @Tags HCPs
// @Accept json
// @Produce json
// @Param search query string false "All-words search over name, institution, city, country"
// @Param user query int false "Filter by that user's memberships, or name whose current plan to resolve"
// @Param engagement_plan query string false "Plan id or \"current\""
// @Success 200 {array} models.HCP
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /hcps [get]
func (h *HCPHandler) ListHCPs(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	targetUser, err := parseOptionalIDQuery(c, "user")
	if err != nil {
		return err
	}

	filter := &services.HCPFilter{
		UserID:         targetUser,
		EngagementPlan: c.Query("engagement_plan"),
		Search:         c.Query("search"),
	}
	hcps, err := services.FilterHCPs(h.DB, user, filter)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(hcps)
}

// GetHCP handles GET /api/hcps/:id
// @Summary Get an HCP
// @Tags HCPs
// @Produce json
// @Param id path int true "HCP ID"
// @Success 200 {object} models.HCP
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /hcps/{id} [get]
func (h *HCPHandler) GetHCP(c *fiber.Ctx) error {
	if _, err := currentUser(c); err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	hcp, err := services.GetHCP(h.DB, id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(hcp)
}

// CreateHCP handles POST /api/hcps
// @Summary Create an HCP
// @Tags HCPs
// @Accept json
// @Produce json
// @Param hcp body types.HCPRequest true "HCP record"
// @Success 201 {object} models.HCP
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /hcps [post]
func (h *HCPHandler) CreateHCP(c *fiber.Ctx) error {
	if _, err := currentUser(c); err != nil {
		return err
	}
	var req types.HCPRequest
	if err := c.BodyParser(&req); err != nil {
		return &types.ValidationError{Message: "malformed hcp record: " + err.Error()}
	}
	hcp, err := services.CreateHCP(h.DB, &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(hcp)
}

// UpdateHCP handles PUT /api/hcps/:id
// @Summary Update an HCP
// @Tags HCPs
// @Accept json
// @Produce json
// @Param id path int true "HCP ID"
// @Param hcp body types.HCPRequest true "HCP record"
// @Success 200 {object} models.HCP
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /hcps/{id} [put]
func (h *HCPHandler) UpdateHCP(c *fiber.Ctx) error {
	if _, err := currentUser(c); err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req types.HCPRequest
	if err := c.BodyParser(&req); err != nil {
		return &types.ValidationError{Message: "malformed hcp record: " + err.Error()}
	}
	hcp, err := services.UpdateHCP(h.DB, id, &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(hcp)
}

// DeleteHCP handles DELETE /api/hcps/:id
// @Summary Delete an HCP
// @Tags HCPs
// @Produce json
// @Param id path int true "HCP ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /hcps/{id} [delete]
func (h *HCPHandler) DeleteHCP(c *fiber.Ctx) error {
	if _, err := currentUser(c); err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := services.DeleteHCP(h.DB, id); err != nil {
		return err
	}
	return utils.MutationSuccessResponse(c, 1)
}

// ListHCPObjectives handles GET /api/hcp-objectives
// @Summary List HCP objectives
// @Description List objectives under approved plan items, within visibility scope
// @Tags HCPs
// @Produce json
// @Param user query int false "That user's current-year plan"
// @Param engagement_plan query int false "Plan id"
// @Param hcp query int false "HCP id"
// @Success 200 {array} models.HCPObjective
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /hcp-objectives [get]
func (h *HCPHandler) ListHCPObjectives(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	targetUser, err := parseOptionalIDQuery(c, "user")
	if err != nil {
		return err
	}
	planID, err := parseOptionalIDQuery(c, "engagement_plan")
	if err != nil {
		return err
	}
	hcpID, err := parseOptionalIDQuery(c, "hcp")
	if err != nil {
		return err
	}

	filter := &services.ObjectiveFilter{
		UserID:         targetUser,
		EngagementPlan: planID,
		HCPID:          hcpID,
	}
	objectives, err := services.FilterHCPObjectives(h.DB, user, filter)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(objectives)
}
