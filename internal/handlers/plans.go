package handlers

import (
	"github.com/fieldlink/interactions-api/internal/models"
	"github.com/fieldlink/interactions-api/internal/services"
	"github.com/fieldlink/interactions-api/internal/types"
	"github.com/fieldlink/interactions-api/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// PlanHandler handles engagement plan routes
type PlanHandler struct {
	DB *gorm.DB
}

// ListPlans handles GET /api/engagement-plans
// @Summary List engagement plans
// @Description List engagement plans visible to the current user
// @Tags EngagementPlans
// @Accept json
// @Produce json
// @Param approved query string false "Filter by approval state (true/false)"
// @Success 200 {array} models.EngagementPlan
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /engagement-plans [get]
func (h *PlanHandler) ListPlans(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	approved, err := services.ParseApprovedParam(c.Query("approved"))
	if err != nil {
		return err
	}

	scoped := services.PlanListScope(h.DB.Model(&models.EngagementPlan{}), user)
	plans, err := services.ListEngagementPlans(scoped, approved)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(plans)
}

// GetPlan handles GET /api/engagement-plans/:id
// @Summary Get an engagement plan
// @Description Get one engagement plan with its full tree
// @Tags EngagementPlans
// @Accept json
// @Produce json
// @Param id path int true "Plan ID"
// @Success 200 {object} models.EngagementPlan
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /engagement-plans/{id} [get]
func (h *PlanHandler) GetPlan(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	plan, err := services.GetEngagementPlan(h.DB, id)
	if err != nil {
		return err
	}
	if err := services.CanViewPlan(h.DB, user, plan); err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(plan)
}

// CreatePlan handles POST /api/engagement-plans
// @Summary Create an engagement plan
// @Description Create a plan and its whole nested tree atomically
// @Tags EngagementPlans
// @Accept json
// @Produce json
// @Param plan body types.PlanSubmission true "Plan tree"
// @Success 201 {object} models.EngagementPlan
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /engagement-plans [post]
func (h *PlanHandler) CreatePlan(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := services.CanCreatePlan(user); err != nil {
		return err
	}

	var sub types.PlanSubmission
	if err := c.BodyParser(&sub); err != nil {
		return &types.ValidationError{Message: "malformed plan submission: " + err.Error()}
	}

	ownerID := user.ID
	if user.IsStaff && sub.UserID != nil {
		ownerID = sub.UserID.Uint64()
	}

	plan, err := services.CreateEngagementPlan(h.DB, ownerID, &sub)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(plan)
}

// UpdatePlan handles PUT/PATCH /api/engagement-plans/:id
// @Summary Update an engagement plan
// @Description Reconcile the stored plan tree against the submitted tree
// @Tags EngagementPlans
// @Accept json
// @Produce json
// @Param id path int true "Plan ID"
// @Param plan body types.PlanSubmission true "Plan tree"
// @Success 200 {object} models.EngagementPlan
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /engagement-plans/{id} [put]
func (h *PlanHandler) UpdatePlan(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	plan, err := services.GetEngagementPlan(h.DB, id)
	if err != nil {
		return err
	}
	if err := services.CanModifyPlan(user, plan); err != nil {
		return err
	}

	var sub types.PlanSubmission
	if err := c.BodyParser(&sub); err != nil {
		return &types.ValidationError{Message: "malformed plan submission: " + err.Error()}
	}

	updated, err := services.UpdateEngagementPlan(h.DB, id, &sub)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

// DeletePlan handles DELETE /api/engagement-plans/:id
// @Summary Delete an engagement plan
// @Description Soft delete a plan and its whole tree
// @Tags EngagementPlans
// @Produce json
// @Param id path int true "Plan ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /engagement-plans/{id} [delete]
func (h *PlanHandler) DeletePlan(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	plan, err := services.GetEngagementPlan(h.DB, id)
	if err != nil {
		return err
	}
	if err := services.CanModifyPlan(user, plan); err != nil {
		return err
	}

	if err := services.DeleteEngagementPlan(h.DB, id); err != nil {
		return err
	}
	return utils.MutationSuccessResponse(c, 1)
}

// ApprovePlan handles POST /api/engagement-plans/:id/approve
// @Summary Approve an engagement plan
// @Description Approve the whole plan or selected HCP items
// @Tags EngagementPlans
// @Accept json
// @Produce json
// @Param id path int true "Plan ID"
// @Param selection body types.ApprovalRequest false "Item selection"
// @Success 200 {object} models.EngagementPlan
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /engagement-plans/{id}/approve [post]
func (h *PlanHandler) ApprovePlan(c *fiber.Ctx) error {
	return h.approval(c, services.ApproveEngagementPlan)
}

// UnapprovePlan handles POST /api/engagement-plans/:id/unapprove
// @Summary Unapprove an engagement plan
// @Description Unapprove the whole plan or selected HCP items
// @Tags EngagementPlans
// @Accept json
// @Produce json
// @Param id path int true "Plan ID"
// @Param selection body types.ApprovalRequest false "Item selection"
// @Success 200 {object} models.EngagementPlan
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /engagement-plans/{id}/unapprove [post]
func (h *PlanHandler) UnapprovePlan(c *fiber.Ctx) error {
	return h.approval(c, services.UnapproveEngagementPlan)
}

func (h *PlanHandler) approval(
	c *fiber.Ctx,
	action func(*gorm.DB, uint64, *types.ApprovalRequest) (*models.EngagementPlan, error),
) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	plan, err := services.GetEngagementPlan(h.DB, id)
	if err != nil {
		return err
	}
	if err := services.CanApprovePlan(h.DB, user, plan); err != nil {
		return err
	}

	var req types.ApprovalRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return &types.ValidationError{Message: "malformed approval request: " + err.Error()}
		}
	}

	updated, err := action(h.DB, id, &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}
