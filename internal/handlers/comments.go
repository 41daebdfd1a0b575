package handlers

import (
	"strconv"

	"github.com/fieldlink/interactions-api/internal/services"
	"github.com/fieldlink/interactions-api/internal/types"
	"github.com/fieldlink/interactions-api/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CommentHandler handles plan-tree comment routes
type CommentHandler struct {
	DB *gorm.DB
}

// ListComments handles GET /api/comments?target_kind=...&target_id=...
// @Summary List comments on a plan-tree node
// @Tags Comments
// @Produce json
// @Param target_kind query string true "Target node kind"
// @Param target_id query int true "Target node id"
// @Success 200 {array} models.Comment
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /comments [get]
func (h *CommentHandler) ListComments(c *fiber.Ctx) error {
	if _, err := currentUser(c); err != nil {
		return err
	}
	targetID, err := strconv.ParseUint(c.Query("target_id"), 10, 64)
	if err != nil || targetID == 0 {
		return &types.ValidationError{Field: "target_id", Message: "must be a positive integer id"}
	}
	comments, err := services.ListComments(h.DB, c.Query("target_kind"), targetID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(comments)
}

// CreateComment handles POST /api/comments
// @Summary Comment on a plan-tree node
// @Tags Comments
// @Accept json
// @Produce json
// @Param comment body types.CommentRequest true "Comment"
// @Success 201 {object} models.Comment
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /comments [post]
func (h *CommentHandler) CreateComment(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req types.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return &types.ValidationError{Message: "malformed comment: " + err.Error()}
	}
	comment, err := services.CreateComment(h.DB, user.ID, &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// DeleteComment handles DELETE /api/comments/:id
// @Summary Delete a comment
// @Description Delete a comment; only the author or staff may delete
// @Tags Comments
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /comments/{id} [delete]
func (h *CommentHandler) DeleteComment(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := services.DeleteComment(h.DB, user, id); err != nil {
		return err
	}
	return utils.MutationSuccessResponse(c, 1)
}
