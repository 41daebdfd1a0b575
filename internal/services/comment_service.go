package services

import (
	"errors"
	"fmt"

	"github.com/fieldlink/interactions-api/internal/models"
	"github.com/fieldlink/interactions-api/internal/types"
	"gorm.io/gorm"
)

// CreateComment attaches a comment to one plan-tree node. The target must
// exist.
func CreateComment(db *gorm.DB, userID uint64, req *types.CommentRequest) (*models.Comment, error) {
	if !models.ValidTargetKind(req.TargetKind) {
		return nil, &types.ValidationError{
			Field:   "target_kind",
			Message: fmt.Sprintf("invalid target_kind %q", req.TargetKind),
		}
	}
	if req.Message == "" {
		return nil, &types.ValidationError{Field: "message", Message: "message is required"}
	}

	targetID := req.TargetID.Uint64()
	if err := checkCommentTarget(db, req.TargetKind, targetID); err != nil {
		return nil, err
	}

	comment := models.Comment{
		UserID:     userID,
		TargetKind: req.TargetKind,
		TargetID:   targetID,
		Message:    req.Message,
	}
	if err := db.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListComments lists comments on one target node, oldest first.
func ListComments(db *gorm.DB, targetKind string, targetID uint64) ([]models.Comment, error) {
	if !models.ValidTargetKind(targetKind) {
		return nil, &types.ValidationError{
			Field:   "target_kind",
			Message: fmt.Sprintf("invalid target_kind %q", targetKind),
		}
	}
	var comments []models.Comment
	err := db.Where("target_kind = ? AND target_id = ?", targetKind, targetID).
		Order("id").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteComment removes a comment. Only the author or staff may delete.
func DeleteComment(db *gorm.DB, user *models.User, id uint64) error {
	var comment models.Comment
	if err := db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &types.NotFoundError{Kind: "comment", ID: id}
		}
		return err
	}
	if !user.IsStaff && comment.UserID != user.ID {
		return &types.PermissionError{Reason: "you may only delete your own comments"}
	}
	return db.Delete(&comment).Error
}

func checkCommentTarget(db *gorm.DB, kind string, id uint64) error {
	var err error
	switch kind {
	case models.TargetEngagementPlan:
		err = db.First(&models.EngagementPlan{}, id).Error
	case models.TargetHCPItem:
		err = db.First(&models.EngagementPlanHCPItem{}, id).Error
	case models.TargetProjectItem:
		err = db.First(&models.EngagementPlanProjectItem{}, id).Error
	case models.TargetHCPObjective:
		err = db.First(&models.HCPObjective{}, id).Error
	case models.TargetProjectObjective:
		err = db.First(&models.ProjectObjective{}, id).Error
	case models.TargetHCPDeliverable:
		err = db.First(&models.HCPDeliverable{}, id).Error
	case models.TargetProjectDeliverable:
		err = db.First(&models.ProjectDeliverable{}, id).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &types.NotFoundError{Kind: kind, ID: id}
		}
		return err
	}
	return nil
}
