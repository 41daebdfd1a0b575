package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fieldlink/interactions-api/internal/models"
	"github.com/fieldlink/interactions-api/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// interactionPreloads loads the interaction's relations.
func interactionPreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("HCP").
		Preload("HCPObjective").
		Preload("Project").
		Preload("Resources").
		Preload("Outcomes")
}

// GetInteraction fetches one interaction visible to the user. Out-of-scope
// rows read as missing.
func GetInteraction(db *gorm.DB, user *models.User, id uint64) (*models.Interaction, error) {
	var interaction models.Interaction
	scoped := InteractionListScope(interactionPreloads(db), user)
	if err := scoped.First(&interaction, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &types.NotFoundError{Kind: "interaction", ID: id}
		}
		return nil, err
	}
	return &interaction, nil
}

// ListInteractions lists interactions within the user's visibility scope.
func ListInteractions(db *gorm.DB, user *models.User) ([]models.Interaction, error) {
	var interactions []models.Interaction
	scoped := InteractionListScope(interactionPreloads(db), user)
	if err := scoped.Order("id").Find(&interactions).Error; err != nil {
		return nil, err
	}
	return interactions, nil
}

// CreateInteraction logs an interaction. Non-staff actors are always recorded
// as the interaction's user regardless of the submitted user_id.
func CreateInteraction(db *gorm.DB, actor *models.User, req *types.InteractionRequest) (*models.Interaction, error) {
	if req.HCPID == 0 {
		return nil, &types.ValidationError{Field: "hcp_id", Message: "hcp_id is required"}
	}
	if !models.ValidOrigin(req.OriginOfInteraction) {
		return nil, &types.ValidationError{
			Field:   "origin_of_interaction",
			Message: fmt.Sprintf("invalid origin_of_interaction %q", req.OriginOfInteraction),
		}
	}
	if !models.ValidInteractionType(req.TypeOfInteraction) {
		return nil, &types.ValidationError{
			Field:   "type_of_interaction",
			Message: fmt.Sprintf("invalid type_of_interaction %q", req.TypeOfInteraction),
		}
	}

	userID := actor.ID
	if actor.IsStaff && req.UserID != nil {
		userID = req.UserID.Uint64()
	}

	var interaction models.Interaction
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.HCP{}, req.HCPID.Uint64()).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &types.NotFoundError{Kind: "hcp", ID: req.HCPID.Uint64()}
			}
			return err
		}
		if req.HCPObjectiveID != nil {
			if err := tx.First(&models.HCPObjective{}, req.HCPObjectiveID.Uint64()).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &types.NotFoundError{Kind: "hcp objective", ID: req.HCPObjectiveID.Uint64()}
				}
				return err
			}
		}
		if req.ProjectID != nil {
			if err := tx.First(&models.Project{}, req.ProjectID.Uint64()).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &types.NotFoundError{Kind: "project", ID: req.ProjectID.Uint64()}
				}
				return err
			}
		}

		jointVisitWith, err := json.Marshal(req.JointVisitWith.Slice())
		if err != nil {
			return err
		}

		interaction = models.Interaction{
			UserID:                        userID,
			HCPID:                         req.HCPID.Uint64(),
			HCPObjectiveID:                flexID(req.HCPObjectiveID),
			ProjectID:                     flexID(req.ProjectID),
			Description:                   req.Description,
			Purpose:                       req.Purpose,
			IsJointVisit:                  req.IsJointVisit,
			JointVisitWith:                models.JSON{JSON: datatypes.JSON(jointVisitWith)},
			OriginOfInteraction:           req.OriginOfInteraction,
			OriginOfInteractionOther:      req.OriginOfInteractionOther,
			TypeOfInteraction:             req.TypeOfInteraction,
			IsProactive:                   req.IsProactive,
			IsAdverseEvent:                req.IsAdverseEvent,
			AppropriateProceduresFollowed: req.AppropriateProceduresFollowed,
			NoFollowUpRequired:            req.NoFollowUpRequired,
		}
		if err := tx.Create(&interaction).Error; err != nil {
			return err
		}

		if req.ResourceIDs != nil {
			resources, err := fetchByIDs[models.Resource](tx, "resource", types.Uint64Slice(req.ResourceIDs))
			if err != nil {
				return err
			}
			if err := tx.Model(&interaction).Association("Resources").Replace(&resources); err != nil {
				return err
			}
		}
		if req.OutcomeIDs != nil {
			outcomes, err := fetchByIDs[models.InteractionOutcome](tx, "interaction outcome", types.Uint64Slice(req.OutcomeIDs))
			if err != nil {
				return err
			}
			if err := tx.Model(&interaction).Association("Outcomes").Replace(&outcomes); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var created models.Interaction
	if err := interactionPreloads(db).First(&created, interaction.ID).Error; err != nil {
		return nil, err
	}
	return &created, nil
}
