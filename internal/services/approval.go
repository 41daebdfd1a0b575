package services

import (
	"errors"

	"github.com/fieldlink/interactions-api/internal/models"
	"github.com/fieldlink/interactions-api/internal/types"
	"gorm.io/gorm"
)

// ApproveEngagementPlan applies an approve action. An empty body or
// hcp_items=true approves every item and the plan itself; hcp_items_ids
// approves just those items, and the plan becomes approved only once no
// unapproved item remains.
func ApproveEngagementPlan(db *gorm.DB, planID uint64, req *types.ApprovalRequest) (*models.EngagementPlan, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		plan, items, err := loadPlanForApproval(tx, planID)
		if err != nil {
			return err
		}

		selected, err := selectApprovalItems(items, req)
		if err != nil {
			return err
		}
		for _, item := range selected {
			if !item.Approved {
				item.Approve()
				if err := tx.Save(item).Error; err != nil {
					return err
				}
			}
		}

		anyUnapproved := false
		for _, item := range items {
			if !item.Approved {
				anyUnapproved = true
				break
			}
		}
		if !anyUnapproved && !plan.Approved {
			plan.Approve()
			return tx.Save(plan).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return GetEngagementPlan(db, planID)
}

// UnapproveEngagementPlan applies an unapprove action. The whole-plan variant
// unapproves the plan unconditionally; unapprove-selected turns the plan
// unapproved as soon as at least one item is unapproved, which makes it
// stickier than its approve counterpart.
func UnapproveEngagementPlan(db *gorm.DB, planID uint64, req *types.ApprovalRequest) (*models.EngagementPlan, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		plan, items, err := loadPlanForApproval(tx, planID)
		if err != nil {
			return err
		}

		selected, err := selectApprovalItems(items, req)
		if err != nil {
			return err
		}
		for _, item := range selected {
			if item.Approved {
				item.Unapprove()
				if err := tx.Save(item).Error; err != nil {
					return err
				}
			}
		}

		wholePlan := req == nil || len(req.HCPItemIDs) == 0
		anyUnapproved := false
		for _, item := range items {
			if !item.Approved {
				anyUnapproved = true
				break
			}
		}
		if (wholePlan || anyUnapproved) && plan.Approved {
			plan.Unapprove()
			return tx.Save(plan).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return GetEngagementPlan(db, planID)
}

func loadPlanForApproval(tx *gorm.DB, planID uint64) (*models.EngagementPlan, []*models.EngagementPlanHCPItem, error) {
	var plan models.EngagementPlan
	if err := tx.First(&plan, planID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, &types.NotFoundError{Kind: "engagement plan", ID: planID}
		}
		return nil, nil, err
	}
	var items []*models.EngagementPlanHCPItem
	if err := tx.Where("engagement_plan_id = ?", planID).Order("id").Find(&items).Error; err != nil {
		return nil, nil, err
	}
	return &plan, items, nil
}

// selectApprovalItems resolves which items the request covers. Ids that do
// not belong to the plan surface as NotFoundError.
func selectApprovalItems(items []*models.EngagementPlanHCPItem, req *types.ApprovalRequest) ([]*models.EngagementPlanHCPItem, error) {
	if req == nil || len(req.HCPItemIDs) == 0 {
		// whole-plan variant, including explicit hcp_items=true
		if req != nil && req.HCPItems != nil && !*req.HCPItems {
			return nil, &types.ValidationError{
				Field:   "hcp_items",
				Message: "hcp_items must be true or omitted; use hcp_items_ids for a selection",
			}
		}
		return items, nil
	}
	if req.HCPItems != nil {
		return nil, &types.ValidationError{
			Field:   "hcp_items",
			Message: "hcp_items and hcp_items_ids are mutually exclusive",
		}
	}

	byID := make(map[uint64]*models.EngagementPlanHCPItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	selected := make([]*models.EngagementPlanHCPItem, 0, len(req.HCPItemIDs))
	for _, fid := range req.HCPItemIDs {
		item, ok := byID[fid.Uint64()]
		if !ok {
			return nil, &types.NotFoundError{Kind: "hcp item", ID: fid.Uint64()}
		}
		selected = append(selected, item)
	}
	return selected, nil
}
