package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/fieldlink/interactions-api/internal/models"
	"github.com/fieldlink/interactions-api/internal/types"
	"gorm.io/gorm"
)

// planPreloads loads the full plan tree.
func planPreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("HCPItems.HCP").
		Preload("HCPItems.Objectives.Deliverables").
		Preload("ProjectItems.Project").
		Preload("ProjectItems.Objectives.Deliverables")
}

// GetEngagementPlan fetches one plan with its full tree. Deliverable time
// frames are derived against the wall clock.
func GetEngagementPlan(db *gorm.DB, id uint64) (*models.EngagementPlan, error) {
	var plan models.EngagementPlan
	if err := planPreloads(db).First(&plan, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &types.NotFoundError{Kind: "engagement plan", ID: id}
		}
		return nil, err
	}
	decoratePlan(&plan)
	return &plan, nil
}

// ListEngagementPlans lists full plan trees from an already-scoped query.
// Scoping (ownership, affiliate-group visibility) is the caller's concern.
func ListEngagementPlans(scoped *gorm.DB, approved *bool) ([]models.EngagementPlan, error) {
	q := planPreloads(scoped)
	if approved != nil {
		q = q.Where("approved = ?", *approved)
	}
	var plans []models.EngagementPlan
	if err := q.Order("id").Find(&plans).Error; err != nil {
		return nil, err
	}
	for i := range plans {
		decoratePlan(&plans[i])
	}
	return plans, nil
}

// CreateEngagementPlan creates a plan and its whole submitted tree in one
// transaction. At most one live plan per (user, year).
func CreateEngagementPlan(db *gorm.DB, ownerID uint64, sub *types.PlanSubmission) (*models.EngagementPlan, error) {
	if err := validatePlanSubmission(sub); err != nil {
		return nil, err
	}
	year := sub.Year
	if year == 0 {
		year = time.Now().UTC().Year()
	}

	var plan models.EngagementPlan
	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.EngagementPlan{}).
			Where("user_id = ? AND year = ?", ownerID, year).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &types.ValidationError{
				Field:   "year",
				Message: fmt.Sprintf("user %d already has an engagement plan for %d", ownerID, year),
			}
		}

		plan = models.EngagementPlan{UserID: ownerID, Year: year}
		if err := tx.Create(&plan).Error; err != nil {
			return err
		}
		if err := reconcilePlanTree(tx, plan.ID, sub); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return GetEngagementPlan(db, plan.ID)
}

// UpdateEngagementPlan reconciles the stored tree against the submission in
// one transaction. Resubmitting an unchanged tree is a no-op apart from the
// plan's updated_at.
func UpdateEngagementPlan(db *gorm.DB, planID uint64, sub *types.PlanSubmission) (*models.EngagementPlan, error) {
	if err := validatePlanSubmission(sub); err != nil {
		return nil, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var plan models.EngagementPlan
		if err := tx.First(&plan, planID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &types.NotFoundError{Kind: "engagement plan", ID: planID}
			}
			return err
		}
		if err := reconcilePlanTree(tx, plan.ID, sub); err != nil {
			return err
		}
		// Root timestamp marks every tree write, even a no-op resubmission.
		return tx.Model(&plan).Update("updated_at", time.Now().UTC()).Error
	})
	if err != nil {
		return nil, err
	}
	return GetEngagementPlan(db, planID)
}

// DeleteEngagementPlan soft deletes a plan and cascades through the tree.
func DeleteEngagementPlan(db *gorm.DB, planID uint64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var plan models.EngagementPlan
		if err := tx.First(&plan, planID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &types.NotFoundError{Kind: "engagement plan", ID: planID}
			}
			return err
		}
		if err := deleteAbsentHCPItems(tx, planID, nil); err != nil {
			return err
		}
		if err := deleteAbsentProjectItems(tx, planID, nil); err != nil {
			return err
		}
		return tx.Delete(&plan).Error
	})
}

// reconcilePlanTree applies both item collections. A nil collection was not
// submitted and leaves that branch untouched.
func reconcilePlanTree(tx *gorm.DB, planID uint64, sub *types.PlanSubmission) error {
	if sub.HCPItems != nil {
		if err := reconcileChildren(tx, planID, sub.HCPItems, hcpItemSpec()); err != nil {
			return err
		}
	}
	if sub.ProjectItems != nil {
		if err := reconcileChildren(tx, planID, sub.ProjectItems, projectItemSpec()); err != nil {
			return err
		}
	}
	return nil
}

// Level specs

func hcpItemSpec() childSpec[types.HCPItemPayload] {
	return childSpec[types.HCPItemPayload]{
		kind: "hcp_items",
		id:   func(p types.HCPItemPayload) *uint64 { return flexID(p.ID) },
		deleteAbsent: func(tx *gorm.DB, planID uint64, keep []uint64) error {
			return deleteAbsentHCPItems(tx, planID, keep)
		},
		update: func(tx *gorm.DB, planID, id uint64, p types.HCPItemPayload) error {
			var item models.EngagementPlanHCPItem
			if err := tx.Where("engagement_plan_id = ?", planID).First(&item, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &types.NotFoundError{Kind: "hcp item", ID: id}
				}
				return err
			}
			item.HCPID = p.HCPID.Uint64()
			item.ReasonAdded = p.ReasonAdded
			item.ReasonAddedOther = p.ReasonAddedOther
			item.ReasonRemoved = p.ReasonRemoved
			if err := tx.Save(&item).Error; err != nil {
				return err
			}
			if p.Objectives != nil {
				return reconcileChildren(tx, item.ID, p.Objectives, hcpObjectiveSpec(item.HCPID))
			}
			return nil
		},
		create: func(tx *gorm.DB, planID uint64, p types.HCPItemPayload) error {
			item := models.EngagementPlanHCPItem{
				EngagementPlanID: planID,
				HCPID:            p.HCPID.Uint64(),
				ReasonAdded:      p.ReasonAdded,
				ReasonAddedOther: p.ReasonAddedOther,
				ReasonRemoved:    p.ReasonRemoved,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			if p.Objectives != nil {
				return reconcileChildren(tx, item.ID, p.Objectives, hcpObjectiveSpec(item.HCPID))
			}
			return nil
		},
	}
}

func projectItemSpec() childSpec[types.ProjectItemPayload] {
	return childSpec[types.ProjectItemPayload]{
		kind: "project_items",
		id:   func(p types.ProjectItemPayload) *uint64 { return flexID(p.ID) },
		deleteAbsent: func(tx *gorm.DB, planID uint64, keep []uint64) error {
			return deleteAbsentProjectItems(tx, planID, keep)
		},
		update: func(tx *gorm.DB, planID, id uint64, p types.ProjectItemPayload) error {
			var item models.EngagementPlanProjectItem
			if err := tx.Where("engagement_plan_id = ?", planID).First(&item, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &types.NotFoundError{Kind: "project item", ID: id}
				}
				return err
			}
			item.ProjectID = p.ProjectID.Uint64()
			item.ReasonRemoved = p.ReasonRemoved
			if err := tx.Save(&item).Error; err != nil {
				return err
			}
			if p.Objectives != nil {
				return reconcileChildren(tx, item.ID, p.Objectives, projectObjectiveSpec(item.ProjectID))
			}
			return nil
		},
		create: func(tx *gorm.DB, planID uint64, p types.ProjectItemPayload) error {
			item := models.EngagementPlanProjectItem{
				EngagementPlanID: planID,
				ProjectID:        p.ProjectID.Uint64(),
				ReasonRemoved:    p.ReasonRemoved,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			if p.Objectives != nil {
				return reconcileChildren(tx, item.ID, p.Objectives, projectObjectiveSpec(item.ProjectID))
			}
			return nil
		},
	}
}

func hcpObjectiveSpec(hcpID uint64) childSpec[types.ObjectivePayload] {
	return childSpec[types.ObjectivePayload]{
		kind: "objectives",
		id:   func(p types.ObjectivePayload) *uint64 { return flexID(p.ID) },
		deleteAbsent: func(tx *gorm.DB, itemID uint64, keep []uint64) error {
			var ids []uint64
			q := tx.Model(&models.HCPObjective{}).Where("engagement_plan_item_id = ?", itemID)
			if len(keep) > 0 {
				q = q.Where("id NOT IN ?", keep)
			}
			if err := q.Pluck("id", &ids).Error; err != nil {
				return err
			}
			return deleteHCPObjectives(tx, ids)
		},
		update: func(tx *gorm.DB, itemID, id uint64, p types.ObjectivePayload) error {
			var obj models.HCPObjective
			if err := tx.Where("engagement_plan_item_id = ?", itemID).First(&obj, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &types.NotFoundError{Kind: "hcp objective", ID: id}
				}
				return err
			}
			obj.Description = p.Description
			obj.BCSFID = flexID(p.BCSFID)
			obj.MedicalPlanObjectiveID = flexID(p.MedicalPlanObjectiveID)
			if err := tx.Save(&obj).Error; err != nil {
				return err
			}
			if p.Deliverables != nil {
				return reconcileChildren(tx, obj.ID, p.Deliverables, hcpDeliverableSpec())
			}
			return nil
		},
		create: func(tx *gorm.DB, itemID uint64, p types.ObjectivePayload) error {
			obj := models.HCPObjective{
				EngagementPlanItemID:   itemID,
				HCPID:                  hcpID,
				Description:            p.Description,
				BCSFID:                 flexID(p.BCSFID),
				MedicalPlanObjectiveID: flexID(p.MedicalPlanObjectiveID),
			}
			if err := tx.Create(&obj).Error; err != nil {
				return err
			}
			if p.Deliverables != nil {
				return reconcileChildren(tx, obj.ID, p.Deliverables, hcpDeliverableSpec())
			}
			return nil
		},
	}
}

func projectObjectiveSpec(projectID uint64) childSpec[types.ObjectivePayload] {
	return childSpec[types.ObjectivePayload]{
		kind: "objectives",
		id:   func(p types.ObjectivePayload) *uint64 { return flexID(p.ID) },
		deleteAbsent: func(tx *gorm.DB, itemID uint64, keep []uint64) error {
			var ids []uint64
			q := tx.Model(&models.ProjectObjective{}).Where("engagement_plan_item_id = ?", itemID)
			if len(keep) > 0 {
				q = q.Where("id NOT IN ?", keep)
			}
			if err := q.Pluck("id", &ids).Error; err != nil {
				return err
			}
			return deleteProjectObjectives(tx, ids)
		},
		update: func(tx *gorm.DB, itemID, id uint64, p types.ObjectivePayload) error {
			var obj models.ProjectObjective
			if err := tx.Where("engagement_plan_item_id = ?", itemID).First(&obj, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &types.NotFoundError{Kind: "project objective", ID: id}
				}
				return err
			}
			obj.Description = p.Description
			obj.BCSFID = flexID(p.BCSFID)
			obj.MedicalPlanObjectiveID = flexID(p.MedicalPlanObjectiveID)
			if err := tx.Save(&obj).Error; err != nil {
				return err
			}
			if p.Deliverables != nil {
				return reconcileChildren(tx, obj.ID, p.Deliverables, projectDeliverableSpec())
			}
			return nil
		},
		create: func(tx *gorm.DB, itemID uint64, p types.ObjectivePayload) error {
			obj := models.ProjectObjective{
				EngagementPlanItemID:   itemID,
				ProjectID:              projectID,
				Description:            p.Description,
				BCSFID:                 flexID(p.BCSFID),
				MedicalPlanObjectiveID: flexID(p.MedicalPlanObjectiveID),
			}
			if err := tx.Create(&obj).Error; err != nil {
				return err
			}
			if p.Deliverables != nil {
				return reconcileChildren(tx, obj.ID, p.Deliverables, projectDeliverableSpec())
			}
			return nil
		},
	}
}

func hcpDeliverableSpec() childSpec[types.DeliverablePayload] {
	return childSpec[types.DeliverablePayload]{
		kind: "deliverables",
		id:   func(p types.DeliverablePayload) *uint64 { return flexID(p.ID) },
		deleteAbsent: func(tx *gorm.DB, objectiveID uint64, keep []uint64) error {
			q := tx.Where("objective_id = ?", objectiveID)
			if len(keep) > 0 {
				q = q.Where("id NOT IN ?", keep)
			}
			return q.Delete(&models.HCPDeliverable{}).Error
		},
		update: func(tx *gorm.DB, objectiveID, id uint64, p types.DeliverablePayload) error {
			var d models.HCPDeliverable
			if err := tx.Where("objective_id = ?", objectiveID).First(&d, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &types.NotFoundError{Kind: "deliverable", ID: id}
				}
				return err
			}
			d.Quarter = p.Quarter
			d.Description = p.Description
			d.Status = p.Status
			return tx.Save(&d).Error
		},
		create: func(tx *gorm.DB, objectiveID uint64, p types.DeliverablePayload) error {
			return tx.Create(&models.HCPDeliverable{
				ObjectiveID: objectiveID,
				Quarter:     p.Quarter,
				Description: p.Description,
				Status:      p.Status,
			}).Error
		},
	}
}

func projectDeliverableSpec() childSpec[types.DeliverablePayload] {
	return childSpec[types.DeliverablePayload]{
		kind: "deliverables",
		id:   func(p types.DeliverablePayload) *uint64 { return flexID(p.ID) },
		deleteAbsent: func(tx *gorm.DB, objectiveID uint64, keep []uint64) error {
			q := tx.Where("objective_id = ?", objectiveID)
			if len(keep) > 0 {
				q = q.Where("id NOT IN ?", keep)
			}
			return q.Delete(&models.ProjectDeliverable{}).Error
		},
		update: func(tx *gorm.DB, objectiveID, id uint64, p types.DeliverablePayload) error {
			var d models.ProjectDeliverable
			if err := tx.Where("objective_id = ?", objectiveID).First(&d, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &types.NotFoundError{Kind: "deliverable", ID: id}
				}
				return err
			}
			d.Quarter = p.Quarter
			d.Description = p.Description
			d.Status = p.Status
			return tx.Save(&d).Error
		},
		create: func(tx *gorm.DB, objectiveID uint64, p types.DeliverablePayload) error {
			return tx.Create(&models.ProjectDeliverable{
				ObjectiveID: objectiveID,
				Quarter:     p.Quarter,
				Description: p.Description,
				Status:      p.Status,
			}).Error
		},
	}
}

// Cascades. Soft deletes walk the tree explicitly so descendants never
// outlive a removed ancestor.

func deleteAbsentHCPItems(tx *gorm.DB, planID uint64, keep []uint64) error {
	var ids []uint64
	q := tx.Model(&models.EngagementPlanHCPItem{}).Where("engagement_plan_id = ?", planID)
	if len(keep) > 0 {
		q = q.Where("id NOT IN ?", keep)
	}
	if err := q.Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	var objIDs []uint64
	if err := tx.Model(&models.HCPObjective{}).
		Where("engagement_plan_item_id IN ?", ids).
		Pluck("id", &objIDs).Error; err != nil {
		return err
	}
	if err := deleteHCPObjectives(tx, objIDs); err != nil {
		return err
	}
	// Removal timestamp survives the soft delete as an audit mark.
	if err := tx.Model(&models.EngagementPlanHCPItem{}).
		Where("id IN ?", ids).
		Update("removed_at", time.Now().UTC()).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&models.EngagementPlanHCPItem{}).Error
}

func deleteAbsentProjectItems(tx *gorm.DB, planID uint64, keep []uint64) error {
	var ids []uint64
	q := tx.Model(&models.EngagementPlanProjectItem{}).Where("engagement_plan_id = ?", planID)
	if len(keep) > 0 {
		q = q.Where("id NOT IN ?", keep)
	}
	if err := q.Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	var objIDs []uint64
	if err := tx.Model(&models.ProjectObjective{}).
		Where("engagement_plan_item_id IN ?", ids).
		Pluck("id", &objIDs).Error; err != nil {
		return err
	}
	if err := deleteProjectObjectives(tx, objIDs); err != nil {
		return err
	}
	if err := tx.Model(&models.EngagementPlanProjectItem{}).
		Where("id IN ?", ids).
		Update("removed_at", time.Now().UTC()).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&models.EngagementPlanProjectItem{}).Error
}

func deleteHCPObjectives(tx *gorm.DB, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("objective_id IN ?", ids).Delete(&models.HCPDeliverable{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&models.HCPObjective{}).Error
}

func deleteProjectObjectives(tx *gorm.DB, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("objective_id IN ?", ids).Delete(&models.ProjectDeliverable{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&models.ProjectObjective{}).Error
}

// Validation. Runs before any mutation so a bad submission never leaves a
// partial write.

func validatePlanSubmission(sub *types.PlanSubmission) error {
	for _, item := range sub.HCPItems {
		if item.HCPID == 0 {
			return &types.ValidationError{Field: "hcp_id", Message: "hcp_id is required on hcp_items"}
		}
		if !models.ValidReasonAdded(item.ReasonAdded) {
			return &types.ValidationError{
				Field:   "reason_added",
				Message: fmt.Sprintf("invalid reason_added %q", item.ReasonAdded),
			}
		}
		for _, obj := range item.Objectives {
			if err := validateDeliverables(obj.Deliverables); err != nil {
				return err
			}
		}
	}
	for _, item := range sub.ProjectItems {
		if item.ProjectID == 0 {
			return &types.ValidationError{Field: "project_id", Message: "project_id is required on project_items"}
		}
		for _, obj := range item.Objectives {
			if err := validateDeliverables(obj.Deliverables); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateDeliverables(deliverables []types.DeliverablePayload) error {
	seen := make(map[int]struct{}, 4)
	for _, d := range deliverables {
		if d.Quarter < 1 || d.Quarter > 4 {
			return &types.ValidationError{
				Field:   "quarter",
				Message: fmt.Sprintf("quarter must be 1-4, got %d", d.Quarter),
			}
		}
		if _, dup := seen[d.Quarter]; dup {
			return &types.ValidationError{
				Field:   "quarter",
				Message: fmt.Sprintf("duplicate quarter %d within one objective", d.Quarter),
			}
		}
		seen[d.Quarter] = struct{}{}
		if !models.ValidDeliverableStatus(d.Status) {
			return &types.ValidationError{
				Field:   "status",
				Message: fmt.Sprintf("invalid deliverable status %q", d.Status),
			}
		}
	}
	return nil
}

// decoratePlan fills the derived deliverable time frames.
func decoratePlan(plan *models.EngagementPlan) {
	now := time.Now().UTC()
	for i := range plan.HCPItems {
		for j := range plan.HCPItems[i].Objectives {
			obj := &plan.HCPItems[i].Objectives[j]
			for k := range obj.Deliverables {
				d := &obj.Deliverables[k]
				d.TimeFrame = models.DeliverableTimeFrame(plan.Year, d.Quarter, now)
			}
		}
	}
	for i := range plan.ProjectItems {
		for j := range plan.ProjectItems[i].Objectives {
			obj := &plan.ProjectItems[i].Objectives[j]
			for k := range obj.Deliverables {
				d := &obj.Deliverables[k]
				d.TimeFrame = models.DeliverableTimeFrame(plan.Year, d.Quarter, now)
			}
		}
	}
}
