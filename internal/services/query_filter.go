package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fieldlink/interactions-api/internal/models"
	"github.com/fieldlink/interactions-api/internal/types"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// HCPFilter carries the query parameters of the HCP list. UserID alone
// filters by shared memberships; combined with EngagementPlan "current" it
// names whose plan to resolve.
type HCPFilter struct {
	UserID         *uint64
	EngagementPlan string // "", "current", or a numeric plan id
	Search         string
}

// ObjectiveFilter carries the query parameters of the HCP objective list.
type ObjectiveFilter struct {
	UserID         *uint64
	EngagementPlan *uint64
	HCPID          *uint64
}

// ParseApprovedParam parses the plan list's approved query parameter.
func ParseApprovedParam(s string) (*bool, error) {
	switch s {
	case "":
		return nil, nil
	case "true":
		v := true
		return &v, nil
	case "false":
		v := false
		return &v, nil
	}
	return nil, &types.ValidationError{
		Field:   "approved",
		Message: fmt.Sprintf("approved must be true or false, got %q", s),
	}
}

// FilterHCPs lists HCPs visible to the user. Non-staff users see only HCPs
// overlapping both their affiliate groups and therapeutic areas.
func FilterHCPs(db *gorm.DB, user *models.User, f *HCPFilter) ([]models.HCP, error) {
	q := db.Model(&models.HCP{}).
		Preload("AffiliateGroups").
		Preload("TherapeuticAreas")

	if !user.IsStaff {
		q = scopeHCPOverlap(q, db, user)
	}

	if f.EngagementPlan != "" {
		planID, err := resolvePlanParam(db, user, f.EngagementPlan, f.UserID)
		if err != nil {
			return nil, err
		}
		if planID == 0 {
			// no current plan: an empty list, not an error
			return []models.HCP{}, nil
		}
		sub := db.Session(&gorm.Session{NewDB: true}).
			Model(&models.EngagementPlanHCPItem{}).
			Select("hcp_id").
			Where("engagement_plan_id = ?", planID)
		q = q.Where("hcps.id IN (?)", sub)
	} else if f.UserID != nil {
		// user on its own filters to HCPs sharing one of that user's
		// affiliate groups or therapeutic areas
		q = scopeToUserMemberships(q, db, hcpJoins, *f.UserID)
	}

	if f.Search != "" {
		q = applyHCPSearch(q, f.Search)
	}

	var hcps []models.HCP
	if err := q.Order("hcps.id").Find(&hcps).Error; err != nil {
		return nil, err
	}
	return hcps, nil
}

// FilterHCPObjectives lists objectives under approved plan items, within the
// user's plan visibility scope.
func FilterHCPObjectives(db *gorm.DB, user *models.User, f *ObjectiveFilter) ([]models.HCPObjective, error) {
	planScope := PlanListScope(
		db.Session(&gorm.Session{NewDB: true}).Model(&models.EngagementPlan{}), user).
		Select("id")

	itemSub := db.Session(&gorm.Session{NewDB: true}).
		Model(&models.EngagementPlanHCPItem{}).
		Select("id").
		Where("approved = ?", true).
		Where("engagement_plan_id IN (?)", planScope)

	if f.UserID != nil {
		// user param means that user's current-year plan
		planID, err := currentPlanID(db, *f.UserID)
		if err != nil {
			return nil, err
		}
		if planID == 0 {
			return []models.HCPObjective{}, nil
		}
		itemSub = itemSub.Where("engagement_plan_id = ?", planID)
	}
	if f.EngagementPlan != nil {
		itemSub = itemSub.Where("engagement_plan_id = ?", *f.EngagementPlan)
	}

	q := db.Model(&models.HCPObjective{}).
		Preload("Deliverables").
		Where("engagement_plan_item_id IN (?)", itemSub)
	if f.HCPID != nil {
		q = q.Where("hcp_id = ?", *f.HCPID)
	}

	var objectives []models.HCPObjective
	if err := q.Order("id").Find(&objectives).Error; err != nil {
		return nil, err
	}
	return objectives, nil
}

// scopeHCPOverlap requires overlap with the user's affiliate groups AND
// therapeutic areas. A user missing either membership sees nothing.
func scopeHCPOverlap(q *gorm.DB, db *gorm.DB, user *models.User) *gorm.DB {
	agIDs := user.AffiliateGroupIDs()
	taIDs := user.TherapeuticAreaIDs()
	if len(agIDs) == 0 || len(taIDs) == 0 {
		return q.Where("1 = 0")
	}
	agSub := db.Session(&gorm.Session{NewDB: true}).
		Table("hcp_affiliate_groups").
		Select("hcp_id").
		Where("affiliate_group_id IN ?", agIDs)
	taSub := db.Session(&gorm.Session{NewDB: true}).
		Table("hcp_therapeutic_areas").
		Select("hcp_id").
		Where("therapeutic_area_id IN ?", taIDs)
	return q.Where("hcps.id IN (?)", agSub).Where("hcps.id IN (?)", taSub)
}

// applyHCPSearch requires every search word to match at least one of the
// name, institution, city or country columns.
func applyHCPSearch(q *gorm.DB, search string) *gorm.DB {
	q = q.Clauses(hints.Comment("select", "hcp-search"))
	for _, word := range strings.Fields(strings.ToLower(search)) {
		like := "%" + word + "%"
		q = q.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(institution_name) LIKE ? OR LOWER(city) LIKE ? OR LOWER(country) LIKE ?",
			like, like, like, like, like,
		)
	}
	return q
}

// resolvePlanParam turns the engagement_plan query value into a plan id.
// "current" resolves against the target user's current-year plan and yields 0
// when there is none.
func resolvePlanParam(db *gorm.DB, user *models.User, value string, targetUser *uint64) (uint64, error) {
	if value == "current" {
		uid := user.ID
		if targetUser != nil {
			uid = *targetUser
		}
		return currentPlanID(db, uid)
	}
	var id uint64
	if _, err := fmt.Sscanf(value, "%d", &id); err != nil || id == 0 {
		return 0, &types.ValidationError{
			Field:   "engagement_plan",
			Message: fmt.Sprintf("engagement_plan must be a plan id or \"current\", got %q", value),
		}
	}
	return id, nil
}

// currentPlanID returns the id of the user's current-year plan, 0 when absent.
func currentPlanID(db *gorm.DB, userID uint64) (uint64, error) {
	var plan models.EngagementPlan
	err := db.Where("user_id = ? AND year = ?", userID, time.Now().UTC().Year()).
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return plan.ID, nil
}
