package services

import (
	"time"

	"github.com/fieldlink/interactions-api/internal/models"
	"github.com/fieldlink/interactions-api/internal/types"
	"gorm.io/gorm"
)

// Permissions. Staff users implicitly hold all of them.
const (
	PermAddEngagementPlan    = "add_engagementplan"
	PermChangeEngagementPlan = "change_engagementplan"
	PermChangeOwnCurrentEP   = "change_own_current_ep"
	PermListAllEP            = "list_all_ep"
	PermListOwnAGEP          = "list_own_ag_ep"
	PermApproveAllEP         = "approve_all_ep"
	PermApproveOwnAGEP       = "approve_own_ag_ep"
	PermAddInteraction       = "add_interaction"
	PermListAllInteraction   = "list_all_interaction"
	PermListOwnAGInteraction = "list_own_ag_interaction"
)

// Role names seeded in the roles table.
const (
	RoleMSL        = "MSL"
	RoleMSLManager = "MSL Manager"
)

// rolePermissions is the static role grant table.
var rolePermissions = map[string][]string{
	RoleMSL: {
		PermAddEngagementPlan,
		PermChangeOwnCurrentEP,
		PermAddInteraction,
	},
	RoleMSLManager: {
		PermListOwnAGEP,
		PermApproveOwnAGEP,
		PermListOwnAGInteraction,
	},
}

// HasPermission resolves a permission through the user's roles. Roles must be
// preloaded.
func HasPermission(user *models.User, perm string) bool {
	if user.IsStaff {
		return true
	}
	for _, role := range user.Roles {
		for _, p := range rolePermissions[role.Name] {
			if p == perm {
				return true
			}
		}
	}
	return false
}

// Permissions lists all permissions the user holds, for the /users/me surface.
func Permissions(user *models.User) []string {
	if user.IsStaff {
		return []string{
			PermAddEngagementPlan, PermChangeEngagementPlan, PermChangeOwnCurrentEP,
			PermListAllEP, PermListOwnAGEP, PermApproveAllEP, PermApproveOwnAGEP,
			PermAddInteraction, PermListAllInteraction, PermListOwnAGInteraction,
		}
	}
	seen := map[string]struct{}{}
	var perms []string
	for _, role := range user.Roles {
		for _, p := range rolePermissions[role.Name] {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			perms = append(perms, p)
		}
	}
	return perms
}

// PlanListScope narrows a plan query to what the user may see. Listing never
// errors; it silently filters.
func PlanListScope(db *gorm.DB, user *models.User) *gorm.DB {
	if user.IsStaff || HasPermission(user, PermListAllEP) {
		return db
	}
	if HasPermission(user, PermListOwnAGEP) {
		return scopeToAffiliateGroupOwners(db, user.AffiliateGroupIDs())
	}
	return db.Where("user_id = ?", user.ID)
}

// InteractionListScope mirrors PlanListScope for interactions.
func InteractionListScope(db *gorm.DB, user *models.User) *gorm.DB {
	if user.IsStaff || HasPermission(user, PermListAllInteraction) {
		return db
	}
	if HasPermission(user, PermListOwnAGInteraction) {
		return scopeToAffiliateGroupOwners(db, user.AffiliateGroupIDs())
	}
	return db.Where("user_id = ?", user.ID)
}

// scopeToAffiliateGroupOwners limits rows to those owned by users sharing an
// affiliate group. A user with no groups sees nothing.
func scopeToAffiliateGroupOwners(db *gorm.DB, agIDs []uint64) *gorm.DB {
	if len(agIDs) == 0 {
		return db.Where("1 = 0")
	}
	sub := db.Session(&gorm.Session{NewDB: true}).
		Table("user_affiliate_groups").
		Select("user_id").
		Where("affiliate_group_id IN ?", agIDs)
	return db.Where("user_id IN (?)", sub)
}

// CanViewPlan is the object-level counterpart of PlanListScope. A plan
// outside the user's scope reads as missing, not forbidden.
func CanViewPlan(db *gorm.DB, user *models.User, plan *models.EngagementPlan) error {
	if user.IsStaff || HasPermission(user, PermListAllEP) || plan.UserID == user.ID {
		return nil
	}
	if HasPermission(user, PermListOwnAGEP) {
		shared, err := usersShareAffiliateGroup(db, user.ID, plan.UserID)
		if err != nil {
			return err
		}
		if shared {
			return nil
		}
	}
	return &types.NotFoundError{Kind: "engagement plan", ID: plan.ID}
}

// CanCreatePlan gates plan creation.
func CanCreatePlan(user *models.User) error {
	if HasPermission(user, PermAddEngagementPlan) {
		return nil
	}
	return &types.PermissionError{Reason: "you do not have permission to create engagement plans"}
}

// CanModifyPlan gates updates and deletes. change_own_current_ep holders may
// touch only their own plan for the current calendar year.
func CanModifyPlan(user *models.User, plan *models.EngagementPlan) error {
	if HasPermission(user, PermChangeEngagementPlan) {
		return nil
	}
	if HasPermission(user, PermChangeOwnCurrentEP) {
		if plan.UserID != user.ID {
			return &types.PermissionError{Reason: "you may only change your own engagement plan"}
		}
		if plan.Year != time.Now().UTC().Year() {
			return &types.PermissionError{Reason: "you may only change your current year engagement plan"}
		}
		return nil
	}
	return &types.PermissionError{Reason: "you do not have permission to change engagement plans"}
}

// CanApprovePlan gates approve/unapprove. approve_own_ag_ep requires an
// affiliate group shared with the plan owner.
func CanApprovePlan(db *gorm.DB, user *models.User, plan *models.EngagementPlan) error {
	if HasPermission(user, PermApproveAllEP) {
		return nil
	}
	if HasPermission(user, PermApproveOwnAGEP) {
		shared, err := usersShareAffiliateGroup(db, user.ID, plan.UserID)
		if err != nil {
			return err
		}
		if shared {
			return nil
		}
		return &types.PermissionError{Reason: "you may only approve plans of users in your affiliate groups"}
	}
	return &types.PermissionError{Reason: "you do not have permission to approve engagement plans"}
}

// CanCreateInteraction gates interaction logging.
func CanCreateInteraction(user *models.User) error {
	if HasPermission(user, PermAddInteraction) {
		return nil
	}
	return &types.PermissionError{Reason: "you do not have permission to log interactions"}
}

func usersShareAffiliateGroup(db *gorm.DB, userA, userB uint64) (bool, error) {
	var count int64
	err := db.Session(&gorm.Session{NewDB: true}).
		Table("user_affiliate_groups AS a").
		Joins("JOIN user_affiliate_groups AS b ON a.affiliate_group_id = b.affiliate_group_id").
		Where("a.user_id = ? AND b.user_id = ?", userA, userB).
		Count(&count).Error
	return count > 0, err
}
