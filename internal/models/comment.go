package models

import "gorm.io/gorm"

// Comment target kinds. A comment attaches to exactly one plan-tree node,
// identified by (TargetKind, TargetID).
const (
	TargetEngagementPlan     = "engagement_plan"
	TargetHCPItem            = "hcp_item"
	TargetProjectItem        = "project_item"
	TargetHCPObjective       = "hcp_objective"
	TargetProjectObjective   = "project_objective"
	TargetHCPDeliverable     = "hcp_deliverable"
	TargetProjectDeliverable = "project_deliverable"
)

// Comment is a note on a plan-tree node.
type Comment struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint64 `gorm:"index;not null" json:"user_id"`
	User       *User  `gorm:"foreignKey:UserID" json:"-"`
	TargetKind string `gorm:"size:32;not null;index:idx_comments_target" json:"target_kind"`
	TargetID   uint64 `gorm:"not null;index:idx_comments_target" json:"target_id"`
	Message    string `gorm:"size:2048;not null" json:"message"`
	Timestamped
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Comment) TableName() string {
	return "comments"
}

// ValidTargetKind reports whether s names one of the comment target kinds.
func ValidTargetKind(s string) bool {
	switch s {
	case TargetEngagementPlan, TargetHCPItem, TargetProjectItem,
		TargetHCPObjective, TargetProjectObjective,
		TargetHCPDeliverable, TargetProjectDeliverable:
		return true
	}
	return false
}
