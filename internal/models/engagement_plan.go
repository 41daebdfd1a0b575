package models

import (
	"time"

	"gorm.io/gorm"
)

// ReasonAdded values for EngagementPlanHCPItem.
const (
	ReasonAddedOwnObjectives = "engagement_own_objectives"
	ReasonAddedProduct       = "engagement_product"
	ReasonAddedOther         = "other"
)

// Deliverable status values.
const (
	DeliverableOnTrack        = "on_track"
	DeliverableSlightlyBehind = "slightly_behind"
	DeliverableMajorIssue     = "major_issue"
)

// Deliverable time frames, derived from the wall-clock quarter on reads.
const (
	TimeFramePast    = "past"
	TimeFrameCurrent = "current"
	TimeFrameFuture  = "future"
)

// EngagementPlan is the root of a yearly plan tree. At most one non-deleted
// plan per (user, year); enforced in the service layer.
type EngagementPlan struct {
	ID           uint64                      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       uint64                      `gorm:"index;not null" json:"user_id"`
	User         *User                       `gorm:"foreignKey:UserID" json:"-"`
	Year         int                         `gorm:"index;not null" json:"year"`
	HCPItems     []EngagementPlanHCPItem     `gorm:"foreignKey:EngagementPlanID" json:"hcp_items"`
	ProjectItems []EngagementPlanProjectItem `gorm:"foreignKey:EngagementPlanID" json:"project_items"`
	Approvable
	Timestamped
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (EngagementPlan) TableName() string {
	return "engagement_plans"
}

// EngagementPlanHCPItem ties one HCP into a plan, with its own approval state
// and the reason the HCP was added.
type EngagementPlanHCPItem struct {
	ID               uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	EngagementPlanID uint64         `gorm:"index;not null" json:"engagement_plan_id"`
	HCPID            uint64         `gorm:"index;not null" json:"hcp_id"`
	HCP              *HCP           `gorm:"foreignKey:HCPID" json:"hcp,omitempty"`
	ReasonAdded      string         `gorm:"size:32" json:"reason_added,omitempty"`
	ReasonAddedOther string         `gorm:"size:255" json:"reason_added_other,omitempty"`
	RemovedAt        *time.Time     `json:"removed_at,omitempty"`
	ReasonRemoved    string         `gorm:"size:255" json:"reason_removed,omitempty"`
	Objectives       []HCPObjective `gorm:"foreignKey:EngagementPlanItemID" json:"objectives"`
	Approvable
	Timestamped
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (EngagementPlanHCPItem) TableName() string {
	return "engagement_plan_hcp_items"
}

// EngagementPlanProjectItem ties one Project into a plan.
type EngagementPlanProjectItem struct {
	ID               uint64             `gorm:"primaryKey;autoIncrement" json:"id"`
	EngagementPlanID uint64             `gorm:"index;not null" json:"engagement_plan_id"`
	ProjectID        uint64             `gorm:"index;not null" json:"project_id"`
	Project          *Project           `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	RemovedAt        *time.Time         `json:"removed_at,omitempty"`
	ReasonRemoved    string             `gorm:"size:255" json:"reason_removed,omitempty"`
	Objectives       []ProjectObjective `gorm:"foreignKey:EngagementPlanItemID" json:"objectives"`
	Timestamped
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (EngagementPlanProjectItem) TableName() string {
	return "engagement_plan_project_items"
}

// HCPObjective is a mid-level node under an HCP item.
type HCPObjective struct {
	ID                     uint64           `gorm:"primaryKey;autoIncrement" json:"id"`
	EngagementPlanItemID   uint64           `gorm:"index;not null" json:"engagement_plan_item_id"`
	HCPID                  uint64           `gorm:"index;not null" json:"hcp_id"`
	Description            string           `gorm:"size:1024" json:"description"`
	BCSFID                 *uint64          `gorm:"column:bcsf_id;index" json:"bcsf_id,omitempty"`
	MedicalPlanObjectiveID *uint64          `gorm:"index" json:"medical_plan_objective_id,omitempty"`
	Deliverables           []HCPDeliverable `gorm:"foreignKey:ObjectiveID" json:"deliverables"`
	Timestamped
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (HCPObjective) TableName() string {
	return "hcp_objectives"
}

// ProjectObjective is a mid-level node under a project item.
type ProjectObjective struct {
	ID                     uint64               `gorm:"primaryKey;autoIncrement" json:"id"`
	EngagementPlanItemID   uint64               `gorm:"index;not null" json:"engagement_plan_item_id"`
	ProjectID              uint64               `gorm:"index;not null" json:"project_id"`
	Description            string               `gorm:"size:1024" json:"description"`
	BCSFID                 *uint64              `gorm:"column:bcsf_id;index" json:"bcsf_id,omitempty"`
	MedicalPlanObjectiveID *uint64              `gorm:"index" json:"medical_plan_objective_id,omitempty"`
	Deliverables           []ProjectDeliverable `gorm:"foreignKey:ObjectiveID" json:"deliverables"`
	Timestamped
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ProjectObjective) TableName() string {
	return "project_objectives"
}

// HCPDeliverable is a leaf node with a quarter slot. TimeFrame is derived on
// reads against the plan year and the wall clock, never stored.
type HCPDeliverable struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ObjectiveID uint64 `gorm:"index;not null" json:"objective_id"`
	Quarter     int    `gorm:"not null" json:"quarter"`
	Description string `gorm:"size:1024" json:"description"`
	Status      string `gorm:"size:32" json:"status,omitempty"`
	TimeFrame   string `gorm:"-" json:"time_frame,omitempty"`
	Timestamped
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (HCPDeliverable) TableName() string {
	return "hcp_deliverables"
}

type ProjectDeliverable struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ObjectiveID uint64 `gorm:"index;not null" json:"objective_id"`
	Quarter     int    `gorm:"not null" json:"quarter"`
	Description string `gorm:"size:1024" json:"description"`
	Status      string `gorm:"size:32" json:"status,omitempty"`
	TimeFrame   string `gorm:"-" json:"time_frame,omitempty"`
	Timestamped
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ProjectDeliverable) TableName() string {
	return "project_deliverables"
}

// ValidDeliverableStatus reports whether s is one of the allowed status values
// or empty.
func ValidDeliverableStatus(s string) bool {
	switch s {
	case "", DeliverableOnTrack, DeliverableSlightlyBehind, DeliverableMajorIssue:
		return true
	}
	return false
}

// ValidReasonAdded reports whether s is one of the allowed reason values or
// empty.
func ValidReasonAdded(s string) bool {
	switch s {
	case "", ReasonAddedOwnObjectives, ReasonAddedProduct, ReasonAddedOther:
		return true
	}
	return false
}

// DeliverableTimeFrame classifies a quarter of planYear against now.
func DeliverableTimeFrame(planYear, quarter int, now time.Time) string {
	nowQ := int(now.Month()-1)/3 + 1
	switch {
	case planYear < now.Year() || (planYear == now.Year() && quarter < nowQ):
		return TimeFramePast
	case planYear == now.Year() && quarter == nowQ:
		return TimeFrameCurrent
	}
	return TimeFrameFuture
}
