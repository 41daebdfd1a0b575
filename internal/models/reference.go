package models

import "gorm.io/gorm"

// AffiliateGroup is the organizational grouping used for visibility and
// authorization scoping.
type AffiliateGroup struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"uniqueIndex;size:255;not null" json:"name"`
	Timestamped
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (AffiliateGroup) TableName() string {
	return "affiliate_groups"
}

type TherapeuticArea struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"uniqueIndex;size:255;not null" json:"name"`
	Timestamped
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (TherapeuticArea) TableName() string {
	return "therapeutic_areas"
}

type InteractionOutcome struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"uniqueIndex;size:255;not null" json:"name"`
	Timestamped
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (InteractionOutcome) TableName() string {
	return "interaction_outcomes"
}

// Project is an engagement target independent of any single HCP.
type Project struct {
	ID               uint64            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string            `gorm:"uniqueIndex;size:255;not null" json:"name"`
	Type             string            `gorm:"size:64" json:"type,omitempty"`
	UserID           *uint64           `gorm:"index" json:"user_id,omitempty"`
	AffiliateGroups  []AffiliateGroup  `gorm:"many2many:project_affiliate_groups;joinForeignKey:project_id;joinReferences:affiliate_group_id" json:"affiliate_groups,omitempty"`
	TherapeuticAreas []TherapeuticArea `gorm:"many2many:project_therapeutic_areas;joinForeignKey:project_id;joinReferences:therapeutic_area_id" json:"tas,omitempty"`
	Timestamped
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Project) TableName() string {
	return "projects"
}

// Resource is an uploaded or linked material shareable with HCPs. Blob
// storage itself is external; only the reference is kept here.
type Resource struct {
	ID               uint64            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID           *uint64           `gorm:"index" json:"user_id,omitempty"`
	URL              string            `gorm:"size:2048" json:"url,omitempty"`
	File             string            `gorm:"size:1024" json:"file,omitempty"`
	AffiliateGroups  []AffiliateGroup  `gorm:"many2many:resource_affiliate_groups;joinForeignKey:resource_id;joinReferences:affiliate_group_id" json:"affiliate_groups,omitempty"`
	TherapeuticAreas []TherapeuticArea `gorm:"many2many:resource_therapeutic_areas;joinForeignKey:resource_id;joinReferences:therapeutic_area_id" json:"tas,omitempty"`
	Timestamped
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Resource) TableName() string {
	return "resources"
}

type BrandCriticalSuccessFactor struct {
	ID               uint64            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string            `gorm:"uniqueIndex;size:255;not null" json:"name"`
	AffiliateGroups  []AffiliateGroup  `gorm:"many2many:bcsf_affiliate_groups;joinForeignKey:bcsf_id;joinReferences:affiliate_group_id" json:"affiliate_groups,omitempty"`
	TherapeuticAreas []TherapeuticArea `gorm:"many2many:bcsf_therapeutic_areas;joinForeignKey:bcsf_id;joinReferences:therapeutic_area_id" json:"tas,omitempty"`
	Timestamped
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (BrandCriticalSuccessFactor) TableName() string {
	return "brand_critical_success_factors"
}

type MedicalPlanObjective struct {
	ID               uint64            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string            `gorm:"uniqueIndex;size:255;not null" json:"name"`
	AffiliateGroups  []AffiliateGroup  `gorm:"many2many:mpo_affiliate_groups;joinForeignKey:mpo_id;joinReferences:affiliate_group_id" json:"affiliate_groups,omitempty"`
	TherapeuticAreas []TherapeuticArea `gorm:"many2many:mpo_therapeutic_areas;joinForeignKey:mpo_id;joinReferences:therapeutic_area_id" json:"tas,omitempty"`
	Timestamped
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (MedicalPlanObjective) TableName() string {
	return "medical_plan_objectives"
}
