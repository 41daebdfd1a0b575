package services

import (
	"errors"

	"github.com/fieldlink/interactions-api/internal/models"
	"github.com/fieldlink/interactions-api/internal/types"
	"gorm.io/gorm"
)

// Generic CRUD over the flat reference kinds (affiliate groups, therapeutic
// areas, projects, resources, outcomes, success factors, plan objectives).

// MembershipJoins names the join tables tying one record kind to affiliate
// groups and therapeutic areas.
type MembershipJoins struct {
	Table  string
	AGJoin string
	TAJoin string
	RefCol string
}

// Join-table wiring per membership-bearing kind.
var (
	ProjectJoins  = MembershipJoins{"projects", "project_affiliate_groups", "project_therapeutic_areas", "project_id"}
	ResourceJoins = MembershipJoins{"resources", "resource_affiliate_groups", "resource_therapeutic_areas", "resource_id"}
	BCSFJoins     = MembershipJoins{"brand_critical_success_factors", "bcsf_affiliate_groups", "bcsf_therapeutic_areas", "bcsf_id"}
	MPOJoins      = MembershipJoins{"medical_plan_objectives", "mpo_affiliate_groups", "mpo_therapeutic_areas", "mpo_id"}

	hcpJoins = MembershipJoins{"hcps", "hcp_affiliate_groups", "hcp_therapeutic_areas", "hcp_id"}
)

// ReferenceFilter carries the list parameters of the membership-bearing
// reference kinds.
type ReferenceFilter struct {
	AffiliateGroupIDs  []uint64
	TherapeuticAreaIDs []uint64
	UserID             *uint64
	Type               string
}

// FilterReferenceRecords lists records of one membership-bearing kind.
// Non-staff callers only see records sharing one of their affiliate groups or
// therapeutic areas; the query parameters narrow further.
func FilterReferenceRecords[T any](db *gorm.DB, user *models.User, j MembershipJoins, f *ReferenceFilter, preloads ...string) ([]T, error) {
	q := db.Model(new(T))
	for _, preload := range preloads {
		q = q.Preload(preload)
	}

	col := j.Table + ".id"
	if len(f.AffiliateGroupIDs) > 0 {
		q = q.Where(col+" IN (?)", memberSub(db, j.AGJoin, j.RefCol, "affiliate_group_id", f.AffiliateGroupIDs))
	}
	if len(f.TherapeuticAreaIDs) > 0 {
		q = q.Where(col+" IN (?)", memberSub(db, j.TAJoin, j.RefCol, "therapeutic_area_id", f.TherapeuticAreaIDs))
	}
	if f.UserID != nil {
		q = scopeToUserMemberships(q, db, j, *f.UserID)
	}
	if !user.IsStaff {
		q = scopeToUserMemberships(q, db, j, user.ID)
	}
	if f.Type != "" {
		q = q.Where(j.Table+".type = ?", f.Type)
	}

	var records []T
	if err := q.Order(col).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func memberSub(db *gorm.DB, joinTable, refCol, memberCol string, ids []uint64) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).
		Table(joinTable).
		Select(refCol).
		Where(memberCol+" IN ?", ids)
}

// scopeToUserMemberships restricts the query to records sharing an affiliate
// group or therapeutic area with the given user.
func scopeToUserMemberships(q *gorm.DB, db *gorm.DB, j MembershipJoins, userID uint64) *gorm.DB {
	userAGs := db.Session(&gorm.Session{NewDB: true}).
		Table("user_affiliate_groups").
		Select("affiliate_group_id").
		Where("user_id = ?", userID)
	userTAs := db.Session(&gorm.Session{NewDB: true}).
		Table("user_therapeutic_areas").
		Select("therapeutic_area_id").
		Where("user_id = ?", userID)
	agSub := db.Session(&gorm.Session{NewDB: true}).
		Table(j.AGJoin).
		Select(j.RefCol).
		Where("affiliate_group_id IN (?)", userAGs)
	taSub := db.Session(&gorm.Session{NewDB: true}).
		Table(j.TAJoin).
		Select(j.RefCol).
		Where("therapeutic_area_id IN (?)", userTAs)
	col := j.Table + ".id"
	return q.Where(col+" IN (?) OR "+col+" IN (?)", agSub, taSub)
}

// ListRecords lists all records of one kind, optionally preloading relations.
func ListRecords[T any](db *gorm.DB, preloads ...string) ([]T, error) {
	q := db
	for _, preload := range preloads {
		q = q.Preload(preload)
	}
	var records []T
	if err := q.Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// GetRecord fetches one record by id.
func GetRecord[T any](db *gorm.DB, kind string, id uint64, preloads ...string) (*T, error) {
	q := db
	for _, preload := range preloads {
		q = q.Preload(preload)
	}
	var record T
	if err := q.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &types.NotFoundError{Kind: kind, ID: id}
		}
		return nil, err
	}
	return &record, nil
}

// CreateRecord inserts a record, including submitted many-to-many relations.
func CreateRecord[T any](db *gorm.DB, record *T) error {
	return db.Create(record).Error
}

// UpdateRecord saves changed fields of an existing record. The target must
// exist.
func UpdateRecord[T any](db *gorm.DB, kind string, id uint64, record *T) error {
	var existing T
	if err := db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &types.NotFoundError{Kind: kind, ID: id}
		}
		return err
	}
	return db.Model(&existing).Updates(record).Error
}

// DeleteRecord soft deletes a record by id.
func DeleteRecord[T any](db *gorm.DB, kind string, id uint64) error {
	var existing T
	if err := db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &types.NotFoundError{Kind: kind, ID: id}
		}
		return err
	}
	return db.Delete(&existing).Error
}
