package models

import "gorm.io/gorm"

// Role is a named permission bundle. The permission mapping itself is a
// static table in the services package; roles carry only identity.
type Role struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"uniqueIndex;size:64;not null" json:"name"`
	Timestamped
}

func (Role) TableName() string {
	return "roles"
}

// User is a local account mirroring the identity provider's subject. Email is
// the join key back to the Authorizer session.
type User struct {
	ID               uint64            `gorm:"primaryKey;autoIncrement" json:"id"`
	Email            string            `gorm:"uniqueIndex;size:255;not null" json:"email"`
	FirstName        string            `gorm:"size:128" json:"first_name,omitempty"`
	LastName         string            `gorm:"size:128" json:"last_name,omitempty"`
	BusinessTitle    string            `gorm:"size:255" json:"business_title,omitempty"`
	IsStaff          bool              `gorm:"not null;default:false" json:"is_staff"`
	Roles            []Role            `gorm:"many2many:user_roles;joinForeignKey:user_id;joinReferences:role_id" json:"roles,omitempty"`
	AffiliateGroups  []AffiliateGroup  `gorm:"many2many:user_affiliate_groups;joinForeignKey:user_id;joinReferences:affiliate_group_id" json:"affiliate_groups,omitempty"`
	TherapeuticAreas []TherapeuticArea `gorm:"many2many:user_therapeutic_areas;joinForeignKey:user_id;joinReferences:therapeutic_area_id" json:"tas,omitempty"`
	Timestamped
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// HasRole reports whether the user carries the named role. Roles must be
// preloaded.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// AffiliateGroupIDs returns the ids of the user's preloaded affiliate groups.
func (u *User) AffiliateGroupIDs() []uint64 {
	ids := make([]uint64, 0, len(u.AffiliateGroups))
	for _, ag := range u.AffiliateGroups {
		ids = append(ids, ag.ID)
	}
	return ids
}

// TherapeuticAreaIDs returns the ids of the user's preloaded therapeutic areas.
func (u *User) TherapeuticAreaIDs() []uint64 {
	ids := make([]uint64, 0, len(u.TherapeuticAreas))
	for _, ta := range u.TherapeuticAreas {
		ids = append(ids, ta.ID)
	}
	return ids
}
