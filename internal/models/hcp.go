package models

import "gorm.io/gorm"

// Contact preference values for HCP.ContactPreference.
const (
	ContactPreferenceEmail = "email"
	ContactPreferencePhone = "phone"
	ContactPreferenceVisit = "visit"
)

// HCP is a healthcare provider record. Visibility for non-staff users is
// scoped by affiliate-group and therapeutic-area overlap.
type HCP struct {
	ID                 uint64            `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName          string            `gorm:"size:128;index" json:"first_name"`
	LastName           string            `gorm:"size:128;index" json:"last_name"`
	Email              string            `gorm:"size:255" json:"email,omitempty"`
	Phone              string            `gorm:"size:64" json:"phone,omitempty"`
	InstitutionName    string            `gorm:"size:255;index" json:"institution_name,omitempty"`
	InstitutionAddress string            `gorm:"size:512" json:"institution_address,omitempty"`
	City               string            `gorm:"size:128" json:"city,omitempty"`
	Country            string            `gorm:"size:2" json:"country,omitempty"`
	ContactPreference  string            `gorm:"size:16" json:"contact_preference,omitempty"`
	TimeAvailability   string            `gorm:"size:255" json:"time_availability,omitempty"`
	HasConsented       bool              `gorm:"not null;default:false" json:"has_consented"`
	AffiliateGroups    []AffiliateGroup  `gorm:"many2many:hcp_affiliate_groups;joinForeignKey:hcp_id;joinReferences:affiliate_group_id" json:"affiliate_groups,omitempty"`
	TherapeuticAreas   []TherapeuticArea `gorm:"many2many:hcp_therapeutic_areas;joinForeignKey:hcp_id;joinReferences:therapeutic_area_id" json:"tas,omitempty"`
	Timestamped
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (HCP) TableName() string {
	return "hcps"
}

// ValidContactPreference reports whether s is one of the allowed preference
// values or empty.
func ValidContactPreference(s string) bool {
	switch s {
	case "", ContactPreferenceEmail, ContactPreferencePhone, ContactPreferenceVisit:
		return true
	}
	return false
}
