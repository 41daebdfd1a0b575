package models

import "time"

// Timestamped carries the creation/update audit columns shared by all entities.
type Timestamped struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Approvable carries the approval state for nodes participating in the
// approval workflow. ApprovedAt records entry into the approved state.
type Approvable struct {
	Approved   bool       `gorm:"not null;default:false" json:"approved"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
}

// Approve marks the node approved and stamps the transition time.
func (a *Approvable) Approve() {
	now := time.Now().UTC()
	a.Approved = true
	a.ApprovedAt = &now
}

// Unapprove clears the flag. ApprovedAt is preserved as a last-approved
// audit mark.
func (a *Approvable) Unapprove() {
	a.Approved = false
}
