package models

import "gorm.io/gorm"

// Interaction origin values.
const (
	OriginPlanned   = "engagement_plan"
	OriginFaceReact = "reactive_face"
	OriginPhone     = "reactive_phone"
	OriginOther     = "other"
)

// Interaction type values.
const (
	InteractionFaceToFace = "face_to_face"
	InteractionPhone      = "phone"
	InteractionEmail      = "email"
	InteractionCongress   = "congress"
)

// Interaction is one logged field contact between a user and an HCP,
// optionally tied to a plan objective or a project.
type Interaction struct {
	ID                            uint64               `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID                        uint64               `gorm:"index;not null" json:"user_id"`
	User                          *User                `gorm:"foreignKey:UserID" json:"-"`
	HCPID                         uint64               `gorm:"index;not null" json:"hcp_id"`
	HCP                           *HCP                 `gorm:"foreignKey:HCPID" json:"hcp,omitempty"`
	HCPObjectiveID                *uint64              `gorm:"index" json:"hcp_objective_id,omitempty"`
	HCPObjective                  *HCPObjective        `gorm:"foreignKey:HCPObjectiveID" json:"hcp_objective,omitempty"`
	ProjectID                     *uint64              `gorm:"index" json:"project_id,omitempty"`
	Project                       *Project             `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Description                   string               `gorm:"size:2048" json:"description"`
	Purpose                       string               `gorm:"size:512" json:"purpose,omitempty"`
	IsJointVisit                  bool                 `gorm:"not null;default:false" json:"is_joint_visit"`
	JointVisitWith                JSON                 `json:"joint_visit_with,omitempty"`
	OriginOfInteraction           string               `gorm:"size:32" json:"origin_of_interaction,omitempty"`
	OriginOfInteractionOther      string               `gorm:"size:255" json:"origin_of_interaction_other,omitempty"`
	TypeOfInteraction             string               `gorm:"size:32" json:"type_of_interaction,omitempty"`
	IsProactive                   bool                 `gorm:"not null;default:false" json:"is_proactive"`
	IsAdverseEvent                bool                 `gorm:"not null;default:false" json:"is_adverse_event"`
	AppropriateProceduresFollowed bool                 `gorm:"not null;default:false" json:"appropriate_procedures_followed"`
	NoFollowUpRequired            bool                 `gorm:"not null;default:false" json:"no_follow_up_required"`
	Resources                     []Resource           `gorm:"many2many:interaction_resources;joinForeignKey:interaction_id;joinReferences:resource_id" json:"resources,omitempty"`
	Outcomes                      []InteractionOutcome `gorm:"many2many:interaction_outcomes_link;joinForeignKey:interaction_id;joinReferences:outcome_id" json:"outcomes,omitempty"`
	Timestamped
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Interaction) TableName() string {
	return "interactions"
}

// ValidOrigin reports whether s is one of the allowed origin values or empty.
func ValidOrigin(s string) bool {
	switch s {
	case "", OriginPlanned, OriginFaceReact, OriginPhone, OriginOther:
		return true
	}
	return false
}

// ValidInteractionType reports whether s is one of the allowed type values or
// empty.
func ValidInteractionType(s string) bool {
	switch s {
	case "", InteractionFaceToFace, InteractionPhone, InteractionEmail, InteractionCongress:
		return true
	}
	return false
}
