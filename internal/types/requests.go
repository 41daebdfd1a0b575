package types

// Submission payloads for the nested engagement-plan write surface. A payload
// with an ID updates the identified child; without one it creates a new child.
// A nil nested slice means the level was not submitted and is left untouched.

type DeliverablePayload struct {
	ID          *FlexUint64 `json:"id,omitempty"`
	Quarter     int         `json:"quarter"`
	Description string      `json:"description"`
	Status      string      `json:"status,omitempty"`
}

type ObjectivePayload struct {
	ID                     *FlexUint64          `json:"id,omitempty"`
	Description            string               `json:"description"`
	BCSFID                 *FlexUint64          `json:"bcsf_id,omitempty"`
	MedicalPlanObjectiveID *FlexUint64          `json:"medical_plan_objective_id,omitempty"`
	Deliverables           []DeliverablePayload `json:"deliverables"`
}

type HCPItemPayload struct {
	ID               *FlexUint64        `json:"id,omitempty"`
	HCPID            FlexUint64         `json:"hcp_id"`
	ReasonAdded      string             `json:"reason_added,omitempty"`
	ReasonAddedOther string             `json:"reason_added_other,omitempty"`
	ReasonRemoved    string             `json:"reason_removed,omitempty"`
	Objectives       []ObjectivePayload `json:"objectives"`
}

type ProjectItemPayload struct {
	ID            *FlexUint64        `json:"id,omitempty"`
	ProjectID     FlexUint64         `json:"project_id"`
	ReasonRemoved string             `json:"reason_removed,omitempty"`
	Objectives    []ObjectivePayload `json:"objectives"`
}

type PlanSubmission struct {
	UserID       *FlexUint64          `json:"user_id,omitempty"`
	Year         int                  `json:"year"`
	HCPItems     []HCPItemPayload     `json:"hcp_items"`
	ProjectItems []ProjectItemPayload `json:"project_items"`
}

// ApprovalRequest selects which HCP items an approve/unapprove action covers.
// An empty body, or hcp_items=true, covers the whole plan.
type ApprovalRequest struct {
	HCPItems   *bool                `json:"hcp_items,omitempty"`
	HCPItemIDs FlexList[FlexUint64] `json:"hcp_items_ids,omitempty"`
}

// CommentRequest creates a comment on one plan-tree node.
type CommentRequest struct {
	TargetKind string     `json:"target_kind"`
	TargetID   FlexUint64 `json:"target_id"`
	Message    string     `json:"message"`
}

// InteractionRequest creates a logged interaction.
type InteractionRequest struct {
	UserID                        *FlexUint64          `json:"user_id,omitempty"`
	HCPID                         FlexUint64           `json:"hcp_id"`
	HCPObjectiveID                *FlexUint64          `json:"hcp_objective_id,omitempty"`
	ProjectID                     *FlexUint64          `json:"project_id,omitempty"`
	Description                   string               `json:"description"`
	Purpose                       string               `json:"purpose,omitempty"`
	IsJointVisit                  bool                 `json:"is_joint_visit"`
	JointVisitWith                FlexList[string]     `json:"joint_visit_with,omitempty"`
	OriginOfInteraction           string               `json:"origin_of_interaction,omitempty"`
	OriginOfInteractionOther      string               `json:"origin_of_interaction_other,omitempty"`
	TypeOfInteraction             string               `json:"type_of_interaction,omitempty"`
	IsProactive                   bool                 `json:"is_proactive"`
	IsAdverseEvent                bool                 `json:"is_adverse_event"`
	AppropriateProceduresFollowed bool                 `json:"appropriate_procedures_followed"`
	NoFollowUpRequired            bool                 `json:"no_follow_up_required"`
	ResourceIDs                   FlexList[FlexUint64] `json:"resource_ids,omitempty"`
	OutcomeIDs                    FlexList[FlexUint64] `json:"outcome_ids,omitempty"`
}

// HCPRequest creates or updates a healthcare provider record.
type HCPRequest struct {
	FirstName          string               `json:"first_name"`
	LastName           string               `json:"last_name"`
	Email              string               `json:"email,omitempty"`
	Phone              string               `json:"phone,omitempty"`
	InstitutionName    string               `json:"institution_name,omitempty"`
	InstitutionAddress string               `json:"institution_address,omitempty"`
	City               string               `json:"city,omitempty"`
	Country            string               `json:"country,omitempty"`
	ContactPreference  string               `json:"contact_preference,omitempty"`
	TimeAvailability   string               `json:"time_availability,omitempty"`
	HasConsented       bool                 `json:"has_consented"`
	AffiliateGroupIDs  FlexList[FlexUint64] `json:"affiliate_group_ids,omitempty"`
	TherapeuticAreaIDs FlexList[FlexUint64] `json:"therapeutic_area_ids,omitempty"`
}

// Uint64Slice converts flexible id lists into plain uint64s.
func Uint64Slice(l FlexList[FlexUint64]) []uint64 {
	out := make([]uint64, 0, len(l))
	for _, v := range l {
		out = append(out, v.Uint64())
	}
	return out
}
