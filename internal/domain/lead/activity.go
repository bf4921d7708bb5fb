package lead

import "time"

// ActivityKind classifies an interaction log entry.
type ActivityKind string

const (
	KindCall         ActivityKind = "call"
	KindFollowUpCall ActivityKind = "follow_up_call"
	KindEmail        ActivityKind = "email"
	KindMeeting      ActivityKind = "meeting"
	KindWhatsApp     ActivityKind = "whatsapp"
	KindNote         ActivityKind = "note"
)

// Valid reports whether k is one of the known activity kinds.
func (k ActivityKind) Valid() bool {
	switch k {
	case KindCall, KindFollowUpCall, KindEmail, KindMeeting, KindWhatsApp, KindNote:
		return true
	}
	return false
}

// Activity is a timestamped interaction log entry attached to a lead.
// Kind is immutable after creation; only the summary can be edited.
type Activity struct {
	ID         string       `json:"id"`
	LeadID     string       `json:"lead_id"`
	StaffID    *string      `json:"staff_id,omitempty"`
	Kind       ActivityKind `json:"kind"`
	Summary    *string      `json:"summary,omitempty"`
	OccurredAt time.Time    `json:"occurred_at"`
}

// ActivityDraft is the payload for logging a new activity.
type ActivityDraft struct {
	Kind    ActivityKind `json:"kind" validate:"required"`
	Summary string       `json:"summary,omitempty"`
}

// ActivityUpdate edits the summary of an existing activity.
type ActivityUpdate struct {
	Summary string `json:"summary,omitempty" validate:"required"`
}

// ActivityPage is the server's list envelope for GET /leads/:id/activities.
type ActivityPage struct {
	Activities []Activity `json:"activities"`
	TotalCount int        `json:"total_count"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
}
