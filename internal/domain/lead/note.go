package lead

import "time"

// Note is a free-text annotation attached to a lead. Body is the only
// mutable field.
type Note struct {
	ID        string    `json:"id"`
	LeadID    string    `json:"lead_id"`
	Body      string    `json:"body"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// NoteDraft is the payload for creating or editing a note.
type NoteDraft struct {
	Body string `json:"body" validate:"required"`
}

// NotePage is the server's list envelope for GET /leads/:id/notes.
type NotePage struct {
	Notes      []Note `json:"notes"`
	TotalCount int    `json:"total_count"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
}
