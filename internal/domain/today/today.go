// internal/domain/today/today.go
package today

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"lead_crm_client/internal/domain/lead"
)

// FollowUpCall is a derived due-reminder computed server-side from a lead's
// last contact. It is not a stored task.
type FollowUpCall struct {
	LeadID         string     `json:"lead_id"`
	LeadName       string     `json:"lead_name"`
	LeadStatus     *string    `json:"lead_status,omitempty"`
	LastFollowUpAt *time.Time `json:"last_follow_up_at,omitempty"`
	DueAt          time.Time  `json:"due_at"`
	AllocatedTo    *string    `json:"allocated_to,omitempty"`
}

// View is the read-only aggregate returned by GET /tasks/today: open and
// in-progress tasks relevant today plus leads whose follow-up call is due.
type View struct {
	Tasks              []lead.Task    `json:"tasks"`
	FollowUpCallTasks  []FollowUpCall `json:"follow_up_call_tasks"`
	TotalTasks         int            `json:"total_tasks"`
	TotalFollowUpCalls int            `json:"total_follow_up_calls"`
	Limit              int            `json:"limit"`
	Offset             int            `json:"offset"`
}

// Query enumerates every recognized option of GET /tasks/today.
type Query struct {
	AssignedTo string
	Limit      int
	Offset     int
}

// Values encodes the query as server parameters, omitting zero values.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.AssignedTo != "" {
		v.Set("assigned_to", q.AssignedTo)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		v.Set("offset", strconv.Itoa(q.Offset))
	}
	return v
}

// API defines the remote operation backing the today-task queue.
type API interface {
	Get(ctx context.Context, q Query) (*View, error)
}
