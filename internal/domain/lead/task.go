package lead

import "time"

// TaskStatus is a simple unordered state set; any value is reachable from any
// other via an explicit update.
type TaskStatus string

const (
	TaskOpen       TaskStatus = "open"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
	TaskCancelled  TaskStatus = "cancelled"
)

// Valid reports whether s is one of the known task statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskOpen, TaskInProgress, TaskDone, TaskCancelled:
		return true
	}
	return false
}

// Task is an actionable to-do item attached to a lead.
type Task struct {
	ID         string     `json:"id"`
	LeadID     string     `json:"lead_id"`
	Title      string     `json:"title"`
	DueDate    *time.Time `json:"due_date,omitempty"`
	Status     TaskStatus `json:"status"`
	AssignedTo *string    `json:"assigned_to,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// TaskDraft is the payload for creating a task.
type TaskDraft struct {
	Title      string     `json:"title" validate:"required"`
	DueDate    *string    `json:"due_date,omitempty"`
	Status     TaskStatus `json:"status" validate:"required"`
	AssignedTo *string    `json:"assigned_to,omitempty"`
}

// TaskPatch carries a partial task update.
type TaskPatch struct {
	Title      *string     `json:"title,omitempty"`
	DueDate    *string     `json:"due_date,omitempty"`
	Status     *TaskStatus `json:"status,omitempty"`
	AssignedTo *string     `json:"assigned_to,omitempty"`
}

// TaskPage is the server's list envelope for GET /leads/:id/tasks. Unlike the
// notes and activities envelopes it carries only the total count.
type TaskPage struct {
	Tasks      []Task `json:"tasks"`
	TotalCount int    `json:"total_count"`
}
