// internal/domain/lead/api.go
package lead

import "context"

// API defines the remote operations on the leads resource. The concrete
// implementation lives in infra; app services depend only on this interface.
type API interface {
	List(ctx context.Context, f Filter) (*Page, error)
	Get(ctx context.Context, id string) (*Lead, error)
	Create(ctx context.Context, d Draft) (*Lead, error)
	Update(ctx context.Context, id string, p Patch) (*Lead, error)
	Delete(ctx context.Context, id string) error
}

// NoteAPI defines the remote operations on a lead's notes.
type NoteAPI interface {
	List(ctx context.Context, leadID string) (*NotePage, error)
	Get(ctx context.Context, leadID, noteID string) (*Note, error)
	Create(ctx context.Context, leadID string, d NoteDraft) (*Note, error)
	Update(ctx context.Context, leadID, noteID string, d NoteDraft) (*Note, error)
	Delete(ctx context.Context, leadID, noteID string) error
}

// ActivityAPI defines the remote operations on a lead's activity log.
type ActivityAPI interface {
	List(ctx context.Context, leadID string) (*ActivityPage, error)
	Get(ctx context.Context, leadID, activityID string) (*Activity, error)
	Create(ctx context.Context, leadID string, d ActivityDraft) (*Activity, error)
	Update(ctx context.Context, leadID, activityID string, u ActivityUpdate) (*Activity, error)
	Delete(ctx context.Context, leadID, activityID string) error
}

// TaskAPI defines the remote operations on a lead's tasks.
type TaskAPI interface {
	List(ctx context.Context, leadID string) (*TaskPage, error)
	Get(ctx context.Context, leadID, taskID string) (*Task, error)
	Create(ctx context.Context, leadID string, d TaskDraft) (*Task, error)
	Update(ctx context.Context, leadID, taskID string, p TaskPatch) (*Task, error)
	Delete(ctx context.Context, leadID, taskID string) error
}
