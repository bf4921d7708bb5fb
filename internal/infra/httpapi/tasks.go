package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"lead_crm_client/internal/domain/lead"

	"github.com/google/uuid"
)

// TaskAPI is the accessor for the /leads/:id/tasks resource.
type TaskAPI struct {
	client *Client
}

func NewTaskAPI(c *Client) *TaskAPI {
	return &TaskAPI{client: c}
}

func (a *TaskAPI) List(ctx context.Context, leadID string) (*lead.TaskPage, error) {
	if err := uuid.Validate(leadID); err != nil {
		return nil, fmt.Errorf("lead id %q: %w", leadID, ErrInvalidID)
	}
	page := &lead.TaskPage{}
	if err := a.client.do(ctx, http.MethodGet, "/leads/"+leadID+"/tasks", "leadTasks", nil, nil, page); err != nil {
		return nil, fmt.Errorf("error listing tasks for lead %s: %w", leadID, err)
	}
	return page, nil
}

func (a *TaskAPI) Get(ctx context.Context, leadID, taskID string) (*lead.Task, error) {
	if err := validateIDs(leadID, taskID); err != nil {
		return nil, err
	}
	t := &lead.Task{}
	if err := a.client.do(ctx, http.MethodGet, "/leads/"+leadID+"/tasks/"+taskID, "leadTasks", nil, nil, t); err != nil {
		return nil, fmt.Errorf("error getting task %s: %w", taskID, err)
	}
	return t, nil
}

func (a *TaskAPI) Create(ctx context.Context, leadID string, d lead.TaskDraft) (*lead.Task, error) {
	if err := uuid.Validate(leadID); err != nil {
		return nil, fmt.Errorf("lead id %q: %w", leadID, ErrInvalidID)
	}
	t := &lead.Task{}
	if err := a.client.do(ctx, http.MethodPost, "/leads/"+leadID+"/tasks", "leadTasks", nil, d, t); err != nil {
		return nil, fmt.Errorf("error creating task for lead %s: %w", leadID, err)
	}
	return t, nil
}

func (a *TaskAPI) Update(ctx context.Context, leadID, taskID string, p lead.TaskPatch) (*lead.Task, error) {
	if err := validateIDs(leadID, taskID); err != nil {
		return nil, err
	}
	t := &lead.Task{}
	if err := a.client.do(ctx, http.MethodPut, "/leads/"+leadID+"/tasks/"+taskID, "leadTasks", nil, p, t); err != nil {
		return nil, fmt.Errorf("error updating task %s: %w", taskID, err)
	}
	return t, nil
}

func (a *TaskAPI) Delete(ctx context.Context, leadID, taskID string) error {
	if err := validateIDs(leadID, taskID); err != nil {
		return err
	}
	if err := a.client.do(ctx, http.MethodDelete, "/leads/"+leadID+"/tasks/"+taskID, "leadTasks", nil, nil, nil); err != nil {
		return fmt.Errorf("error deleting task %s: %w", taskID, err)
	}
	return nil
}
