package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"lead_crm_client/internal/domain/lead"

	"github.com/google/uuid"
)

// ActivityAPI is the accessor for the /leads/:id/activities resource.
type ActivityAPI struct {
	client *Client
}

func NewActivityAPI(c *Client) *ActivityAPI {
	return &ActivityAPI{client: c}
}

func (a *ActivityAPI) List(ctx context.Context, leadID string) (*lead.ActivityPage, error) {
	if err := uuid.Validate(leadID); err != nil {
		return nil, fmt.Errorf("lead id %q: %w", leadID, ErrInvalidID)
	}
	page := &lead.ActivityPage{}
	if err := a.client.do(ctx, http.MethodGet, "/leads/"+leadID+"/activities", "leadActivities", nil, nil, page); err != nil {
		return nil, fmt.Errorf("error listing activities for lead %s: %w", leadID, err)
	}
	return page, nil
}

func (a *ActivityAPI) Get(ctx context.Context, leadID, activityID string) (*lead.Activity, error) {
	if err := validateIDs(leadID, activityID); err != nil {
		return nil, err
	}
	act := &lead.Activity{}
	if err := a.client.do(ctx, http.MethodGet, "/leads/"+leadID+"/activities/"+activityID, "leadActivities", nil, nil, act); err != nil {
		return nil, fmt.Errorf("error getting activity %s: %w", activityID, err)
	}
	return act, nil
}

func (a *ActivityAPI) Create(ctx context.Context, leadID string, d lead.ActivityDraft) (*lead.Activity, error) {
	if err := uuid.Validate(leadID); err != nil {
		return nil, fmt.Errorf("lead id %q: %w", leadID, ErrInvalidID)
	}
	act := &lead.Activity{}
	if err := a.client.do(ctx, http.MethodPost, "/leads/"+leadID+"/activities", "leadActivities", nil, d, act); err != nil {
		return nil, fmt.Errorf("error creating activity for lead %s: %w", leadID, err)
	}
	return act, nil
}

// Update edits the summary. Kind is immutable after creation, so the update
// payload carries no kind field at all.
func (a *ActivityAPI) Update(ctx context.Context, leadID, activityID string, u lead.ActivityUpdate) (*lead.Activity, error) {
	if err := validateIDs(leadID, activityID); err != nil {
		return nil, err
	}
	act := &lead.Activity{}
	if err := a.client.do(ctx, http.MethodPut, "/leads/"+leadID+"/activities/"+activityID, "leadActivities", nil, u, act); err != nil {
		return nil, fmt.Errorf("error updating activity %s: %w", activityID, err)
	}
	return act, nil
}

func (a *ActivityAPI) Delete(ctx context.Context, leadID, activityID string) error {
	if err := validateIDs(leadID, activityID); err != nil {
		return err
	}
	if err := a.client.do(ctx, http.MethodDelete, "/leads/"+leadID+"/activities/"+activityID, "leadActivities", nil, nil, nil); err != nil {
		return fmt.Errorf("error deleting activity %s: %w", activityID, err)
	}
	return nil
}
