package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"lead_crm_client/internal/domain/lead"

	"github.com/google/uuid"
)

// LeadAPI is the accessor for the /leads resource.
type LeadAPI struct {
	client *Client
}

func NewLeadAPI(c *Client) *LeadAPI {
	return &LeadAPI{client: c}
}

// List searches leads with the given filter. An empty result is a valid,
// non-error response.
func (a *LeadAPI) List(ctx context.Context, f lead.Filter) (*lead.Page, error) {
	page := &lead.Page{}
	if err := a.client.do(ctx, http.MethodGet, "/leads", "leads", f.Values(), nil, page); err != nil {
		return nil, fmt.Errorf("error listing leads: %w", err)
	}
	return page, nil
}

// Get fetches one lead. A missing record surfaces as ErrNotFound; the
// accessor never synthesizes defaults.
func (a *LeadAPI) Get(ctx context.Context, id string) (*lead.Lead, error) {
	if err := uuid.Validate(id); err != nil {
		return nil, fmt.Errorf("lead id %q: %w", id, ErrInvalidID)
	}
	l := &lead.Lead{}
	if err := a.client.do(ctx, http.MethodGet, "/leads/"+id, "leads", nil, nil, l); err != nil {
		return nil, fmt.Errorf("error getting lead %s: %w", id, err)
	}
	return l, nil
}

// Create submits a new lead and returns it with the server-assigned id.
// Validation and normalization of the draft is the caller's responsibility
// (see the app.Validator pre-write gate).
func (a *LeadAPI) Create(ctx context.Context, d lead.Draft) (*lead.Lead, error) {
	l := &lead.Lead{}
	if err := a.client.do(ctx, http.MethodPost, "/leads", "leads", nil, d, l); err != nil {
		return nil, fmt.Errorf("error creating lead: %w", err)
	}
	return l, nil
}

// Update applies a partial update: only fields present in the patch change
// server-side.
func (a *LeadAPI) Update(ctx context.Context, id string, p lead.Patch) (*lead.Lead, error) {
	if err := uuid.Validate(id); err != nil {
		return nil, fmt.Errorf("lead id %q: %w", id, ErrInvalidID)
	}
	l := &lead.Lead{}
	if err := a.client.do(ctx, http.MethodPut, "/leads/"+id, "leads", nil, p, l); err != nil {
		return nil, fmt.Errorf("error updating lead %s: %w", id, err)
	}
	return l, nil
}

// Delete removes a lead. Deleting an already-deleted id is an error
// (ErrNotFound), not silently ignored.
func (a *LeadAPI) Delete(ctx context.Context, id string) error {
	if err := uuid.Validate(id); err != nil {
		return fmt.Errorf("lead id %q: %w", id, ErrInvalidID)
	}
	if err := a.client.do(ctx, http.MethodDelete, "/leads/"+id, "leads", nil, nil, nil); err != nil {
		return fmt.Errorf("error deleting lead %s: %w", id, err)
	}
	return nil
}
