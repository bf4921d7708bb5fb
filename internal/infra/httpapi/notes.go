package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"lead_crm_client/internal/domain/lead"

	"github.com/google/uuid"
)

// NoteAPI is the accessor for the /leads/:id/notes resource.
type NoteAPI struct {
	client *Client
}

func NewNoteAPI(c *Client) *NoteAPI {
	return &NoteAPI{client: c}
}

func (a *NoteAPI) List(ctx context.Context, leadID string) (*lead.NotePage, error) {
	if err := uuid.Validate(leadID); err != nil {
		return nil, fmt.Errorf("lead id %q: %w", leadID, ErrInvalidID)
	}
	page := &lead.NotePage{}
	if err := a.client.do(ctx, http.MethodGet, "/leads/"+leadID+"/notes", "notes", nil, nil, page); err != nil {
		return nil, fmt.Errorf("error listing notes for lead %s: %w", leadID, err)
	}
	return page, nil
}

func (a *NoteAPI) Get(ctx context.Context, leadID, noteID string) (*lead.Note, error) {
	if err := validateIDs(leadID, noteID); err != nil {
		return nil, err
	}
	n := &lead.Note{}
	if err := a.client.do(ctx, http.MethodGet, "/leads/"+leadID+"/notes/"+noteID, "notes", nil, nil, n); err != nil {
		return nil, fmt.Errorf("error getting note %s: %w", noteID, err)
	}
	return n, nil
}

func (a *NoteAPI) Create(ctx context.Context, leadID string, d lead.NoteDraft) (*lead.Note, error) {
	if err := uuid.Validate(leadID); err != nil {
		return nil, fmt.Errorf("lead id %q: %w", leadID, ErrInvalidID)
	}
	n := &lead.Note{}
	if err := a.client.do(ctx, http.MethodPost, "/leads/"+leadID+"/notes", "notes", nil, d, n); err != nil {
		return nil, fmt.Errorf("error creating note for lead %s: %w", leadID, err)
	}
	return n, nil
}

func (a *NoteAPI) Update(ctx context.Context, leadID, noteID string, d lead.NoteDraft) (*lead.Note, error) {
	if err := validateIDs(leadID, noteID); err != nil {
		return nil, err
	}
	n := &lead.Note{}
	if err := a.client.do(ctx, http.MethodPut, "/leads/"+leadID+"/notes/"+noteID, "notes", nil, d, n); err != nil {
		return nil, fmt.Errorf("error updating note %s: %w", noteID, err)
	}
	return n, nil
}

func (a *NoteAPI) Delete(ctx context.Context, leadID, noteID string) error {
	if err := validateIDs(leadID, noteID); err != nil {
		return err
	}
	if err := a.client.do(ctx, http.MethodDelete, "/leads/"+leadID+"/notes/"+noteID, "notes", nil, nil, nil); err != nil {
		return fmt.Errorf("error deleting note %s: %w", noteID, err)
	}
	return nil
}

// validateIDs checks every id is a well-formed UUID before a request is built.
func validateIDs(ids ...string) error {
	for _, id := range ids {
		if err := uuid.Validate(id); err != nil {
			return fmt.Errorf("id %q: %w", id, ErrInvalidID)
		}
	}
	return nil
}
