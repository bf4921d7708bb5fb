// internal/app/lead_service.go
package app

import (
	"context"

	"lead_crm_client/internal/domain/lead"

	"github.com/sirupsen/logrus"
)

// LeadService coordinates the lead accessors with the query cache: reads go
// through the cache, writes run the validation gate first and invalidate the
// affected cache entries only after the server confirms success. A failed
// mutation performs no invalidation, so previously cached data stays intact.
type LeadService struct {
	leads      lead.API
	notes      lead.NoteAPI
	activities lead.ActivityAPI
	tasks      lead.TaskAPI
	cache      *QueryCache
	validate   *Validator
	logger     *logrus.Logger
}

func NewLeadService(
	leads lead.API,
	notes lead.NoteAPI,
	activities lead.ActivityAPI,
	tasks lead.TaskAPI,
	cache *QueryCache,
	validate *Validator,
	logger *logrus.Logger,
) *LeadService {
	return &LeadService{
		leads:      leads,
		notes:      notes,
		activities: activities,
		tasks:      tasks,
		cache:      cache,
		validate:   validate,
		logger:     logger,
	}
}

// Cache key resources. Lead mutations invalidate every "leads" list variant
// plus the single-record key; note/activity/task mutations invalidate only
// the owning lead's collection.
const (
	resourceLeads      = "leads"
	resourceLead       = "lead"
	resourceNotes      = "notes"
	resourceActivities = "leadActivities"
	resourceTasks      = "leadTasks"
)

func listKey(f lead.Filter) Key     { return NewKey(resourceLeads, f.Values().Encode()) }
func detailKey(id string) Key       { return NewKey(resourceLead, id) }
func notesKey(leadID string) Key    { return NewKey(resourceNotes, leadID) }
func activityKey(leadID string) Key { return NewKey(resourceActivities, leadID) }
func tasksKey(leadID string) Key    { return NewKey(resourceTasks, leadID) }

// List returns the leads page for the filter, served from cache when fresh.
func (s *LeadService) List(ctx context.Context, f lead.Filter) (*lead.Page, error) {
	v, err := s.cache.Fetch(ctx, listKey(f), func(ctx context.Context) (interface{}, error) {
		return s.leads.List(ctx, f)
	})
	if err != nil {
		return nil, err
	}
	return v.(*lead.Page), nil
}

// LastListed returns the most recently loaded page for the filter, stale or
// not, so a view can keep showing it while a refetch is in flight.
func (s *LeadService) LastListed(f lead.Filter) (*lead.Page, bool) {
	v, ok := s.cache.Peek(listKey(f))
	if !ok {
		return nil, false
	}
	return v.(*lead.Page), true
}

// Get returns one lead, cached under its record key.
func (s *LeadService) Get(ctx context.Context, id string) (*lead.Lead, error) {
	v, err := s.cache.Fetch(ctx, detailKey(id), func(ctx context.Context) (interface{}, error) {
		return s.leads.Get(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return v.(*lead.Lead), nil
}

// Create validates and normalizes the draft, submits it, and invalidates the
// lead lists on success.
func (s *LeadService) Create(ctx context.Context, d lead.Draft) (*lead.Lead, error) {
	if err := s.validate.LeadDraft(&d); err != nil {
		return nil, err
	}
	created, err := s.leads.Create(ctx, d)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(resourceLeads)
	s.logger.Infof("Lead %s created, lead lists invalidated", created.ID)
	return created, nil
}

// Update validates the patch, applies it, and invalidates the lead lists and
// the record key on success.
func (s *LeadService) Update(ctx context.Context, id string, p lead.Patch) (*lead.Lead, error) {
	if err := s.validate.LeadPatch(&p); err != nil {
		return nil, err
	}
	updated, err := s.leads.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(resourceLeads)
	s.cache.InvalidateKey(detailKey(id))
	s.logger.Infof("Lead %s updated, lead caches invalidated", id)
	return updated, nil
}

// SetStatus is the status-only update used by quick actions on list rows.
func (s *LeadService) SetStatus(ctx context.Context, id, status string) (*lead.Lead, error) {
	return s.Update(ctx, id, lead.Patch{Status: &status})
}

// Delete removes a lead after the confirm callback approves it. A nil
// confirm deletes unconditionally. Deletion invalidates the lead lists and
// the record key, so a subsequent detail read refetches and surfaces the
// server's 404 instead of stale cached data.
func (s *LeadService) Delete(ctx context.Context, id string, confirm func() bool) error {
	if confirm != nil && !confirm() {
		s.logger.Debugf("Deletion of lead %s cancelled by user", id)
		return nil
	}
	if err := s.leads.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(resourceLeads)
	s.cache.InvalidateKey(detailKey(id))
	s.logger.Infof("Lead %s deleted, lead caches invalidated", id)
	return nil
}

// Notes returns a lead's notes, cached per owning lead.
func (s *LeadService) Notes(ctx context.Context, leadID string) (*lead.NotePage, error) {
	v, err := s.cache.Fetch(ctx, notesKey(leadID), func(ctx context.Context) (interface{}, error) {
		return s.notes.List(ctx, leadID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*lead.NotePage), nil
}

// AddNote validates and creates a note, invalidating only the owning lead's
// note collection.
func (s *LeadService) AddNote(ctx context.Context, leadID string, d lead.NoteDraft) (*lead.Note, error) {
	if err := s.validate.NoteDraft(&d); err != nil {
		return nil, err
	}
	n, err := s.notes.Create(ctx, leadID, d)
	if err != nil {
		return nil, err
	}
	s.cache.InvalidateKey(notesKey(leadID))
	return n, nil
}

// EditNote validates and updates a note body.
func (s *LeadService) EditNote(ctx context.Context, leadID, noteID string, d lead.NoteDraft) (*lead.Note, error) {
	if err := s.validate.NoteDraft(&d); err != nil {
		return nil, err
	}
	n, err := s.notes.Update(ctx, leadID, noteID, d)
	if err != nil {
		return nil, err
	}
	s.cache.InvalidateKey(notesKey(leadID))
	return n, nil
}

// RemoveNote deletes a note.
func (s *LeadService) RemoveNote(ctx context.Context, leadID, noteID string) error {
	if err := s.notes.Delete(ctx, leadID, noteID); err != nil {
		return err
	}
	s.cache.InvalidateKey(notesKey(leadID))
	return nil
}

// Activities returns a lead's activity log, cached per owning lead.
func (s *LeadService) Activities(ctx context.Context, leadID string) (*lead.ActivityPage, error) {
	v, err := s.cache.Fetch(ctx, activityKey(leadID), func(ctx context.Context) (interface{}, error) {
		return s.activities.List(ctx, leadID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*lead.ActivityPage), nil
}

// LogActivity validates and records a new activity.
func (s *LeadService) LogActivity(ctx context.Context, leadID string, d lead.ActivityDraft) (*lead.Activity, error) {
	if err := s.validate.ActivityDraft(&d); err != nil {
		return nil, err
	}
	a, err := s.activities.Create(ctx, leadID, d)
	if err != nil {
		return nil, err
	}
	s.cache.InvalidateKey(activityKey(leadID))
	return a, nil
}

// EditActivity updates an activity summary.
func (s *LeadService) EditActivity(ctx context.Context, leadID, activityID string, u lead.ActivityUpdate) (*lead.Activity, error) {
	if err := s.validate.ActivityUpdate(&u); err != nil {
		return nil, err
	}
	a, err := s.activities.Update(ctx, leadID, activityID, u)
	if err != nil {
		return nil, err
	}
	s.cache.InvalidateKey(activityKey(leadID))
	return a, nil
}

// RemoveActivity deletes an activity.
func (s *LeadService) RemoveActivity(ctx context.Context, leadID, activityID string) error {
	if err := s.activities.Delete(ctx, leadID, activityID); err != nil {
		return err
	}
	s.cache.InvalidateKey(activityKey(leadID))
	return nil
}

// Tasks returns a lead's tasks, cached per owning lead.
func (s *LeadService) Tasks(ctx context.Context, leadID string) (*lead.TaskPage, error) {
	v, err := s.cache.Fetch(ctx, tasksKey(leadID), func(ctx context.Context) (interface{}, error) {
		return s.tasks.List(ctx, leadID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*lead.TaskPage), nil
}

// AddTask validates and creates a task.
func (s *LeadService) AddTask(ctx context.Context, leadID string, d lead.TaskDraft) (*lead.Task, error) {
	if err := s.validate.TaskDraft(&d); err != nil {
		return nil, err
	}
	t, err := s.tasks.Create(ctx, leadID, d)
	if err != nil {
		return nil, err
	}
	s.cache.InvalidateKey(tasksKey(leadID))
	return t, nil
}

// EditTask validates and applies a partial task update.
func (s *LeadService) EditTask(ctx context.Context, leadID, taskID string, p lead.TaskPatch) (*lead.Task, error) {
	if err := s.validate.TaskPatch(&p); err != nil {
		return nil, err
	}
	t, err := s.tasks.Update(ctx, leadID, taskID, p)
	if err != nil {
		return nil, err
	}
	s.cache.InvalidateKey(tasksKey(leadID))
	return t, nil
}

// RemoveTask deletes a task.
func (s *LeadService) RemoveTask(ctx context.Context, leadID, taskID string) error {
	if err := s.tasks.Delete(ctx, leadID, taskID); err != nil {
		return err
	}
	s.cache.InvalidateKey(tasksKey(leadID))
	return nil
}
