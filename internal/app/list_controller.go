// internal/app/list_controller.go
package app

import (
	"context"
	"sync"
	"time"

	"lead_crm_client/internal/domain/lead"
)

// ListLoader fetches one page of leads for an effective filter. In the
// application it is LeadService.List; tests inject their own.
type ListLoader func(ctx context.Context, f lead.Filter) (*lead.Page, error)

// ListController derives server query parameters from user-editable filter
// state. Changing any filter resets the offset to page one; free-text search
// is debounced so every keystroke does not trigger a network call. The last
// successfully loaded page stays visible across refetches: a failed or
// pending reload never blanks the view.
type ListController struct {
	mu       sync.Mutex
	ctx      context.Context
	filter   lead.Filter
	loader   ListLoader
	debounce time.Duration
	timer    *time.Timer
	pending  string // search text waiting for the debounce window to elapse

	current *lead.Page
	lastErr error
}

// NewListController creates a controller with the given page size. ctx is
// the owning view's lifetime: once it is cancelled, late debounce firings
// and reloads resolve harmlessly without touching the current page.
func NewListController(ctx context.Context, pageSize int, debounce time.Duration, loader ListLoader) *ListController {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &ListController{
		ctx:      ctx,
		filter:   lead.Filter{Limit: pageSize},
		loader:   loader,
		debounce: debounce,
	}
}

// Refresh reloads the current effective filter immediately.
func (c *ListController) Refresh() error {
	c.mu.Lock()
	f := c.filter
	c.mu.Unlock()
	return c.load(f)
}

// SetStatus changes the status filter and returns to page one.
func (c *ListController) SetStatus(status string) error {
	return c.apply(func(f *lead.Filter) { f.Status = status })
}

// SetCountry changes the destination-country filter and returns to page one.
func (c *ListController) SetCountry(country string) error {
	return c.apply(func(f *lead.Filter) { f.Country = country })
}

// SetAllocatedUser changes the allocated-user filter and returns to page one.
func (c *ListController) SetAllocatedUser(userID string) error {
	return c.apply(func(f *lead.Filter) { f.AllocatedUserID = userID })
}

// SetDateRange changes the inquiry-date range and returns to page one.
func (c *ListController) SetDateRange(from, to time.Time) error {
	return c.apply(func(f *lead.Filter) {
		f.From = &from
		f.To = &to
	})
}

// ClearDateRange removes both bounds from the effective query; no empty
// strings are ever sent for from/to.
func (c *ListController) ClearDateRange() error {
	return c.apply(func(f *lead.Filter) {
		f.From = nil
		f.To = nil
	})
}

// SetSearch updates the free-text search. The effective query only changes
// after the debounce window elapses with no further keystrokes; the reload
// then starts from page one.
func (c *ListController) SetSearch(q string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending = q
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, c.fireSearch)
}

// FlushSearch applies a pending debounced search immediately. Views call it
// on explicit submit (Enter key).
func (c *ListController) FlushSearch() error {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	q := c.pending
	c.mu.Unlock()
	return c.apply(func(f *lead.Filter) { f.Search = q })
}

func (c *ListController) fireSearch() {
	if c.ctx.Err() != nil {
		return // view has gone away; drop the late firing
	}
	c.mu.Lock()
	q := c.pending
	c.timer = nil
	unchanged := q == c.filter.Search
	c.mu.Unlock()
	if unchanged {
		// Typing and deleting back to the effective query changes nothing;
		// don't spend a network call on it.
		return
	}
	_ = c.apply(func(f *lead.Filter) { f.Search = q })
}

// SetPage moves to the 1-based page n under the current page size.
func (c *ListController) SetPage(n int) error {
	if n < 1 {
		n = 1
	}
	c.mu.Lock()
	c.filter.Offset = (n - 1) * c.filter.Limit
	f := c.filter
	c.mu.Unlock()
	return c.load(f)
}

// SetPageSize changes the page size, recomputing the offset so the user
// stays on the same page number where possible.
func (c *ListController) SetPageSize(size int) error {
	if size <= 0 {
		return nil
	}
	c.mu.Lock()
	page := c.filter.Offset/c.filter.Limit + 1
	c.filter.Limit = size
	c.filter.Offset = (page - 1) * size
	f := c.filter
	c.mu.Unlock()
	return c.load(f)
}

// Page returns the current 1-based page number.
func (c *ListController) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter.Offset/c.filter.Limit + 1
}

// Filter returns a snapshot of the effective filter.
func (c *ListController) Filter() lead.Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// Current returns the last successfully loaded page, which may belong to a
// previous filter while a reload is in flight or after a failed reload.
func (c *ListController) Current() (*lead.Page, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current, c.lastErr
}

// Stop cancels any pending debounce timer.
func (c *ListController) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// apply mutates the filter, resets to page one, and reloads. Every filter
// change starts the user back at the first page.
func (c *ListController) apply(mutate func(*lead.Filter)) error {
	c.mu.Lock()
	mutate(&c.filter)
	c.filter.Offset = 0
	f := c.filter
	c.mu.Unlock()
	return c.load(f)
}

// load fetches the page for f and replaces the visible page only on
// success. Errors are kept for the view but the previous page remains.
func (c *ListController) load(f lead.Filter) error {
	page, err := c.loader(c.ctx, f)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.lastErr = err
		return err
	}
	c.current = page
	c.lastErr = nil
	return nil
}
