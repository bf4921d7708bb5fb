package lead

import (
	"net/url"
	"strconv"
	"time"
)

// Filter enumerates every recognized option of GET /leads. It is a closed
// struct on purpose: an option the server does not understand cannot be
// expressed, so it cannot be silently ignored.
type Filter struct {
	Status          string
	Country         string
	AllocatedUserID string
	Search          string
	From            *time.Time
	To              *time.Time
	Limit           int
	Offset          int
}

// Values encodes the filter as server query parameters. Zero-valued fields
// are omitted entirely; a cleared date range sends neither bound.
func (f Filter) Values() url.Values {
	v := url.Values{}
	if f.Status != "" {
		v.Set("status", f.Status)
	}
	if f.Country != "" {
		v.Set("country", f.Country)
	}
	if f.AllocatedUserID != "" {
		v.Set("allocated_to", f.AllocatedUserID)
	}
	if f.Search != "" {
		v.Set("q", f.Search)
	}
	if f.From != nil {
		v.Set("from", f.From.UTC().Format(time.RFC3339))
	}
	if f.To != nil {
		v.Set("to", f.To.UTC().Format(time.RFC3339))
	}
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		v.Set("offset", strconv.Itoa(f.Offset))
	}
	return v
}
