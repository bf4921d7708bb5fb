// internal/app/today_service.go
package app

import (
	"context"

	"lead_crm_client/internal/domain/today"

	"github.com/sirupsen/logrus"
)

const resourceToday = "todayTasks"

// TodayService serves the due-today aggregate: open/in-progress tasks plus
// derived follow-up calls. The assigned-to override is honored only for
// roles that may see other users' queues; for everyone else the server
// scopes the query to the caller's own identity.
type TodayService struct {
	api    today.API
	cache  *QueryCache
	auth   *AuthService
	logger *logrus.Logger
}

func NewTodayService(api today.API, cache *QueryCache, auth *AuthService, logger *logrus.Logger) *TodayService {
	return &TodayService{api: api, cache: cache, auth: auth, logger: logger}
}

func todayKey(q today.Query) Key {
	return NewKey(resourceToday, q.Values().Encode())
}

// Queue returns the today view for q, served from cache when fresh. An
// assigned-to override from a role without the permission is dropped, not
// rejected: the view simply falls back to the caller's own queue. This gate
// is UX only; the server checks the same permission authoritatively.
func (s *TodayService) Queue(ctx context.Context, q today.Query) (*today.View, error) {
	if q.AssignedTo != "" && !s.auth.Role().CanOverrideAssignee() {
		s.logger.Debugf("Role %s may not view other users' queues, dropping assigned_to override", s.auth.Role())
		q.AssignedTo = ""
	}

	v, err := s.cache.Fetch(ctx, todayKey(q), func(ctx context.Context) (interface{}, error) {
		return s.api.Get(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	return v.(*today.View), nil
}

// Refresh invalidates every cached today view and reloads q. The cron
// refresher calls this on its schedule so the queue never goes stale.
func (s *TodayService) Refresh(ctx context.Context, q today.Query) (*today.View, error) {
	s.cache.Invalidate(resourceToday)
	return s.Queue(ctx, q)
}
