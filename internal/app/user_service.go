// internal/app/user_service.go
package app

import (
	"context"

	"lead_crm_client/internal/domain/user"

	"github.com/sirupsen/logrus"
)

const resourceUsers = "users"

// UserService serves the user directory (for allocated-user lookups) and the
// admin-only registration flow.
type UserService struct {
	api      user.API
	cache    *QueryCache
	validate *Validator
	logger   *logrus.Logger
}

func NewUserService(api user.API, cache *QueryCache, validate *Validator, logger *logrus.Logger) *UserService {
	return &UserService{api: api, cache: cache, validate: validate, logger: logger}
}

// List returns all users, cached. Leads and tasks reference users by id
// only, so one cached directory serves every lookup.
func (s *UserService) List(ctx context.Context) (*user.Page, error) {
	v, err := s.cache.Fetch(ctx, NewKey(resourceUsers), func(ctx context.Context) (interface{}, error) {
		return s.api.List(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*user.Page), nil
}

// Register validates and creates a user, invalidating the cached directory
// on success. A duplicate email surfaces as the accessor's conflict error.
func (s *UserService) Register(ctx context.Context, r user.Registration) (*user.User, error) {
	if err := s.validate.Registration(r); err != nil {
		return nil, err
	}
	created, err := s.api.Register(ctx, r)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(resourceUsers)
	s.logger.Infof("User %s registered with role %s", created.Name, created.Role)
	return created, nil
}
