package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"lead_crm_client/internal/domain/user"
)

// UserAPI is the accessor for the /users resource and admin-only registration.
type UserAPI struct {
	client *Client
}

func NewUserAPI(c *Client) *UserAPI {
	return &UserAPI{client: c}
}

func (a *UserAPI) List(ctx context.Context) (*user.Page, error) {
	page := &user.Page{}
	if err := a.client.do(ctx, http.MethodGet, "/users", "users", nil, nil, page); err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return page, nil
}

// Register creates a user. Admin-only server-side; a duplicate email surfaces
// as ErrConflict.
func (a *UserAPI) Register(ctx context.Context, r user.Registration) (*user.User, error) {
	if !r.Role.Valid() {
		return nil, fmt.Errorf("unknown role %q", r.Role)
	}
	u := &user.User{}
	if err := a.client.do(ctx, http.MethodPost, "/auth/register", "users", nil, r, u); err != nil {
		return nil, fmt.Errorf("error registering user: %w", err)
	}
	return u, nil
}
