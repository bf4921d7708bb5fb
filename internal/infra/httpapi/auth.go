package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"lead_crm_client/internal/domain/session"
)

// AuthAPI is the accessor for /auth/login. Persisting the returned token is
// the auth service's job, not the accessor's.
type AuthAPI struct {
	client *Client
}

func NewAuthAPI(c *Client) *AuthAPI {
	return &AuthAPI{client: c}
}

func (a *AuthAPI) Login(ctx context.Context, c session.Credentials) (*session.LoginResult, error) {
	res := &session.LoginResult{}
	if err := a.client.do(ctx, http.MethodPost, "/auth/login", "auth", nil, c, res); err != nil {
		return nil, fmt.Errorf("error logging in: %w", err)
	}
	return res, nil
}
