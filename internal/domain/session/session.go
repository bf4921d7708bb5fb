package session

import (
	"context"

	"lead_crm_client/internal/domain/user"
)

// State of the client session. There is no refresh-token flow: session
// length equals token validity.
type State string

const (
	StateAnonymous     State = "anonymous"
	StateAuthenticated State = "authenticated"
)

// Session is the persisted client state: bearer token plus the role string
// the server reported at login. The role is advisory, for UI gating only.
type Session struct {
	Token string
	Role  user.Role
}

// Store owns reads and writes of the persisted session. Exactly one store
// instance is constructed and injected; nothing else touches the persisted
// token directly.
type Store interface {
	Load() (Session, error)
	Save(Session) error
	// Clear removes the persisted session. Clearing an absent session is not
	// an error.
	Clear() error
}

// Credentials is the POST /auth/login request body.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is the POST /auth/login response body.
type LoginResult struct {
	AccessToken string    `json:"access_token"`
	User        user.User `json:"user"`
}

// AuthAPI defines the remote authentication operations.
type AuthAPI interface {
	Login(ctx context.Context, c Credentials) (*LoginResult, error)
}
