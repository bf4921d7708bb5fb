// internal/app/auth_service.go
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"lead_crm_client/internal/domain/session"
	"lead_crm_client/internal/domain/user"

	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
)

// AuthService owns the session state machine: anonymous -> authenticated on
// a successful login, authenticated -> anonymous on explicit logout or any
// backend 401. There is no refresh-token flow; session length equals token
// validity. The role kept here gates UI only, the server enforces
// authorization on every call regardless.
type AuthService struct {
	api      session.AuthAPI
	store    session.Store
	validate *Validator
	logger   *logrus.Logger

	mu    sync.Mutex
	state session.State
}

func NewAuthService(api session.AuthAPI, store session.Store, validate *Validator, logger *logrus.Logger) *AuthService {
	s := &AuthService{
		api:      api,
		store:    store,
		validate: validate,
		logger:   logger,
		state:    session.StateAnonymous,
	}
	// A previously persisted token resumes the authenticated state; the
	// first 401 will tear it down if the token has expired meanwhile.
	if sess, err := store.Load(); err == nil && sess.Token != "" {
		s.state = session.StateAuthenticated
	}
	return s
}

// Login authenticates and persists the returned token and role.
func (s *AuthService) Login(ctx context.Context, email, password string) (*user.User, error) {
	creds := session.Credentials{Email: email, Password: password}
	if err := s.validate.Credentials(creds); err != nil {
		return nil, err
	}

	res, err := s.api.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	if res.AccessToken == "" {
		return nil, fmt.Errorf("login response carried no access token")
	}

	if err := s.store.Save(session.Session{Token: res.AccessToken, Role: res.User.Role}); err != nil {
		return nil, fmt.Errorf("error persisting session: %w", err)
	}

	s.mu.Lock()
	s.state = session.StateAuthenticated
	s.mu.Unlock()

	s.logTokenLifetime(res.AccessToken)
	s.logger.Infof("Logged in as %s (role %s)", res.User.Name, res.User.Role)
	return &res.User, nil
}

// Logout clears the persisted session and returns to anonymous.
func (s *AuthService) Logout() error {
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("error clearing session: %w", err)
	}
	s.mu.Lock()
	s.state = session.StateAnonymous
	s.mu.Unlock()
	s.logger.Info("Logged out, session cleared")
	return nil
}

// HandleUnauthorized is wired as the HTTP client's OnUnauthorized hook. The
// client has already cleared the store by the time this runs; only the state
// transition remains.
func (s *AuthService) HandleUnauthorized() {
	s.mu.Lock()
	changed := s.state != session.StateAnonymous
	s.state = session.StateAnonymous
	s.mu.Unlock()
	if changed {
		s.logger.Warn("Session invalidated by the server, returning to login")
	}
}

// State returns the current session state.
func (s *AuthService) State() session.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Role returns the persisted role string, RoleViewer when none is stored.
// Advisory only.
func (s *AuthService) Role() user.Role {
	sess, err := s.store.Load()
	if err != nil || sess.Role == "" {
		return user.RoleViewer
	}
	return sess.Role
}

// logTokenLifetime decodes the token's expiry without verifying the
// signature. Verification is the server's job; the expiry is logged purely
// so operators can see the session length.
func (s *AuthService) logTokenLifetime(token string) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		s.logger.Debugf("Access token is not a decodable JWT: %v", err)
		return
	}
	if claims.ExpiresAt == nil {
		return
	}
	s.logger.Infof("Session valid until %s (%s from now)",
		claims.ExpiresAt.Format(time.RFC3339), time.Until(claims.ExpiresAt.Time).Round(time.Second))
}
