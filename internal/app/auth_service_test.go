package app

import (
	"context"
	"errors"
	"testing"

	"lead_crm_client/internal/domain/session"
	"lead_crm_client/internal/domain/user"
	"lead_crm_client/internal/infra/sessionstore"
)

type fakeAuthAPI struct {
	calls  int
	result *session.LoginResult
	err    error
}

func (f *fakeAuthAPI) Login(ctx context.Context, c session.Credentials) (*session.LoginResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func TestLoginPersistsTokenAndRole(t *testing.T) {
	store := sessionstore.NewMemoryStore()
	api := &fakeAuthAPI{result: &session.LoginResult{
		AccessToken: "tok-123",
		User:        user.User{ID: "u1", Name: "Amali", Role: user.RoleCoordinator},
	}}
	svc := NewAuthService(api, store, NewValidator(), newTestLogger())

	if got := svc.State(); got != session.StateAnonymous {
		t.Fatalf("initial state = %s, want anonymous", got)
	}

	u, err := svc.Login(context.Background(), "amali@example.lk", "secret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if u.Role != user.RoleCoordinator {
		t.Errorf("returned role = %s", u.Role)
	}
	if got := svc.State(); got != session.StateAuthenticated {
		t.Errorf("state after login = %s, want authenticated", got)
	}

	sess, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if sess.Token != "tok-123" || sess.Role != user.RoleCoordinator {
		t.Errorf("persisted session = %+v", sess)
	}
}

func TestLoginValidationBlocksNetworkCall(t *testing.T) {
	api := &fakeAuthAPI{}
	svc := NewAuthService(api, sessionstore.NewMemoryStore(), NewValidator(), newTestLogger())

	if _, err := svc.Login(context.Background(), "not-an-email", "pw"); err == nil {
		t.Fatal("Login accepted a malformed email")
	}
	if api.calls != 0 {
		t.Errorf("invalid credentials reached the network: %d calls", api.calls)
	}
}

func TestLoginFailureStaysAnonymous(t *testing.T) {
	api := &fakeAuthAPI{err: errors.New("invalid credentials")}
	store := sessionstore.NewMemoryStore()
	svc := NewAuthService(api, store, NewValidator(), newTestLogger())

	if _, err := svc.Login(context.Background(), "a@b.lk", "wrong"); err == nil {
		t.Fatal("Login succeeded against a rejecting server")
	}
	if got := svc.State(); got != session.StateAnonymous {
		t.Errorf("state after failed login = %s, want anonymous", got)
	}
	if sess, _ := store.Load(); sess.Token != "" {
		t.Errorf("failed login persisted a token: %q", sess.Token)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	store := sessionstore.NewMemoryStore()
	api := &fakeAuthAPI{result: &session.LoginResult{
		AccessToken: "tok-123",
		User:        user.User{Role: user.RoleAdmin},
	}}
	svc := NewAuthService(api, store, NewValidator(), newTestLogger())

	if _, err := svc.Login(context.Background(), "a@b.lk", "pw"); err != nil {
		t.Fatal(err)
	}
	if err := svc.Logout(); err != nil {
		t.Fatal(err)
	}
	if got := svc.State(); got != session.StateAnonymous {
		t.Errorf("state after logout = %s, want anonymous", got)
	}
	if sess, _ := store.Load(); sess.Token != "" {
		t.Errorf("logout left a token behind: %q", sess.Token)
	}
}

func TestUnauthorizedHookReturnsToAnonymous(t *testing.T) {
	store := sessionstore.NewMemoryStore()
	api := &fakeAuthAPI{result: &session.LoginResult{
		AccessToken: "tok-123",
		User:        user.User{Role: user.RoleAgent},
	}}
	svc := NewAuthService(api, store, NewValidator(), newTestLogger())

	if _, err := svc.Login(context.Background(), "a@b.lk", "pw"); err != nil {
		t.Fatal(err)
	}

	// The HTTP client clears the store before firing the hook.
	_ = store.Clear()
	svc.HandleUnauthorized()

	if got := svc.State(); got != session.StateAnonymous {
		t.Errorf("state after 401 = %s, want anonymous", got)
	}
}

func TestPersistedSessionResumesAuthenticated(t *testing.T) {
	store := sessionstore.NewMemoryStore()
	if err := store.Save(session.Session{Token: "old-token", Role: user.RoleAgent}); err != nil {
		t.Fatal(err)
	}
	svc := NewAuthService(&fakeAuthAPI{}, store, NewValidator(), newTestLogger())

	if got := svc.State(); got != session.StateAuthenticated {
		t.Errorf("state with a persisted token = %s, want authenticated", got)
	}
	if got := svc.Role(); got != user.RoleAgent {
		t.Errorf("role from persisted session = %s, want agent", got)
	}
}
