package user

import "context"

// Role gates menu visibility and route guards client-side. It is advisory
// only; the server enforces authorization on every call.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleCoordinator Role = "coordinator"
	RoleAgent       Role = "agent"
	RoleViewer      Role = "viewer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCoordinator, RoleAgent, RoleViewer:
		return true
	}
	return false
}

// CanOverrideAssignee reports whether the role may scope the today-task view
// to another user. UX gating only; the server independently checks this.
func (r Role) CanOverrideAssignee() bool {
	return r == RoleAdmin || r == RoleCoordinator
}

// User is referenced by leads and tasks by id only (weak reference).
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
	Active bool   `json:"active"`
}

// Page is the server's list envelope for GET /users.
type Page struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
}

// Registration is the admin-only payload for POST /auth/register.
type Registration struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone,omitempty"`
	Role     Role   `json:"role" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// API defines the remote operations on the users resource.
type API interface {
	List(ctx context.Context) (*Page, error)
	Register(ctx context.Context, r Registration) (*User, error)
}
