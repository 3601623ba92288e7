package session

import (
	"fmt"
	"strings"
)

// Role is the flat access role assigned by the backend. There is no
// hierarchy: an admin does not implicitly hold manager access.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

func ParseRole(value string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(value))) {
	case RoleEmployee:
		return RoleEmployee, nil
	case RoleManager:
		return RoleManager, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role %q", value)
	}
}

func (r Role) Valid() bool {
	return r == RoleEmployee || r == RoleManager || r == RoleAdmin
}

// Session is the authenticated identity for the lifetime of the app
// process. The backend remains the authority: a stale rehydrated session
// is rejected on its first backend call and cleared via the 401 hook.
type Session struct {
	UserID         string `json:"userId"`
	DisplayName    string `json:"name"`
	Email          string `json:"email"`
	Role           Role   `json:"role"`
	EmployeeNumber string `json:"employeeNumber,omitempty"`
	Department     string `json:"department,omitempty"`
	Designation    string `json:"designation,omitempty"`

	// Token is the opaque bearer credential. It is persisted as its own
	// state entry, never inside the identity document.
	Token string `json:"-"`
}
