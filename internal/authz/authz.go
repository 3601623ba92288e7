// Package authz decides, per navigation, whether the current session may
// enter a screen. Every route guard calls Decide rather than comparing
// roles inline.
package authz

import "workforce/internal/session"

type Decision int

const (
	Allow Decision = iota
	RedirectLogin
	RedirectHome
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case RedirectHome:
		return "redirect_home"
	default:
		return "unknown"
	}
}

// Rule is a screen's static access declaration. A nil RequiredRole means
// any authenticated role may enter.
type Rule struct {
	RequiredRole *session.Role
}

func AnyRole() Rule {
	return Rule{}
}

func RequireRole(role session.Role) Rule {
	return Rule{RequiredRole: &role}
}

// Decide is pure and synchronous; it is re-evaluated on every navigation
// since the session may have changed since the last one. Role matching is
// strict equality with no hierarchy: an admin is turned away from
// manager-only screens just like an employee.
func Decide(current session.Session, present bool, rule Rule) Decision {
	if !present {
		return RedirectLogin
	}
	if rule.RequiredRole == nil {
		return Allow
	}
	if current.Role == *rule.RequiredRole {
		return Allow
	}
	return RedirectHome
}
