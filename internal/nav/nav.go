// Package nav derives the visible navigation entries from the current
// session. Header and menu rendering consume the result as-is, so the
// order here is fixed and load-bearing.
package nav

import "workforce/internal/session"

type Entry struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

var baseEntries = []Entry{
	{Label: "Dashboard", Path: "/"},
	{Label: "Work Log", Path: "/work-log"},
	{Label: "Leave Requests", Path: "/leave-requests"},
	{Label: "Notifications", Path: "/notifications"},
	{Label: "Calendar", Path: "/calendar"},
}

var managerEntries = []Entry{
	{Label: "Team Review", Path: "/team-review"},
	{Label: "Leave Approvals", Path: "/leave-approvals"},
}

var adminEntries = []Entry{
	{Label: "Admin Panel", Path: "/admin-panel"},
	{Label: "Reporting", Path: "/reporting"},
	{Label: "Audit Trail", Path: "/audit-trail"},
	{Label: "Hierarchy", Path: "/hierarchy"},
	{Label: "Onboarding", Path: "/onboarding"},
}

var logoutEntry = Entry{Label: "Logout", Path: "/logout"}

// BuildMenu returns the ordered menu for the session, or nil when no
// session is present.
func BuildMenu(current session.Session, present bool) []Entry {
	if !present {
		return nil
	}

	menu := make([]Entry, 0, len(baseEntries)+len(adminEntries)+1)
	menu = append(menu, baseEntries...)
	switch current.Role {
	case session.RoleManager:
		menu = append(menu, managerEntries...)
	case session.RoleAdmin:
		menu = append(menu, adminEntries...)
	}
	return append(menu, logoutEntry)
}
