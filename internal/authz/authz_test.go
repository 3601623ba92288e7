package authz

import (
	"testing"

	"workforce/internal/session"
)

func TestDecideRedirectsToLoginWithoutSession(t *testing.T) {
	if got := Decide(session.Session{}, false, AnyRole()); got != RedirectLogin {
		t.Fatalf("expected redirect_login, got %s", got)
	}
	if got := Decide(session.Session{}, false, RequireRole(session.RoleAdmin)); got != RedirectLogin {
		t.Fatalf("expected redirect_login for role-gated screen, got %s", got)
	}
}

func TestDecideAllowsAnyRoleWhenAuthenticated(t *testing.T) {
	for _, role := range []session.Role{session.RoleEmployee, session.RoleManager, session.RoleAdmin} {
		got := Decide(session.Session{UserID: "u1", Role: role}, true, AnyRole())
		if got != Allow {
			t.Fatalf("role %s: expected allow, got %s", role, got)
		}
	}
}

func TestDecideMatchesRequiredRoleExactly(t *testing.T) {
	cases := []struct {
		name     string
		role     session.Role
		required session.Role
		want     Decision
	}{
		{"manager on manager screen", session.RoleManager, session.RoleManager, Allow},
		{"employee on manager screen", session.RoleEmployee, session.RoleManager, RedirectHome},
		{"admin on manager screen", session.RoleAdmin, session.RoleManager, RedirectHome},
		{"manager on admin screen", session.RoleManager, session.RoleAdmin, RedirectHome},
		{"admin on admin screen", session.RoleAdmin, session.RoleAdmin, Allow},
		{"employee on admin screen", session.RoleEmployee, session.RoleAdmin, RedirectHome},
	}
	for _, tc := range cases {
		got := Decide(session.Session{UserID: "u1", Role: tc.role}, true, RequireRole(tc.required))
		if got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestDecisionString(t *testing.T) {
	if Allow.String() != "allow" || RedirectLogin.String() != "redirect_login" || RedirectHome.String() != "redirect_home" {
		t.Fatalf("unexpected decision strings: %s %s %s", Allow, RedirectLogin, RedirectHome)
	}
	if Decision(99).String() != "unknown" {
		t.Fatalf("expected unknown for out-of-range decision")
	}
}
