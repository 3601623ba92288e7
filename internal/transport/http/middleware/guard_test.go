package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"workforce/internal/authz"
	"workforce/internal/session"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestGuardRedirectsToLoginWithoutSession(t *testing.T) {
	store := session.NewStore(nil)
	guarded := Guard(store, authz.AnyRole())(okHandler())

	rec := httptest.NewRecorder()
	guarded.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/screens/dashboard", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
}

func TestGuardRedirectsHomeOnRoleMismatch(t *testing.T) {
	store := session.NewStore(nil)
	store.Set(session.Session{UserID: "u1", Role: session.RoleEmployee, Token: "tok"})
	guarded := Guard(store, authz.RequireRole(session.RoleManager))(okHandler())

	rec := httptest.NewRecorder()
	guarded.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/screens/team-review", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect home, got %q", loc)
	}
}

func TestGuardAllowsMatchingRole(t *testing.T) {
	store := session.NewStore(nil)
	store.Set(session.Session{UserID: "u1", Role: session.RoleManager, Token: "tok"})
	guarded := Guard(store, authz.RequireRole(session.RoleManager))(okHandler())

	rec := httptest.NewRecorder()
	guarded.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/screens/team-review", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected pass-through, got %d", rec.Code)
	}
}

func TestGuardReEvaluatesPerRequest(t *testing.T) {
	store := session.NewStore(nil)
	store.Set(session.Session{UserID: "u1", Role: session.RoleEmployee, Token: "tok"})
	guarded := Guard(store, authz.AnyRole())(okHandler())

	rec := httptest.NewRecorder()
	guarded.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/screens/work-log", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected pass-through while signed in, got %d", rec.Code)
	}

	store.Clear()

	rec = httptest.NewRecorder()
	guarded.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/screens/work-log", nil))
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Fatalf("expected login redirect after clear, got %d -> %q", rec.Code, rec.Header().Get("Location"))
	}
}
