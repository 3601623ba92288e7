package middleware

import (
	"net/http"

	"workforce/internal/authz"
	"workforce/internal/session"
)

const (
	loginPath = "/login"
	homePath  = "/"
)

// Guard enforces a screen's access rule against the live session store on
// every request, so a logout elsewhere takes effect on the next
// navigation. Decisions are never cached.
func Guard(store *session.Store, rule authz.Rule) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			current, present := store.Current()
			switch authz.Decide(current, present, rule) {
			case authz.Allow:
				next.ServeHTTP(w, r)
			case authz.RedirectLogin:
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
			case authz.RedirectHome:
				http.Redirect(w, r, homePath, http.StatusSeeOther)
			}
		})
	}
}
