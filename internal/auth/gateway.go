// Package auth performs the identity transitions against the backend and
// is the only writer to the session store.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"workforce/internal/backend"
	"workforce/internal/session"
)

// ErrAuthInFlight rejects a sign-in attempted while another is still
// running. The screen treats it as a no-op; nothing reached the store.
var ErrAuthInFlight = errors.New("authentication already in progress")

type Gateway struct {
	client   *backend.Client
	store    *session.Store
	inFlight atomic.Bool
}

func NewGateway(client *backend.Client, store *session.Store) *Gateway {
	return &Gateway{client: client, store: store}
}

// Login authenticates against the backend and, on success, installs the
// session. The store generation is captured before the request leaves so a
// logout completed mid-flight wins over the late response.
func (g *Gateway) Login(ctx context.Context, creds backend.Credentials) (session.Session, error) {
	if !g.inFlight.CompareAndSwap(false, true) {
		return session.Session{}, ErrAuthInFlight
	}
	defer g.inFlight.Store(false)

	gen := g.store.Generation()
	sess, err := g.client.Login(ctx, creds)
	if err != nil {
		return session.Session{}, err
	}
	if !g.store.SetAt(sess, gen) {
		slog.Info("login response discarded, session cleared while in flight", "email", creds.Email)
	}
	return sess, nil
}

// Register forwards the registration. It never touches the store: the new
// user signs in separately.
func (g *Gateway) Register(ctx context.Context, reg backend.Registration) error {
	return g.client.Register(ctx, reg)
}

// Logout clears the local session unconditionally; the backend call is
// best-effort and its failure is only logged. Logging out locally must
// not depend on the network.
func (g *Gateway) Logout(ctx context.Context) {
	defer g.store.Clear()
	if err := g.client.Logout(ctx); err != nil {
		slog.Warn("backend logout failed, clearing local session anyway", "err", err)
	}
}
