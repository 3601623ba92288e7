package session

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"workforce/internal/session/state"
)

// Subscriber is notified after every applied Set or Clear. The bool is
// false when the store became empty.
type Subscriber func(Session, bool)

// Store holds the current session and mirrors it to durable local state.
// Writes are last-write-wins; Clear bumps a generation counter so that a
// Set carrying a stale generation lands as a no-op. That is what lets a
// user-initiated logout beat a slow login response.
type Store struct {
	mu      sync.Mutex
	current Session
	present bool
	gen     uint64
	file    *state.File
	subs    []Subscriber
}

// NewStore returns a store backed by file. A nil file keeps the store
// memory-only, which the tests use.
func NewStore(file *state.File) *Store {
	return &Store{file: file}
}

// Current returns the session, if any. No side effects.
func (s *Store) Current() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.present
}

// Token returns the current bearer token, or "" when logged out. It is the
// token source for the backend client's request transport.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.present {
		return ""
	}
	return s.current.Token
}

// Generation returns the value a later SetAt must present to take effect.
// Callers capture it before starting an auth call.
func (s *Store) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// Set unconditionally replaces the current session.
func (s *Store) Set(sess Session) {
	s.SetAt(sess, s.Generation())
}

// SetAt replaces the current session only when gen still matches the
// store's generation. It reports whether the write was applied; a false
// return means a Clear landed after gen was captured.
func (s *Store) SetAt(sess Session, gen uint64) bool {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return false
	}
	s.current = sess
	s.present = true
	s.persistLocked()
	subs := append([]Subscriber(nil), s.subs...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(sess, true)
	}
	return true
}

// Clear empties the store, purges both durable entries and invalidates any
// in-flight Set. Calling it on an empty store is harmless.
func (s *Store) Clear() {
	s.mu.Lock()
	s.current = Session{}
	s.present = false
	s.gen++
	if s.file != nil {
		if err := s.file.Wipe(); err != nil {
			slog.Warn("session state wipe failed", "err", err)
		}
	}
	subs := append([]Subscriber(nil), s.subs...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(Session{}, false)
	}
}

// Subscribe registers fn for change notifications. Intended for wiring at
// startup; there is no unsubscribe.
func (s *Store) Subscribe(fn Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Rehydrate populates the store from durable state, trusting the stored
// identity as a cache of the last login. Absent, partial or corrupt state
// leaves the store empty and wipes whatever was there; startup must never
// fail on bad state.
func (s *Store) Rehydrate() {
	if s.file == nil {
		return
	}
	identity, token, err := s.file.Read()
	if errors.Is(err, state.ErrIncomplete) {
		// Fresh start or a half-written state dir; nothing to restore.
		s.discardState("", nil)
		return
	}
	if err != nil {
		s.discardState("session state unreadable", err)
		return
	}

	var sess Session
	if err := json.Unmarshal(identity, &sess); err != nil {
		s.discardState("session state corrupt", err)
		return
	}
	if !sess.Role.Valid() || sess.UserID == "" {
		s.discardState("session state invalid", nil)
		return
	}
	sess.Token = token

	s.mu.Lock()
	s.current = sess
	s.present = true
	s.mu.Unlock()
}

func (s *Store) discardState(msg string, err error) {
	if err != nil {
		slog.Warn(msg, "err", err)
	}
	if wipeErr := s.file.Wipe(); wipeErr != nil {
		slog.Warn("session state wipe failed", "err", wipeErr)
	}
}

func (s *Store) persistLocked() {
	if s.file == nil {
		return
	}
	identity, err := json.Marshal(s.current)
	if err != nil {
		slog.Warn("session state encode failed", "err", err)
		return
	}
	if err := s.file.Write(identity, s.current.Token); err != nil {
		slog.Warn("session state write failed", "err", err)
	}
}
