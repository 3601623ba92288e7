package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"workforce/internal/platform/config"
)

// fakeBackend is a stand-in employee management API. It mints real signed
// tokens so the bearer plumbing is exercised end to end, and can revoke
// them mid-test to simulate server-side session expiry.
type fakeBackend struct {
	t      *testing.T
	secret []byte

	mu      sync.Mutex
	revoked bool
	logouts int
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	fb := &fakeBackend{t: t, secret: []byte("fake-backend-secret")}
	srv := httptest.NewServer(fb)
	t.Cleanup(srv.Close)
	return fb, srv
}

func (fb *fakeBackend) revokeTokens() {
	fb.mu.Lock()
	fb.revoked = true
	fb.mu.Unlock()
}

func (fb *fakeBackend) logoutCalls() int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.logouts
}

func (fb *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/auth/login":
		fb.handleLogin(w, r)
	case "/auth/logout":
		fb.mu.Lock()
		fb.logouts++
		fb.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	case "/dashboard/stats":
		fb.requireToken(w, r, map[string]any{"workLogs": 12, "pendingLeave": 1})
	case "/dashboard/system-stats":
		fb.requireToken(w, r, map[string]any{"employees": 40, "activeToday": 31})
	case "/notifications":
		fb.requireToken(w, r, []any{})
	default:
		http.Error(w, `{"detail":"not found"}`, http.StatusNotFound)
	}
}

func (fb *fakeBackend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, `{"detail":"bad payload"}`, http.StatusBadRequest)
		return
	}
	if creds.Email != "ada@company.com" || creds.Password != "admin123" {
		http.Error(w, `{"detail":"Invalid credentials"}`, http.StatusUnauthorized)
		return
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "u-1",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString(fb.secret)
	if err != nil {
		fb.t.Errorf("sign token: %v", err)
		http.Error(w, `{"detail":"internal"}`, http.StatusInternalServerError)
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{
		"token": token,
		"user": map[string]any{
			"id":    "u-1",
			"name":  "Ada Admin",
			"email": "ada@company.com",
			"role":  "admin",
		},
	})
}

func (fb *fakeBackend) requireToken(w http.ResponseWriter, r *http.Request, payload any) {
	raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if raw == "" || raw == r.Header.Get("Authorization") {
		http.Error(w, `{"detail":"missing token"}`, http.StatusUnauthorized)
		return
	}
	parsed, err := jwt.Parse(raw, func(*jwt.Token) (any, error) { return fb.secret, nil })
	if err != nil || !parsed.Valid {
		http.Error(w, `{"detail":"invalid token"}`, http.StatusUnauthorized)
		return
	}

	fb.mu.Lock()
	revoked := fb.revoked
	fb.mu.Unlock()
	if revoked {
		http.Error(w, `{"detail":"token expired"}`, http.StatusUnauthorized)
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func newTestApp(t *testing.T, backendURL string) (*App, *httptest.Server) {
	t.Helper()
	cfg := config.Config{
		Addr:               ":0",
		BackendBaseURL:     backendURL,
		BackendTimeout:     5 * time.Second,
		FrontendDir:        t.TempDir(),
		StateDir:           t.TempDir(),
		Environment:        "development",
		MaxBodyBytes:       1 << 20,
		RateLimitPerMinute: 1000,
	}
	app, err := New(cfg)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	srv := httptest.NewServer(app.Router)
	t.Cleanup(srv.Close)
	return app, srv
}

// noRedirectClient surfaces 303s instead of following them, the way the
// tests need to observe guard decisions.
func noRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func postJSON(t *testing.T, client *http.Client, url, body string) *http.Response {
	t.Helper()
	resp, err := client.Post(url, "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var envelope map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return envelope
}

func TestAdminJourney(t *testing.T) {
	fb, backendSrv := newFakeBackend(t)
	app, gatewaySrv := newTestApp(t, backendSrv.URL)
	client := noRedirectClient()

	// Unauthenticated navigation lands on the login redirect.
	resp, err := client.Get(gatewaySrv.URL + "/api/v1/screens/dashboard")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/login" {
		t.Fatalf("expected login redirect, got %d -> %q", resp.StatusCode, resp.Header.Get("Location"))
	}

	// Wrong password: 401 from the auth endpoint, no session.
	resp = postJSON(t, client, gatewaySrv.URL+"/api/v1/auth/login", `{"email":"ada@company.com","password":"wrong"}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad credentials, got %d", resp.StatusCode)
	}
	envelope := decodeEnvelope(t, resp)
	if errObj, _ := envelope["error"].(map[string]any); errObj["code"] != "invalid_credentials" {
		t.Fatalf("unexpected error payload: %v", envelope)
	}
	if _, present := app.Store.Current(); present {
		t.Fatal("failed login must not create a session")
	}

	// Successful login returns the identity and the admin menu.
	resp = postJSON(t, client, gatewaySrv.URL+"/api/v1/auth/login", `{"email":"ada@company.com","password":"admin123"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed with %d", resp.StatusCode)
	}
	envelope = decodeEnvelope(t, resp)
	data, _ := envelope["data"].(map[string]any)
	if data["authenticated"] != true {
		t.Fatalf("expected authenticated payload: %v", envelope)
	}
	menu, _ := data["menu"].([]any)
	var labels []string
	for _, entry := range menu {
		m, _ := entry.(map[string]any)
		labels = append(labels, m["label"].(string))
	}
	if len(labels) == 0 || labels[len(labels)-1] != "Logout" {
		t.Fatalf("expected trailing logout entry, got %v", labels)
	}
	foundAdmin := false
	for _, label := range labels {
		if label == "Admin Panel" {
			foundAdmin = true
		}
	}
	if !foundAdmin {
		t.Fatalf("expected admin menu, got %v", labels)
	}

	// The dashboard now proxies through with the bearer token attached.
	resp, err = client.Get(gatewaySrv.URL + "/api/v1/screens/dashboard")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected dashboard to load, got %d", resp.StatusCode)
	}
	envelope = decodeEnvelope(t, resp)
	data, _ = envelope["data"].(map[string]any)
	if data["stats"] == nil || data["systemStats"] == nil {
		t.Fatalf("expected admin dashboard payload, got %v", data)
	}

	// The backend revokes the token: the next screen call reports the
	// expired session and clears the store, and the navigation after that
	// redirects to login.
	fb.revokeTokens()

	resp, err = client.Get(gatewaySrv.URL + "/api/v1/screens/notifications")
	if err != nil {
		t.Fatalf("notifications: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected session_expired, got %d", resp.StatusCode)
	}
	envelope = decodeEnvelope(t, resp)
	if errObj, _ := envelope["error"].(map[string]any); errObj["code"] != "session_expired" {
		t.Fatalf("unexpected error payload: %v", envelope)
	}
	if _, present := app.Store.Current(); present {
		t.Fatal("token rejection must clear the session store")
	}

	resp, err = client.Get(gatewaySrv.URL + "/api/v1/screens/dashboard")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/login" {
		t.Fatalf("expected login redirect after expiry, got %d", resp.StatusCode)
	}
}

func TestSessionSurvivesRestart(t *testing.T) {
	_, backendSrv := newFakeBackend(t)
	stateDir := t.TempDir()

	cfg := config.Config{
		BackendBaseURL:     backendSrv.URL,
		BackendTimeout:     5 * time.Second,
		FrontendDir:        t.TempDir(),
		StateDir:           stateDir,
		Environment:        "development",
		MaxBodyBytes:       1 << 20,
		RateLimitPerMinute: 1000,
	}

	first, err := New(cfg)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	srv := httptest.NewServer(first.Router)
	resp := postJSON(t, noRedirectClient(), srv.URL+"/api/v1/auth/login", `{"email":"ada@company.com","password":"admin123"}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed with %d", resp.StatusCode)
	}
	srv.Close()

	// Same state dir, fresh process.
	second, err := New(cfg)
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	current, present := second.Store.Current()
	if !present || current.Email != "ada@company.com" {
		t.Fatalf("expected rehydrated session, got %+v present=%v", current, present)
	}

	restarted := httptest.NewServer(second.Router)
	defer restarted.Close()
	resp, err = noRedirectClient().Get(restarted.URL + "/api/v1/screens/dashboard")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("rehydrated session must reach the dashboard, got %d", resp.StatusCode)
	}
}

func TestLogoutRoundTrip(t *testing.T) {
	fb, backendSrv := newFakeBackend(t)
	app, gatewaySrv := newTestApp(t, backendSrv.URL)
	client := noRedirectClient()

	resp := postJSON(t, client, gatewaySrv.URL+"/api/v1/auth/login", `{"email":"ada@company.com","password":"admin123"}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed with %d", resp.StatusCode)
	}

	resp = postJSON(t, client, gatewaySrv.URL+"/api/v1/auth/logout", `{}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout failed with %d", resp.StatusCode)
	}
	if fb.logoutCalls() != 1 {
		t.Fatalf("expected one backend logout call, got %d", fb.logoutCalls())
	}
	if _, present := app.Store.Current(); present {
		t.Fatal("logout must clear the session store")
	}

	resp, err := client.Get(gatewaySrv.URL + "/api/v1/session")
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	envelope := decodeEnvelope(t, resp)
	data, _ := envelope["data"].(map[string]any)
	if data["authenticated"] != false {
		t.Fatalf("expected unauthenticated session payload, got %v", envelope)
	}
}
