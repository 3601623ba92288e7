package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// staticTokens is a TokenSource for tests.
type staticTokens struct{ token string }

func (s *staticTokens) Token() string { return s.token }

func newTestClient(t *testing.T, backendURL, token string, onUnauthorized func()) *Client {
	t.Helper()
	client, err := New(backendURL, 5*time.Second, &staticTokens{token: token}, onUnauthorized)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestNewRejectsRelativeBaseURL(t *testing.T) {
	if _, err := New("localhost:8000", time.Second, &staticTokens{}, nil); err == nil {
		t.Fatal("expected relative base URL to be rejected")
	}
}

func TestBearerTokenAttachedToEveryRequest(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]any{})
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, "tok123", nil)
	var out []any
	if err := client.get(context.Background(), "/worklogs", nil, &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotAuth != "Bearer tok123" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestNoAuthorizationHeaderWhenLoggedOut(t *testing.T) {
	var sawHeader bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawHeader = r.Header["Authorization"]
		_ = json.NewEncoder(w).Encode([]any{})
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, "", nil)
	var out []any
	if err := client.get(context.Background(), "/worklogs", nil, &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if sawHeader {
		t.Fatal("logged-out requests must not carry an Authorization header")
	}
}

func TestUnauthorizedFiresHookOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"token expired"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	hookCalls := 0
	client := newTestClient(t, srv.URL, "stale", func() { hookCalls++ })

	err := client.get(context.Background(), "/worklogs", nil, nil)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if hookCalls != 1 {
		t.Fatalf("expected one hook call, got %d", hookCalls)
	}
}

func TestAuthExemptCallSkipsHook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"bad credentials"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	hookCalls := 0
	client := newTestClient(t, srv.URL, "", func() { hookCalls++ })

	err := client.postJSON(context.Background(), "/auth/login", map[string]string{}, nil, callOptions{authExempt: true})
	if errors.Is(err, ErrUnauthorized) {
		t.Fatal("exempt 401 must not be the token-rejection sentinel")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401 APIError, got %v", err)
	}
	if hookCalls != 0 {
		t.Fatalf("hook must not fire on exempt calls, got %d", hookCalls)
	}
}

func TestAPIErrorCarriesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"leave balance exhausted"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, "tok", nil)
	err := client.get(context.Background(), "/leave-requests", nil, nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Message != "leave balance exhausted" {
		t.Fatalf("unexpected APIError: %+v", apiErr)
	}
}

func TestTransportFailureIsNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	client := newTestClient(t, srv.URL, "tok", nil)
	err := client.get(context.Background(), "/worklogs", nil, nil)
	if !IsNetworkFailure(err) {
		t.Fatalf("expected network failure, got %v", err)
	}
}

func TestQueryParametersEncoded(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(map[string]any{})
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, "tok", nil)
	if _, err := client.AuditTrail(context.Background(), 50, 100); err != nil {
		t.Fatalf("audit trail: %v", err)
	}
	if gotQuery != "limit=50&offset=100" {
		t.Fatalf("unexpected query: %q", gotQuery)
	}
}
