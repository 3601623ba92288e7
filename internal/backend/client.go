// Package backend is the REST client for the external employee management
// API. One configured client carries the bearer token on every request and
// funnels token rejection into a single unauthorized hook, mirroring how
// the screens consume the API: thin typed wrappers, no local business
// logic.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TokenSource supplies the current bearer token, or "" when logged out.
// The session store implements it.
type TokenSource interface {
	Token() string
}

type Client struct {
	base           *url.URL
	http           *http.Client
	onUnauthorized func()
}

// New builds a client for baseURL. onUnauthorized runs once per 401
// response on authenticated endpoints; login and register are exempt since
// a 401 there means bad credentials, not a rejected token.
func New(baseURL string, timeout time.Duration, tokens TokenSource, onUnauthorized func()) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("backend base URL %q is not absolute", baseURL)
	}
	return &Client{
		base: parsed,
		http: &http.Client{
			Timeout:   timeout,
			Transport: &bearerTransport{tokens: tokens, next: http.DefaultTransport},
		},
		onUnauthorized: onUnauthorized,
	}, nil
}

// bearerTransport attaches the Authorization header when a token exists.
// Applied once at client construction so no call site can forget it.
type bearerTransport struct {
	tokens TokenSource
	next   http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if token := t.tokens.Token(); token != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return t.next.RoundTrip(req)
}

type callOptions struct {
	// authExempt suppresses the unauthorized hook; set for the identity
	// endpoints where 401 is a credential failure.
	authExempt bool
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return err
	}
	return c.do(req, out, callOptions{})
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any, opts callOptions) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, nil, bytes.NewReader(encoded), "application/json")
	if err != nil {
		return err
	}
	return c.do(req, out, opts)
}

func (c *Client) putJSON(ctx context.Context, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := c.newRequest(ctx, http.MethodPut, path, nil, reader, "application/json")
	if err != nil {
		return err
	}
	return c.do(req, out, callOptions{})
}

func (c *Client) delete(ctx context.Context, path string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, path, nil, nil, "")
	if err != nil {
		return err
	}
	return c.do(req, nil, callOptions{})
}

// postMultipart streams a multipart form; fill writes the parts.
func (c *Client) postMultipart(ctx context.Context, path string, fill func(*multipart.Writer) error, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := fill(writer); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, nil, &buf, writer.FormDataContentType())
	if err != nil {
		return err
	}
	return c.do(req, out, callOptions{})
}

// postBlob posts JSON and returns the raw response body plus its content
// type, for export endpoints that answer with a file.
func (c *Client) postBlob(ctx context.Context, path string, body any) ([]byte, string, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, "", err
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, nil, bytes.NewReader(encoded), "application/json")
	if err != nil {
		return nil, "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", &AuthError{Reason: ReasonNetworkFailure, Message: err.Error()}
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp, callOptions{}); err != nil {
		return nil, "", err
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	return data, resp.Header.Get("Content-Type"), nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Request, error) {
	target := c.base.JoinPath(path)
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out any, opts callOptions) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return &AuthError{Reason: ReasonNetworkFailure, Message: err.Error()}
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp, opts); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode backend response: %w", err)
	}
	return nil
}

func (c *Client) checkStatus(resp *http.Response, opts callOptions) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	if resp.StatusCode == http.StatusUnauthorized && !opts.authExempt {
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return ErrUnauthorized
	}
	return &APIError{Status: resp.StatusCode, Message: errorDetail(resp)}
}

// errorDetail pulls a human-readable message out of an error body. The
// backend answers with {"detail": ...}; fall back to the raw body.
func errorDetail(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(data) == 0 {
		return resp.Status
	}
	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Detail != "" {
			return payload.Detail
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return strings.TrimSpace(string(data))
}
