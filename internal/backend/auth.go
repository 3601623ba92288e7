package backend

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"workforce/internal/session"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration matches the backend's snake_case register contract.
// Registration never results in a session; the user signs in afterwards.
type Registration struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	Position   string `json:"position,omitempty"`
	HireDate   string `json:"hire_date"`
}

// flexibleID tolerates backends that send numeric ids.
type flexibleID string

func (id *flexibleID) UnmarshalJSON(data []byte) error {
	trimmed := strings.Trim(string(data), `"`)
	if trimmed == "null" {
		trimmed = ""
	}
	*id = flexibleID(trimmed)
	return nil
}

type loginResponse struct {
	Token string `json:"token"`
	User  struct {
		ID             flexibleID `json:"id"`
		Name           string     `json:"name"`
		Email          string     `json:"email"`
		Role           string     `json:"role"`
		EmployeeNumber string     `json:"employeeNumber"`
		Department     string     `json:"department"`
		Designation    string     `json:"designation"`
	} `json:"user"`
}

// Login exchanges credentials for a session. Any 4xx is a credential
// failure; transport errors and 5xx are network failures. The caller owns
// writing the result into the session store.
func (c *Client) Login(ctx context.Context, creds Credentials) (session.Session, error) {
	var payload loginResponse
	err := c.postJSON(ctx, "/auth/login", creds, &payload, callOptions{authExempt: true})
	if err != nil {
		return session.Session{}, normalizeLoginErr(err)
	}

	role, roleErr := session.ParseRole(payload.User.Role)
	if payload.Token == "" || payload.User.ID == "" || roleErr != nil {
		return session.Session{}, &AuthError{Reason: ReasonNetworkFailure, Message: "malformed login response"}
	}

	return session.Session{
		UserID:         string(payload.User.ID),
		DisplayName:    payload.User.Name,
		Email:          payload.User.Email,
		Role:           role,
		EmployeeNumber: payload.User.EmployeeNumber,
		Department:     payload.User.Department,
		Designation:    payload.User.Designation,
		Token:          payload.Token,
	}, nil
}

// Register submits a registration. The session store is never touched.
func (c *Client) Register(ctx context.Context, reg Registration) error {
	err := c.postJSON(ctx, "/auth/register", reg, nil, callOptions{authExempt: true})
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	switch {
	case apiErr.Status == http.StatusConflict:
		return &AuthError{Reason: ReasonConflict, Message: apiErr.Message, Status: apiErr.Status}
	case apiErr.Status >= 400 && apiErr.Status < 500:
		return &AuthError{Reason: ReasonValidationFailed, Message: apiErr.Message, Status: apiErr.Status}
	default:
		return &AuthError{Reason: ReasonNetworkFailure, Message: apiErr.Message, Status: apiErr.Status}
	}
}

// Logout notifies the backend. Errors are reported but callers clear local
// state regardless.
func (c *Client) Logout(ctx context.Context) error {
	return c.postJSON(ctx, "/auth/logout", struct{}{}, nil, callOptions{authExempt: true})
}

func normalizeLoginErr(err error) error {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	if apiErr.Status >= 400 && apiErr.Status < 500 {
		return &AuthError{Reason: ReasonInvalidCredentials, Message: apiErr.Message, Status: apiErr.Status}
	}
	return &AuthError{Reason: ReasonNetworkFailure, Message: apiErr.Message, Status: apiErr.Status}
}
