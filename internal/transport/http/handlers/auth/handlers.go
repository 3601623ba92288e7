package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"workforce/internal/auth"
	"workforce/internal/backend"
	"workforce/internal/nav"
	"workforce/internal/platform/requestctx"
	"workforce/internal/session"
	"workforce/internal/transport/http/api"
	"workforce/internal/transport/http/shared"
)

type Handler struct {
	Gateway *auth.Gateway
	Store   *session.Store
}

func NewHandler(gateway *auth.Gateway, store *session.Store) *Handler {
	return &Handler{Gateway: gateway, Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.HandleLogin)
	r.Post("/auth/register", h.HandleRegister)
	r.Post("/auth/logout", h.HandleLogout)
	r.Get("/session", h.HandleSession)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Role            string `json:"role"`
	Department      string `json:"department"`
	Position        string `json:"position"`
}

type sessionPayload struct {
	Authenticated bool        `json:"authenticated"`
	User          any         `json:"user,omitempty"`
	Menu          []nav.Entry `json:"menu,omitempty"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())

	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("email", payload.Email, "email is required")
	v.Required("password", payload.Password, "password is required")
	if v.Reject(w, requestID) {
		return
	}

	sess, err := h.Gateway.Login(r.Context(), backend.Credentials{Email: payload.Email, Password: payload.Password})
	if err != nil {
		writeAuthError(w, err, requestID)
		return
	}

	api.Success(w, sessionPayload{
		Authenticated: true,
		User:          publicSession(sess),
		Menu:          nav.BuildMenu(sess, true),
	}, requestID)
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())

	var payload registerRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("email", payload.Email, "email is required")
	v.Required("password", payload.Password, "password is required")
	v.Required("firstName", payload.FirstName, "first name is required")
	v.Required("lastName", payload.LastName, "last name is required")
	v.Required("role", payload.Role, "role is required")
	v.Enum("role", payload.Role,
		[]string{string(session.RoleEmployee), string(session.RoleManager), string(session.RoleAdmin)},
		"role must be employee, manager or admin")
	if payload.Password != payload.ConfirmPassword {
		v.Add("confirmPassword", "passwords do not match")
	}
	if v.Reject(w, requestID) {
		return
	}

	reg := backend.Registration{
		Email:      payload.Email,
		Password:   payload.Password,
		FirstName:  payload.FirstName,
		LastName:   payload.LastName,
		Role:       payload.Role,
		Department: payload.Department,
		Position:   payload.Position,
		HireDate:   time.Now().UTC().Format("2006-01-02"),
	}
	if err := h.Gateway.Register(r.Context(), reg); err != nil {
		writeAuthError(w, err, requestID)
		return
	}

	// No session: the user signs in with the new credentials.
	api.Created(w, map[string]string{"status": "registered"}, requestID)
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.Gateway.Logout(r.Context())
	api.Success(w, map[string]string{"status": "logged_out"}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleSession(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())
	current, present := h.Store.Current()
	if !present {
		api.Success(w, sessionPayload{Authenticated: false}, requestID)
		return
	}
	api.Success(w, sessionPayload{
		Authenticated: true,
		User:          publicSession(current),
		Menu:          nav.BuildMenu(current, true),
	}, requestID)
}

// publicSession is what the UI sees; the bearer token never leaves the
// gateway process.
func publicSession(sess session.Session) map[string]any {
	out := map[string]any{
		"userId": sess.UserID,
		"name":   sess.DisplayName,
		"email":  sess.Email,
		"role":   sess.Role,
	}
	if sess.EmployeeNumber != "" {
		out["employeeNumber"] = sess.EmployeeNumber
	}
	if sess.Department != "" {
		out["department"] = sess.Department
	}
	if sess.Designation != "" {
		out["designation"] = sess.Designation
	}
	return out
}

func writeAuthError(w http.ResponseWriter, err error, requestID string) {
	if errors.Is(err, auth.ErrAuthInFlight) {
		api.Fail(w, http.StatusConflict, "auth_in_flight", "a sign-in attempt is already in progress", requestID)
		return
	}

	var authErr *backend.AuthError
	if errors.As(err, &authErr) {
		switch authErr.Reason {
		case backend.ReasonInvalidCredentials:
			api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", requestID)
		case backend.ReasonConflict:
			api.Fail(w, http.StatusConflict, "conflict", authErr.Message, requestID)
		case backend.ReasonValidationFailed:
			api.Fail(w, http.StatusBadRequest, "validation_failed", authErr.Message, requestID)
		default:
			api.Fail(w, http.StatusBadGateway, "backend_unreachable", "could not reach the backend, try again", requestID)
		}
		return
	}

	api.Fail(w, http.StatusBadGateway, "backend_error", "unexpected backend failure", requestID)
}
