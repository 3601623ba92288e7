package dashboardhandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"workforce/internal/backend"
	"workforce/internal/platform/requestctx"
	"workforce/internal/session"
	"workforce/internal/transport/http/api"
	"workforce/internal/transport/http/shared"
)

type Handler struct {
	Client *backend.Client
	Store  *session.Store
}

func NewHandler(client *backend.Client, store *session.Store) *Handler {
	return &Handler{Client: client, Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", h.handleStats)
}

// handleStats assembles the dashboard for the current role: everyone gets
// their personal stats, managers additionally their team's, admins the
// system-wide view.
func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())

	stats, err := h.Client.DashboardStats(r.Context())
	if err != nil {
		shared.WriteBackendError(w, err, requestID)
		return
	}
	payload := map[string]json.RawMessage{"stats": stats}

	current, present := h.Store.Current()
	if present {
		switch current.Role {
		case session.RoleManager:
			if teamStats, err := h.Client.TeamStats(r.Context()); err == nil {
				payload["teamStats"] = teamStats
			}
		case session.RoleAdmin:
			if systemStats, err := h.Client.SystemStats(r.Context()); err == nil {
				payload["systemStats"] = systemStats
			}
		}
	}

	api.Success(w, payload, requestID)
}
