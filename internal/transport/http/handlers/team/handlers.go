package teamhandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"workforce/internal/backend"
	"workforce/internal/platform/requestctx"
	"workforce/internal/transport/http/api"
	"workforce/internal/transport/http/shared"
)

// Handler backs the manager's team review screen.
type Handler struct {
	Client *backend.Client
}

func NewHandler(client *backend.Client) *Handler {
	return &Handler{Client: client}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/team-review", h.handleTeamLogs)
	r.Post("/team-review/{logID}/feedback", h.handleFeedback)
}

func (h *Handler) handleTeamLogs(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())
	logs, err := h.Client.TeamLogs(r.Context(), r.URL.Query())
	if err != nil {
		shared.WriteBackendError(w, err, requestID)
		return
	}
	api.Success(w, logs, requestID)
}

func (h *Handler) handleFeedback(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())

	var payload struct {
		Feedback string `json:"feedback"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("feedback", payload.Feedback, "feedback is required")
	if v.Reject(w, requestID) {
		return
	}

	result, err := h.Client.SubmitLogFeedback(r.Context(), chi.URLParam(r, "logID"), payload.Feedback)
	if err != nil {
		shared.WriteBackendError(w, err, requestID)
		return
	}
	api.Created(w, result, requestID)
}
