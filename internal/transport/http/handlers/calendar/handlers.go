package calendarhandler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"workforce/internal/backend"
	"workforce/internal/platform/requestctx"
	"workforce/internal/transport/http/api"
	"workforce/internal/transport/http/shared"
)

type Handler struct {
	Client *backend.Client
}

func NewHandler(client *backend.Client) *Handler {
	return &Handler{Client: client}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/calendar", h.handleMonth)
	r.Get("/calendar/user-events", h.handleUserEvents)
}

func (h *Handler) handleMonth(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())

	now := time.Now()
	year := queryInt(r, "year", now.Year())
	month := queryInt(r, "month", int(now.Month())-1)
	if month < 0 || month > 11 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "month must be between 0 and 11", requestID)
		return
	}

	events, err := h.Client.CalendarEvents(r.Context(), year, month)
	if err != nil {
		shared.WriteBackendError(w, err, requestID)
		return
	}
	api.Success(w, events, requestID)
}

func (h *Handler) handleUserEvents(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())
	events, err := h.Client.UserCalendarEvents(r.Context(), r.URL.Query())
	if err != nil {
		shared.WriteBackendError(w, err, requestID)
		return
	}
	api.Success(w, events, requestID)
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
