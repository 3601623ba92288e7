package notificationshandler

import (
	"net/http"

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
	r.Get("/notifications", h.handleList)
	r.Put("/notifications/{notificationID}/read", h.handleMarkRead)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())
	notifications, err := h.Client.Notifications(r.Context())
	if err != nil {
		shared.WriteBackendError(w, err, requestID)
		return
	}
	api.Success(w, notifications, requestID)
}

func (h *Handler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())
	result, err := h.Client.MarkNotificationRead(r.Context(), chi.URLParam(r, "notificationID"))
	if err != nil {
		shared.WriteBackendError(w, err, requestID)
		return
	}
	api.Success(w, result, requestID)
}
