package audithandler

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
	r.Get("/audit-trail", h.handleTrail)
}

func (h *Handler) handleTrail(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())
	page := shared.ParsePagination(r, 50, 200)

	entries, err := h.Client.AuditTrail(r.Context(), page.Limit, page.Offset)
	if err != nil {
		shared.WriteBackendError(w, err, requestID)
		return
	}
	api.Success(w, entries, requestID)
}
