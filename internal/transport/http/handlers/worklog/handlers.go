package workloghandler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"workforce/internal/backend"
	"workforce/internal/platform/requestctx"
	"workforce/internal/transport/http/api"
	"workforce/internal/transport/http/shared"
)

const maxAttachmentBytes = 4 * 1024 * 1024

type Handler struct {
	Client *backend.Client
}

func NewHandler(client *backend.Client) *Handler {
	return &Handler{Client: client}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/work-log", h.handleList)
	r.Post("/work-log", h.handleSubmit)
	r.Put("/work-log/{logID}", h.handleUpdate)
	r.Delete("/work-log/{logID}", h.handleDelete)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())
	logs, err := h.Client.WorkLogs(r.Context(), r.URL.Query())
	if err != nil {
		shared.WriteBackendError(w, err, requestID)
		return
	}
	api.Success(w, logs, requestID)
}

// handleSubmit accepts the work log form as multipart and forwards field
// by field, streaming an optional attachment through without buffering it
// to disk.
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())

	if err := r.ParseMultipartForm(maxAttachmentBytes); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "expected a multipart form", requestID)
		return
	}

	entry := backend.WorkLogEntry{Fields: map[string]string{}}
	for key, values := range r.MultipartForm.Value {
		if len(values) > 0 {
			entry.Fields[key] = values[0]
		}
	}
	if files := r.MultipartForm.File["attachment"]; len(files) > 0 {
		file, err := files[0].Open()
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "could not read attachment", requestID)
			return
		}
		defer file.Close()
		entry.Attachment = &backend.Attachment{
			FieldName: "attachment",
			FileName:  files[0].Filename,
			Content:   io.LimitReader(file, maxAttachmentBytes),
		}
	}

	created, err := h.Client.SubmitWorkLog(r.Context(), entry)
	if err != nil {
		shared.WriteBackendError(w, err, requestID)
		return
	}
	api.Created(w, created, requestID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())

	var payload json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	updated, err := h.Client.UpdateWorkLog(r.Context(), chi.URLParam(r, "logID"), payload)
	if err != nil {
		shared.WriteBackendError(w, err, requestID)
		return
	}
	api.Success(w, updated, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())
	if err := h.Client.DeleteWorkLog(r.Context(), chi.URLParam(r, "logID")); err != nil {
		shared.WriteBackendError(w, err, requestID)
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, requestID)
}
