// Package adminhandler backs the admin panel's employee management tab,
// the hierarchy screen and CSV onboarding import.
package adminhandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"workforce/internal/backend"
	"workforce/internal/platform/metrics"
	"workforce/internal/platform/requestctx"
	"workforce/internal/transport/http/api"
	"workforce/internal/transport/http/shared"
)

const maxImportBytes = 8 * 1024 * 1024

type Handler struct {
	Client  *backend.Client
	Metrics *metrics.Collector
}

func NewHandler(client *backend.Client, collector *metrics.Collector) *Handler {
	return &Handler{Client: client, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/admin-panel", h.handlePanel)
	r.Get("/admin-panel/employees", h.handleListEmployees)
	r.Post("/admin-panel/employees", h.handleCreateEmployee)
	r.Put("/admin-panel/employees/{employeeID}", h.handleUpdateEmployee)
	r.Delete("/admin-panel/employees/{employeeID}", h.handleDeleteEmployee)
	r.Post("/admin-panel/employees/import", h.handleBulkImport)
	r.Get("/hierarchy", h.handleHierarchy)
}

// handlePanel returns the panel's tab set plus gateway health, so the
// admin screen can render its chrome with one call.
func (h *Handler) handlePanel(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())
	payload := map[string]any{
		"tabs": []string{"onboarding", "settings", "audit", "reporting"},
	}
	if h.Metrics != nil {
		payload["gateway"] = h.Metrics.Snapshot()
	}
	api.Success(w, payload, requestID)
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())
	employees, err := h.Client.Employees(r.Context(), r.URL.Query())
	if err != nil {
		shared.WriteBackendError(w, err, requestID)
		return
	}
	api.Success(w, employees, requestID)
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())

	var payload json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	created, err := h.Client.CreateEmployee(r.Context(), payload)
	if err != nil {
		shared.WriteBackendError(w, err, requestID)
		return
	}
	api.Created(w, created, requestID)
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())

	var payload json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	updated, err := h.Client.UpdateEmployee(r.Context(), chi.URLParam(r, "employeeID"), payload)
	if err != nil {
		shared.WriteBackendError(w, err, requestID)
		return
	}
	api.Success(w, updated, requestID)
}

func (h *Handler) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())
	if err := h.Client.DeleteEmployee(r.Context(), chi.URLParam(r, "employeeID")); err != nil {
		shared.WriteBackendError(w, err, requestID)
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, requestID)
}

func (h *Handler) handleBulkImport(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())

	if err := r.ParseMultipartForm(maxImportBytes); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "expected a multipart form", requestID)
		return
	}
	files := r.MultipartForm.File["csv"]
	if len(files) == 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "csv file is required", requestID)
		return
	}
	file, err := files[0].Open()
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "could not read csv file", requestID)
		return
	}
	defer file.Close()

	result, err := h.Client.BulkImportEmployees(r.Context(), files[0].Filename, file)
	if err != nil {
		shared.WriteBackendError(w, err, requestID)
		return
	}
	api.Success(w, result, requestID)
}

// handleHierarchy serves the hierarchy screen from the employee list; the
// backend has no dedicated endpoint for it.
func (h *Handler) handleHierarchy(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())
	employees, err := h.Client.Employees(r.Context(), r.URL.Query())
	if err != nil {
		shared.WriteBackendError(w, err, requestID)
		return
	}
	api.Success(w, employees, requestID)
}
