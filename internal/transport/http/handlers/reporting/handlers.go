package reportinghandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"workforce/internal/backend"
	"workforce/internal/platform/requestctx"
	"workforce/internal/reports"
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
	r.Post("/reporting/generate", h.handleGenerate)
	r.Post("/reporting/export/pdf", h.handleExportPDF)
	r.Post("/reporting/export/excel", h.handleExportExcel)
	r.Post("/reporting/export/csv", h.handleExportCSV)
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())

	params, err := decodeParams(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	report, err := h.Client.GenerateReport(r.Context(), params)
	if err != nil {
		shared.WriteBackendError(w, err, requestID)
		return
	}
	api.Success(w, report, requestID)
}

// handleExportPDF prefers the backend's renderer and falls back to
// rendering the generated report locally when the backend has no export
// endpoint.
func (h *Handler) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())

	params, err := decodeParams(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	blob, contentType, err := h.Client.ExportReportPDF(r.Context(), params)
	if err == nil {
		writeBlob(w, blob, contentType, "report.pdf")
		return
	}
	if !isMissingEndpoint(err) {
		shared.WriteBackendError(w, err, requestID)
		return
	}

	report, err := h.generateTabular(r, params)
	if err != nil {
		h.writeExportError(w, err, requestID)
		return
	}
	rendered, err := reports.RenderPDF(report)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "could not render report", requestID)
		return
	}
	writeBlob(w, rendered, "application/pdf", "report.pdf")
}

func (h *Handler) handleExportExcel(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())

	params, err := decodeParams(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	blob, contentType, err := h.Client.ExportReportExcel(r.Context(), params)
	if err != nil {
		shared.WriteBackendError(w, err, requestID)
		return
	}
	writeBlob(w, blob, contentType, "report.xlsx")
}

// handleExportCSV always renders locally; the backend has no CSV export.
func (h *Handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())

	params, err := decodeParams(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	report, err := h.generateTabular(r, params)
	if err != nil {
		h.writeExportError(w, err, requestID)
		return
	}
	rendered, err := reports.RenderCSV(report)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "could not render report", requestID)
		return
	}
	writeBlob(w, rendered, "text/csv", "report.csv")
}

func (h *Handler) generateTabular(r *http.Request, params json.RawMessage) (reports.Report, error) {
	payload, err := h.Client.GenerateReport(r.Context(), params)
	if err != nil {
		return reports.Report{}, err
	}
	return reports.Parse(payload)
}

func (h *Handler) writeExportError(w http.ResponseWriter, err error, requestID string) {
	if errors.Is(err, reports.ErrNotTabular) {
		api.Fail(w, http.StatusUnprocessableEntity, "export_failed", "report cannot be exported locally", requestID)
		return
	}
	shared.WriteBackendError(w, err, requestID)
}

func decodeParams(r *http.Request) (json.RawMessage, error) {
	var params json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		return nil, err
	}
	return params, nil
}

// isMissingEndpoint reports whether the backend simply has no such route.
func isMissingEndpoint(err error) bool {
	var apiErr *backend.APIError
	return errors.As(err, &apiErr) &&
		(apiErr.Status == http.StatusNotFound || apiErr.Status == http.StatusNotImplemented)
}

func writeBlob(w http.ResponseWriter, blob []byte, contentType, fileName string) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(blob)
}
