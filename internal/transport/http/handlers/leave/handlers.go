package leavehandler

import (
	"encoding/json"
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

// RegisterRoutes wires the employee-facing leave screen. The manager
// approval queue lives in RegisterApprovalRoutes so the two can sit behind
// different access rules.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/leave-requests", h.handleList)
	r.Post("/leave-requests", h.handleSubmit)
}

func (h *Handler) RegisterApprovalRoutes(r chi.Router) {
	r.Get("/leave-approvals", h.handleTeamQueue)
	r.Put("/leave-approvals/{requestID}/{action}", h.handleProcess)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())
	requests, err := h.Client.LeaveRequests(r.Context())
	if err != nil {
		shared.WriteBackendError(w, err, requestID)
		return
	}
	api.Success(w, requests, requestID)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())

	var payload struct {
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
		Type      string `json:"type"`
		Reason    string `json:"reason"`
	}
	raw, err := decodeRaw(r, &payload)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	start, startOK := v.Date("startDate", payload.StartDate)
	end, endOK := v.Date("endDate", payload.EndDate)
	if startOK && endOK {
		v.DateOrder("startDate", start, "endDate", end)
	}
	v.Required("type", payload.Type, "leave type is required")
	if v.Reject(w, requestID) {
		return
	}

	created, err := h.Client.SubmitLeaveRequest(r.Context(), raw)
	if err != nil {
		shared.WriteBackendError(w, err, requestID)
		return
	}
	api.Created(w, created, requestID)
}

func (h *Handler) handleTeamQueue(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())
	queue, err := h.Client.TeamLeaveRequests(r.Context())
	if err != nil {
		shared.WriteBackendError(w, err, requestID)
		return
	}
	api.Success(w, queue, requestID)
}

func (h *Handler) handleProcess(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())

	action := backend.LeaveAction(chi.URLParam(r, "action"))
	if action != backend.LeaveApprove && action != backend.LeaveReject {
		api.Fail(w, http.StatusBadRequest, "invalid_action", "action must be approve or reject", requestID)
		return
	}

	var payload struct {
		Note string `json:"note"`
	}
	// The note is optional; an empty body is fine.
	_ = json.NewDecoder(r.Body).Decode(&payload)

	processed, err := h.Client.ProcessLeaveRequest(r.Context(), chi.URLParam(r, "requestID"), action, payload.Note)
	if err != nil {
		shared.WriteBackendError(w, err, requestID)
		return
	}
	api.Success(w, processed, requestID)
}

// decodeRaw decodes into both a typed view for validation and the raw
// payload that gets forwarded untouched.
func decodeRaw(r *http.Request, typed any) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, typed); err != nil {
		return nil, err
	}
	return raw, nil
}
