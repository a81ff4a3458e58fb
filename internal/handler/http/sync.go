package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/veritime/attendance-backend-go/internal/domain/syncfailure"
	"github.com/veritime/attendance-backend-go/internal/handler/http/response"
	"github.com/veritime/attendance-backend-go/internal/service/devicesync"
)

// SyncHandler defines the device sync handler interface
type SyncHandler interface {
	Trigger(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
	ListFailures(w http.ResponseWriter, r *http.Request)
	ResolveFailure(w http.ResponseWriter, r *http.Request)
}

type syncHandlerImpl struct {
	orchestrator *devicesync.Orchestrator
	failureRepo  syncfailure.Repository
}

// NewSyncHandler creates a new device sync handler
func NewSyncHandler(orchestrator *devicesync.Orchestrator, failureRepo syncfailure.Repository) SyncHandler {
	return &syncHandlerImpl{
		orchestrator: orchestrator,
		failureRepo:  failureRepo,
	}
}

// syncStatusResponse is the API shape of the sync status endpoint.
type syncStatusResponse struct {
	State      string             `json:"state"`
	IsRunning  bool               `json:"is_running"`
	LastResult *devicesync.Result `json:"last_result,omitempty"`
}

// Trigger starts a sync run and waits for its outcome. A second caller
// while one is in flight gets a conflict, not a queued run.
func (h *syncHandlerImpl) Trigger(w http.ResponseWriter, r *http.Request) {
	result, err := h.orchestrator.Sync(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Sync completed", result)
}

// Status reports the orchestrator's current state and last outcome
func (h *syncHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	response.Success(w, syncStatusResponse{
		State:      string(h.orchestrator.State()),
		IsRunning:  h.orchestrator.IsRunning(),
		LastResult: h.orchestrator.LastResult(),
	})
}

// ListFailures returns the sync failure audit trail
func (h *syncHandlerImpl) ListFailures(w http.ResponseWriter, r *http.Request) {
	req := syncfailure.ListRequest{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
		Resolved:  r.URL.Query().Get("resolved"),
		Kind:      r.URL.Query().Get("kind"),
	}

	filter, errs := req.Validate()
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	events, err := h.failureRepo.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]syncfailure.EventResponse, len(events))
	for i, e := range events {
		responses[i] = e.ToResponse()
	}

	response.Success(w, responses)
}

// ResolveFailure marks a failure event as resolved with an operator note
func (h *syncHandlerImpl) ResolveFailure(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Event ID is required", nil)
		return
	}

	var req syncfailure.ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	event, err := h.failureRepo.Resolve(r.Context(), id, req.Note)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Failure event resolved", event.ToResponse())
}
