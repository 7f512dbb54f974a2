// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"econlab/internal/adapters/repository"
	"econlab/internal/domain/econ"
	"econlab/internal/domain/model"
)

// JobDependencies defines the interface for asynchronous job operations.
type JobDependencies interface {
	SubmitJob(ctx context.Context, requestID string, kind econ.ModelKind, params econ.Params) (jobID string, duplicate bool, err error)
	Job(ctx context.Context, jobID string) (model.Record, error)
}

// JobsHandler handles job submission and lookup requests.
type JobsHandler struct {
	deps JobDependencies
}

// NewJobsHandler creates a new jobs handler.
func NewJobsHandler(deps JobDependencies) *JobsHandler {
	return &JobsHandler{deps: deps}
}

// HandlePostJob handles POST /jobs requests.
func (h *JobsHandler) HandlePostJob(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_job"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.Model) == "" || strings.TrimSpace(req.RequestID) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	jobID, duplicate, err := h.deps.SubmitJob(r.Context(), req.RequestID, req.kind(), req.params())
	switch {
	case err == nil:
	case errors.Is(err, econ.ErrUnknownModel):
		writeError(w, http.StatusBadRequest, "unknown_model", Wrap(op, err))
		return
	default:
		// Backpressure or a stopped service: ask the client to retry.
		writeError(w, http.StatusTooManyRequests, "backpressure", WrapKind(op, ErrBackpressure, err))
		return
	}

	if duplicate {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", Duplicate: true})
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", JobID: jobID, Duplicate: false})
}

// HandleGetJob handles GET /jobs/{job_id} requests.
func (h *JobsHandler) HandleGetJob(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_job"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /jobs/
	jobID := strings.TrimPrefix(r.URL.Path, "/jobs/")
	if jobID == "" || strings.Contains(jobID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	rec, err := h.deps.Job(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
