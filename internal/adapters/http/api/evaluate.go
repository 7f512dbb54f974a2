// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"econlab/internal/domain/econ"
)

// EvaluateDependencies defines the interface for synchronous evaluation.
type EvaluateDependencies interface {
	Evaluate(ctx context.Context, kind econ.ModelKind, params econ.Params) (econ.Result, error)
}

// EvaluateHandler handles synchronous evaluation requests.
type EvaluateHandler struct {
	deps EvaluateDependencies
}

// NewEvaluateHandler creates a new evaluate handler.
func NewEvaluateHandler(deps EvaluateDependencies) *EvaluateHandler {
	return &EvaluateHandler{deps: deps}
}

// HandleEvaluate handles POST /evaluate requests.
func (h *EvaluateHandler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	const op = "api.evaluate"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.Model) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	result, err := h.deps.Evaluate(r.Context(), req.kind(), req.params())
	if err != nil {
		writeEvaluationError(w, op, err)
		return
	}

	writeJSON(w, http.StatusOK, evaluateResponse{
		Model:   string(result.Kind),
		Outputs: result.Outputs,
		Tags:    result.Tags,
	})
}

// writeEvaluationError maps domain evaluation errors onto HTTP statuses:
// client mistakes are 400, economic infeasibility is 422, evaluator
// faults are 500.
func writeEvaluationError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, econ.ErrUnknownModel):
		writeError(w, http.StatusBadRequest, "unknown_model", Wrap(op, err))
	case errors.Is(err, econ.ErrMissingParam):
		writeError(w, http.StatusBadRequest, "missing_param", Wrap(op, err))
	case errors.Is(err, econ.ErrBadParam):
		writeError(w, http.StatusBadRequest, "bad_param", Wrap(op, err))
	case errors.Is(err, econ.ErrInfeasible):
		writeError(w, http.StatusUnprocessableEntity, "infeasible", Wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
