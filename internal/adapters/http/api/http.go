// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"econlab/internal/domain/econ"
	"econlab/internal/domain/model"
)

// Default cap on history page size.
const defaultMaxHistoryLimit = 500

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Evaluate runs a model synchronously.
	Evaluate(ctx context.Context, kind econ.ModelKind, params econ.Params) (econ.Result, error)

	// SubmitJob queues an evaluation. duplicate reports a repeated
	// request id; a false accept with nil error never happens.
	SubmitJob(ctx context.Context, requestID string, kind econ.ModelKind, params econ.Params) (jobID string, duplicate bool, err error)

	// Read operations expose evaluation history and the model catalog.
	Job(ctx context.Context, jobID string) (model.Record, error)
	Recent(ctx context.Context, n int) ([]model.Record, error)
	Models(ctx context.Context) []econ.ModelSpec
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	evaluateHandler *EvaluateHandler
	jobsHandler     *JobsHandler
	modelsHandler   *ModelsHandler
	historyHandler  *HistoryHandler
}

// ServerOption applies a configuration option to the Server.
type ServerOption func(*Server)

// WithMaxHistoryLimit caps the history page size.
func WithMaxHistoryLimit(limit int) ServerOption {
	return func(s *Server) {
		if limit > 0 {
			s.historyHandler.maxLimit = limit
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	s := &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		evaluateHandler: NewEvaluateHandler(deps),
		jobsHandler:     NewJobsHandler(deps),
		modelsHandler:   NewModelsHandler(deps),
		historyHandler:  NewHistoryHandler(deps, defaultMaxHistoryLimit),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/evaluate", MetricsMiddleware(s.evaluateHandler.HandleEvaluate, "evaluate"))
	mux.HandleFunc("/jobs", MetricsMiddleware(s.jobsHandler.HandlePostJob, "jobs"))
	mux.HandleFunc("/jobs/", MetricsMiddleware(s.jobsHandler.HandleGetJob, "job"))
	mux.HandleFunc("/models", MetricsMiddleware(s.modelsHandler.HandleGetModels, "models"))
	mux.HandleFunc("/history", MetricsMiddleware(s.historyHandler.HandleGetHistory, "history"))
}

// evaluateRequest mirrors the OpenAPI schema for POST /evaluate and the
// body of POST /jobs.
type evaluateRequest struct {
	RequestID string             `json:"request_id,omitempty"`
	Model     string             `json:"model"`
	Params    map[string]float64 `json:"params"`
}

func (e evaluateRequest) kind() econ.ModelKind { return econ.ModelKind(e.Model) }

func (e evaluateRequest) params() econ.Params {
	p := make(econ.Params, len(e.Params))
	for k, v := range e.Params {
		p[k] = v
	}
	return p
}

// evaluateResponse is the success shape of POST /evaluate.
type evaluateResponse struct {
	Model   string             `json:"model"`
	Outputs map[string]float64 `json:"outputs"`
	Tags    map[string]string  `json:"tags,omitempty"`
}

type ackResponse struct {
	Status    string `json:"status"`
	JobID     string `json:"job_id,omitempty"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
