// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"econlab/internal/domain/econ"
)

// ModelDependencies defines the interface for catalog queries.
type ModelDependencies interface {
	Models(ctx context.Context) []econ.ModelSpec
}

// ModelsHandler handles model catalog requests.
type ModelsHandler struct {
	deps ModelDependencies
}

// NewModelsHandler creates a new models handler.
func NewModelsHandler(deps ModelDependencies) *ModelsHandler {
	return &ModelsHandler{deps: deps}
}

// HandleGetModels handles GET /models requests.
func (h *ModelsHandler) HandleGetModels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Models(r.Context()))
}
