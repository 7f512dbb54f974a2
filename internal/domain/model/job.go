// Package model contains domain models passed between layers.
package model

import (
	"time"

	"econlab/internal/domain/econ"
)

// JobStatus describes where an evaluation job is in its lifecycle.
type JobStatus string

// Job lifecycle states. A job leaves Pending exactly once.
const (
	StatusPending    JobStatus = "pending"
	StatusDone       JobStatus = "done"
	StatusInfeasible JobStatus = "infeasible"
	StatusFailed     JobStatus = "failed"
)

// Job is an evaluation request flowing through the queue to the workers.
type Job struct {
	ID        string         // server-assigned job id
	RequestID string         // client-supplied idempotency key
	Kind      econ.ModelKind // model to evaluate
	Params    econ.Params    // model parameters
	Submitted time.Time
}

// Record is a finished evaluation as kept by the history store.
type Record struct {
	JobID     string            `json:"job_id"`
	RequestID string            `json:"request_id,omitempty"`
	Kind      econ.ModelKind    `json:"kind"`
	Params    econ.Params       `json:"params"`
	Status    JobStatus         `json:"status"`
	Outputs   econ.Outputs      `json:"outputs,omitempty"`
	Tags      map[string]string `json:"tags,omitempty"`
	Reason    string            `json:"reason,omitempty"` // infeasibility or failure detail
	Finished  time.Time         `json:"finished"`
}
