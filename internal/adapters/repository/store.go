// Package repository defines the evaluation history store and its errors.
package repository

import (
	"context"

	"econlab/internal/domain/model"
)

// Store keeps finished evaluation records for retrieval by job id or
// recency. Implementations must be safe for concurrent use.
type Store interface {
	// Record stores a finished evaluation. Storing the same job id twice
	// overwrites the earlier record.
	Record(ctx context.Context, rec model.Record) error

	// RecordIfAbsent stores the record only when the job id is not yet
	// known. Submitters use it to mark accepted jobs pending without
	// clobbering a record a worker already finished.
	RecordIfAbsent(ctx context.Context, rec model.Record) error

	// Get returns the record for a job id.
	// Returns ErrNotFound if the job is unknown.
	Get(ctx context.Context, jobID string) (model.Record, error)

	// Recent returns up to n records, most recently finished first.
	Recent(ctx context.Context, n int) ([]model.Record, error)

	// Count returns the number of records kept.
	Count(ctx context.Context) int

	// CountByStatus returns the number of kept records per job status.
	CountByStatus(ctx context.Context) map[model.JobStatus]int

	// Close releases any resources held by the store.
	Close() error
}
