// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	jobqueue "econlab/internal/adapters/mq/queue"
	workerpool "econlab/internal/adapters/mq/worker"
	"econlab/internal/adapters/repository"
	"econlab/internal/domain/dedupe"
	"econlab/internal/domain/econ"
	"econlab/internal/domain/model"
	"econlab/pkg/logger"
	"econlab/pkg/metrics"
)

// Sentinel kinds for service errors.
var (
	ErrQueueFull  = errors.New("job queue full")
	ErrNotStarted = errors.New("service not started")
)

// evaluatorAdapter adapts the domain evaluator to worker.Evaluator.
type evaluatorAdapter struct{}

func (evaluatorAdapter) Evaluate(ctx context.Context, kind econ.ModelKind, params econ.Params) (econ.Result, error) {
	return econ.Evaluate(ctx, kind, params)
}

// Service implements the API dependencies for the evaluation system.
type Service struct {
	mu sync.RWMutex

	// Core components
	history    repository.Store
	deduper    dedupe.Deduper
	jobQueue   jobqueue.Queue
	workerPool *workerpool.Pool

	// Configuration
	workerCount    int
	queueSize      int
	dedupeSize     int
	historyBackend string
	historyPath    string
	historySize    int

	// State
	started bool
	stopCh  chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithHistoryBackend selects the history store: "memory" or "sqlite".
// The path is only used by the sqlite backend.
func WithHistoryBackend(backend, path string) Option {
	return func(s *Service) {
		if backend != "" {
			s.historyBackend = backend
		}
		s.historyPath = path
	}
}

// WithHistorySize bounds the in-memory history store.
func WithHistorySize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.historySize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:    runtime.NumCPU() * 2,
		queueSize:      10_000,
		dedupeSize:     100_000,
		historyBackend: "memory",
		historySize:    10_000,
		stopCh:         make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting evaluation service...")

	switch s.historyBackend {
	case "sqlite":
		store, err := repository.NewSQLiteStore(s.historyPath)
		if err != nil {
			return fmt.Errorf("open sqlite history: %w", err)
		}
		s.history = store
		s.logger.Info(ctx, "using sqlite history store", logger.String("path", s.historyPath))
	default:
		s.history = repository.NewMemoryStore(
			repository.WithMaxRecords(s.historySize),
		)
		s.logger.Info(ctx, "using in-memory history store", logger.Int("maxRecords", s.historySize))
	}

	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.jobQueue = jobqueue.NewInMemoryQueue(
		jobqueue.WithCapacity(s.queueSize),
	)

	s.workerPool = workerpool.NewPool(s.workerCount, s.jobQueue, evaluatorAdapter{}, s.history)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "evaluation service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping evaluation service...")

	if q, ok := s.jobQueue.(*jobqueue.InMemoryQueue); ok {
		_ = q.Close()
	}

	if s.workerPool != nil {
		s.workerPool.Stop()
	}

	if s.history != nil {
		_ = s.history.Close()
	}

	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(ctx, "evaluation service stopped")
}

// Evaluate runs a model synchronously and returns the result.
func (s *Service) Evaluate(ctx context.Context, kind econ.ModelKind, params econ.Params) (econ.Result, error) {
	start := time.Now()
	result, err := econ.Evaluate(ctx, kind, params)
	metrics.RecordEvaluationLatency(float64(time.Since(start).Milliseconds()))

	switch {
	case err == nil:
		metrics.RecordEvaluation(string(kind), "done")
	case errors.Is(err, econ.ErrInfeasible):
		metrics.RecordEvaluation(string(kind), "infeasible")
		metrics.RecordInfeasible(string(kind))
	default:
		metrics.RecordEvaluation(string(kind), "failed")
	}

	return result, err
}

// SubmitJob queues a model evaluation for asynchronous processing.
// A repeated request id is reported as a duplicate without enqueuing.
func (s *Service) SubmitJob(ctx context.Context, requestID string, kind econ.ModelKind, params econ.Params) (jobID string, duplicate bool, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return "", false, ErrNotStarted
	}

	if !econ.Known(kind) {
		return "", false, fmt.Errorf("%w: %s", econ.ErrUnknownModel, kind)
	}

	if requestID != "" && s.deduper.SeenAndRecord(ctx, requestID) {
		metrics.RecordJobDuplicate()
		s.logger.Debug(ctx, "duplicate job submission, skipping",
			logger.String("requestID", requestID),
		)
		return "", true, nil
	}

	job := model.Job{
		ID:        uuid.NewString(),
		RequestID: requestID,
		Kind:      kind,
		Params:    params,
		Submitted: time.Now(),
	}

	if !s.jobQueue.Enqueue(ctx, job) {
		// Let the client retry the same request id after backpressure.
		if requestID != "" {
			s.deduper.Unrecord(ctx, requestID)
		}
		return "", false, ErrQueueFull
	}

	// Mark the job pending so lookups see it before a worker finishes.
	// A worker may already have recorded the outcome; the marker must not
	// clobber it.
	pending := model.Record{
		JobID:     job.ID,
		RequestID: job.RequestID,
		Kind:      job.Kind,
		Params:    job.Params,
		Status:    model.StatusPending,
		Finished:  job.Submitted,
	}
	if err := s.history.RecordIfAbsent(ctx, pending); err != nil {
		s.logger.Warn(ctx, "record pending job",
			logger.String("jobID", job.ID),
			logger.Error(err),
		)
	}

	metrics.RecordJobAccepted()
	return job.ID, false, nil
}

// Job returns the evaluation record for a job id, with a pending status
// until a worker finishes it. Returns repository.ErrNotFound for unknown
// ids.
func (s *Service) Job(ctx context.Context, jobID string) (model.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return model.Record{}, ErrNotStarted
	}
	return s.history.Get(ctx, jobID)
}

// Recent returns up to n records, most recently finished first.
func (s *Service) Recent(ctx context.Context, n int) ([]model.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, ErrNotStarted
	}
	return s.history.Recent(ctx, n)
}

// Models returns the catalog of evaluable model kinds.
func (s *Service) Models(_ context.Context) []econ.ModelSpec {
	return econ.Catalog()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
		"modelCount":  len(econ.Catalog()),
	}

	if s.started {
		queueLen := s.jobQueue.Len(ctx)
		historyCount := s.history.Count(ctx)

		stats["queueLength"] = queueLen
		stats["historyCount"] = historyCount

		byStatus := s.history.CountByStatus(ctx)
		statusCounts := make(map[string]int, len(byStatus))
		for status, n := range byStatus {
			statusCounts[string(status)] = n
		}
		stats["historyByStatus"] = statusCounts

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateHistorySize(historyCount)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}

// Size returns the current number of entries in the deduper.
func (s *Service) Size() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}
