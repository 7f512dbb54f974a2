// Package worker defines worker contracts for asynchronous evaluation.
package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"econlab/internal/domain/econ"
	"econlab/internal/domain/model"
	"econlab/pkg/logger"
	"econlab/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Job is what workers read off the queue.
type Job = model.Job

// Evaluator computes a model result for a job.
type Evaluator interface {
	Evaluate(ctx context.Context, kind econ.ModelKind, params econ.Params) (econ.Result, error)
}

// Recorder persists finished evaluations.
type Recorder interface {
	Record(ctx context.Context, rec model.Record) error
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Job
}

// Worker processes jobs and writes evaluation records using the
// provided interfaces.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker for processing evaluation jobs.
type InMemoryWorker struct {
	queue     Queue
	evaluator Evaluator
	recorder  Recorder
	name      string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, evaluator Evaluator, recorder Recorder, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:     queue,
		evaluator: evaluator,
		recorder:  recorder,
		name:      "worker",
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobChan := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case j, ok := <-jobChan:
			if !ok {
				// Channel closed, worker should stop.
				return
			}

			if err := w.processJob(ctx, j); err != nil {
				w.logger.Error(ctx, "error processing job", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processJob evaluates a single job and records the outcome. Evaluation
// failures are terminal for the job: they become infeasible or failed
// records, never retries.
func (w *InMemoryWorker) processJob(ctx context.Context, j Job) error {
	start := time.Now()
	defer func() {
		latency := time.Since(start).Milliseconds()
		metrics.RecordWorkerProcessingLatency(float64(latency))
	}()

	evalStart := time.Now()
	result, err := w.evaluator.Evaluate(ctx, j.Kind, j.Params)
	metrics.RecordEvaluationLatency(float64(time.Since(evalStart).Milliseconds()))

	rec := model.Record{
		JobID:     j.ID,
		RequestID: j.RequestID,
		Kind:      j.Kind,
		Params:    j.Params,
		Finished:  time.Now(),
	}

	switch {
	case err == nil:
		rec.Status = model.StatusDone
		rec.Outputs = result.Outputs
		rec.Tags = result.Tags
		metrics.RecordEvaluation(string(j.Kind), "done")
	case errors.Is(err, econ.ErrInfeasible):
		rec.Status = model.StatusInfeasible
		rec.Reason = err.Error()
		metrics.RecordEvaluation(string(j.Kind), "infeasible")
		metrics.RecordInfeasible(string(j.Kind))
	default:
		rec.Status = model.StatusFailed
		rec.Reason = err.Error()
		metrics.RecordEvaluation(string(j.Kind), "failed")
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "evaluation_error")
		w.logger.Error(ctx, "evaluation failed for job",
			logger.String("jobID", j.ID),
			logger.String("kind", string(j.Kind)),
			logger.Error(err),
		)
	}

	if err := w.recorder.Record(ctx, rec); err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "record_error")
		w.logger.Error(ctx, "recording result failed for job",
			logger.String("jobID", j.ID),
			logger.Error(err),
		)
		return fmt.Errorf("record job %s: %w", j.ID, err)
	}

	return nil
}

// Pool manages multiple workers.
type Pool struct {
	workers   []*InMemoryWorker
	queue     Queue
	evaluator Evaluator
	recorder  Recorder

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewPool creates a new worker pool. A non-positive workerCount scales
// with the number of CPUs.
func NewPool(workerCount int, queue Queue, evaluator Evaluator, recorder Recorder) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers:   make([]*InMemoryWorker, workerCount),
		queue:     queue,
		evaluator: evaluator,
		recorder:  recorder,
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewInMemoryWorker(
			queue,
			evaluator,
			recorder,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateWorkerCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Stop gracefully stops all workers.
func (p *Pool) Stop() {
	close(p.shutdown)

	for _, w := range p.workers {
		select {
		case <-w.done:
		case <-time.After(workerShutdownTimeout):
		}
	}
}

// Shutdown closes the queue and waits for all workers to drain.
func (p *Pool) Shutdown(ctx context.Context) error {
	// Close the queue first so no new jobs arrive.
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	close(p.shutdown)

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	return nil
}
