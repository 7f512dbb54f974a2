package repository

import (
	"context"
	"sync"

	"econlab/internal/domain/model"
	"econlab/pkg/metrics"
)

// Default record bound for the in-memory store.
const defaultMaxRecords = 10_000

// MemoryStore keeps records in memory, bounded by evicting the oldest
// once the configured size is reached.
type MemoryStore struct {
	mu         sync.RWMutex
	byJob      map[string]*memRecord
	head       *memRecord // newest
	tail       *memRecord // oldest
	maxRecords int
}

// memRecord is a doubly linked node in finish order, oldest at the tail.
type memRecord struct {
	rec        model.Record
	prev, next *memRecord
}

// NewMemoryStore creates an in-memory history store with configuration
// options.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{maxRecords: defaultMaxRecords}
	for _, opt := range opts {
		opt(s)
	}
	s.byJob = make(map[string]*memRecord)
	return s
}

// Record stores a finished evaluation, evicting the oldest record when
// the store is full. Re-recording a job id moves it to the front.
func (s *MemoryStore) Record(_ context.Context, rec model.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.byJob[rec.JobID]; ok {
		s.unlink(old)
		delete(s.byJob, rec.JobID)
	}

	s.insert(rec)
	return nil
}

// RecordIfAbsent stores the record only when the job id is not yet known.
func (s *MemoryStore) RecordIfAbsent(_ context.Context, rec model.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byJob[rec.JobID]; ok {
		return nil
	}
	s.insert(rec)
	return nil
}

// insert links rec in at the front, evicting the oldest record when the
// store is full. Caller holds s.mu.
func (s *MemoryStore) insert(rec model.Record) {
	if s.maxRecords > 0 && len(s.byJob) >= s.maxRecords {
		s.evictOldest()
	}

	n := &memRecord{rec: rec, next: s.head}
	if s.head != nil {
		s.head.prev = n
	}
	s.head = n
	if s.tail == nil {
		s.tail = n
	}
	s.byJob[rec.JobID] = n

	metrics.UpdateHistorySize(len(s.byJob))
}

// Get returns the record for a job id.
func (s *MemoryStore) Get(_ context.Context, jobID string) (model.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.byJob[jobID]
	if !ok {
		return model.Record{}, ErrNotFound
	}
	return n.rec, nil
}

// Recent returns up to n records, most recently finished first.
func (s *MemoryStore) Recent(_ context.Context, n int) ([]model.Record, error) {
	if n <= 0 {
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Record, 0, n)
	for cur := s.head; cur != nil && len(out) < n; cur = cur.next {
		out = append(out, cur.rec)
	}
	return out, nil
}

// Count returns the number of records kept.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byJob)
}

// CountByStatus returns the number of kept records per job status.
func (s *MemoryStore) CountByStatus(_ context.Context) map[model.JobStatus]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[model.JobStatus]int)
	for cur := s.head; cur != nil; cur = cur.next {
		counts[cur.rec.Status]++
	}
	return counts
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }

// evictOldest drops the tail record. Caller holds s.mu.
func (s *MemoryStore) evictOldest() {
	if s.tail == nil {
		return
	}
	old := s.tail
	s.unlink(old)
	delete(s.byJob, old.rec.JobID)
}

// unlink removes n from the list. Caller holds s.mu.
func (s *MemoryStore) unlink(n *memRecord) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		s.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		s.tail = n.prev
	}
	n.prev, n.next = nil, nil
}
