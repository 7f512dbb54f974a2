// Package dedupe tracks request ids for idempotent job submission.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"
)

// Default cache bound.
const defaultMaxSize = 100_000

// Deduper records seen request ids to keep job submission at-most-once.
type Deduper interface {
	// SeenAndRecord atomically checks whether id was seen and records it
	// if not. Returns true if id was already seen.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord removes id from the seen set. Used when a submission was
	// marked seen but could not be enqueued, so the client may retry.
	Unrecord(ctx context.Context, id string)

	// Size returns the number of ids currently tracked.
	Size() int64
}

// entry is a doubly linked node in insertion order, oldest at the tail.
type entry struct {
	id         string
	prev, next *entry
}

// inMemoryDeduper bounds its memory by evicting the oldest id once the
// configured size is reached. With maxSize <= 0 it tracks ids unbounded.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]*entry
	head    *entry // newest
	tail    *entry // oldest
	maxSize int
	size    atomic.Int64
}

// NewInMemoryDeduper creates a deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]*entry)
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return true
	}

	if d.maxSize > 0 && len(d.seen) >= d.maxSize {
		d.evictOldest()
	}

	e := &entry{id: id, next: d.head}
	if d.head != nil {
		d.head.prev = e
	}
	d.head = e
	if d.tail == nil {
		d.tail = e
	}
	d.seen[id] = e
	d.size.Add(1)
	return false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.seen[id]
	if !ok {
		return
	}
	d.unlink(e)
	delete(d.seen, id)
	d.size.Add(-1)
}

func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}

// evictOldest drops the tail entry. Caller holds d.mu.
func (d *inMemoryDeduper) evictOldest() {
	if d.tail == nil {
		return
	}
	old := d.tail
	d.unlink(old)
	delete(d.seen, old.id)
	d.size.Add(-1)
}

// unlink removes e from the list. Caller holds d.mu.
func (d *inMemoryDeduper) unlink(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		d.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		d.tail = e.prev
	}
	e.prev, e.next = nil, nil
}
