// Package dedupe collapses duplicate recalculation requests.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"
)

// Tracker records in-flight recalculation keys so that a (participant,
// event) pair is queued at most once at a time.
type Tracker interface {
	// SeenAndRecord atomically checks whether key is already in flight and
	// records it if not. Returns true when the key was already recorded.
	SeenAndRecord(ctx context.Context, key string) bool

	// Unrecord releases a key once its job leaves the queue (or failed to
	// enqueue), allowing the next request for that key through.
	Unrecord(ctx context.Context, key string)

	Size() int64
}

// defaultMaxInFlight bounds the tracker; beyond it the oldest keys are
// evicted so a stuck worker cannot wedge submissions forever.
const defaultMaxInFlight = 50000

// inMemoryTracker implements Tracker with a map plus FIFO eviction order.
type inMemoryTracker struct {
	mu      sync.Mutex
	seen    map[string]bool
	order   []string
	maxSize int
	size    atomic.Int64
}

// NewInMemoryTracker creates a tracker with configuration options.
func NewInMemoryTracker(opts ...Option) Tracker {
	t := &inMemoryTracker{
		maxSize: defaultMaxInFlight,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.seen = make(map[string]bool)
	return t
}

func (t *inMemoryTracker) SeenAndRecord(_ context.Context, key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.seen[key] {
		return true
	}
	if t.maxSize > 0 && len(t.seen) >= t.maxSize {
		t.evictOldest()
	}
	t.seen[key] = true
	t.order = append(t.order, key)
	t.size.Add(1)
	return false
}

func (t *inMemoryTracker) Unrecord(_ context.Context, key string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.seen[key] {
		return
	}
	delete(t.seen, key)
	for i, k := range t.order {
		if k == key {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	t.size.Add(-1)
}

// evictOldest drops the longest-recorded key. Must hold t.mu.
func (t *inMemoryTracker) evictOldest() {
	if len(t.order) == 0 {
		return
	}
	oldest := t.order[0]
	t.order = t.order[1:]
	delete(t.seen, oldest)
	t.size.Add(-1)
}

func (t *inMemoryTracker) Size() int64 {
	return t.size.Load()
}
