// Package queue provides the bounded in-memory queue that feeds
// recalculation jobs to the worker pool.
package queue

import (
	"context"
	"sync"

	"github.com/okian/rumble/internal/domain/model"
	"github.com/okian/rumble/pkg/metrics"
)

// defaultCapacity bounds the queue when no option overrides it.
const defaultCapacity = 10000

// Job is the payload type flowing through the queue.
type Job = model.RecalcJob

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a job. Returns false when the queue is full or closed.
	Enqueue(ctx context.Context, j Job) bool

	// Dequeue returns a channel delivering jobs as they become available.
	// The channel closes when the queue closes.
	Dequeue(ctx context.Context) <-chan Job

	// Len returns the current number of queued jobs.
	Len(ctx context.Context) int

	// Close shuts the queue down. No further enqueues succeed.
	Close() error
}

// InMemoryQueue implements Queue over a buffered channel.
type InMemoryQueue struct {
	jobs     chan Job
	capacity int
	mu       sync.RWMutex
	closed   bool
}

// NewInMemoryQueue creates a queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultCapacity,
	}
	for _, opt := range opts {
		opt(q)
	}
	q.jobs = make(chan Job, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	metrics.UpdateQueueUtilization(0)
	return q
}

// Enqueue adds a job without blocking.
func (q *InMemoryQueue) Enqueue(ctx context.Context, j Job) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError()
		return false
	}

	select {
	case q.jobs <- j:
		metrics.RecordQueueEnqueue()
		q.updateGauges()
		return true
	case <-ctx.Done():
		metrics.RecordQueueEnqueueError()
		return false
	default:
		metrics.RecordQueueEnqueueError()
		return false
	}
}

// Dequeue returns a channel delivering jobs until the queue closes or ctx
// is canceled.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Job {
	out := make(chan Job)
	go func() {
		defer close(out)
		for j := range q.jobs {
			select {
			case out <- j:
				metrics.RecordQueueDequeue()
				q.updateGauges()
			case <-ctx.Done():
				// The job was taken off the channel but never delivered;
				// put it back so another consumer can drain it.
				q.requeue(j)
				return
			}
		}
	}()
	return out
}

// requeue returns an undelivered job to the queue. Dropped when the queue
// is already closed or full.
func (q *InMemoryQueue) requeue(j Job) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return
	}
	select {
	case q.jobs <- j:
	default:
	}
}

// Len returns the current number of queued jobs.
func (q *InMemoryQueue) Len(_ context.Context) int {
	return len(q.jobs)
}

// Close shuts the queue down, letting consumers drain what remains.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.jobs)
	q.closed = true
	return nil
}

func (q *InMemoryQueue) updateGauges() {
	size := len(q.jobs)
	metrics.UpdateQueueSize(size)
	metrics.UpdateQueueUtilization(float64(size) / float64(q.capacity))
}
