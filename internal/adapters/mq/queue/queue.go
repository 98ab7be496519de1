// Package queue provides the bounded in-memory queue carrying overall
// recompute requests from the submission path to the recompute worker.
package queue

import (
	"context"
	"sync"

	"github.com/MaryEddythe/tabulator/internal/domain/model"
	"github.com/MaryEddythe/tabulator/pkg/metrics"
)

const defaultCapacity = 1024

// Request is the payload type flowing through the queue.
type Request = model.RecomputeRequest

// Queue provides non-blocking enqueue and channel-based dequeue
// semantics for recompute requests.
type Queue interface {
	// Enqueue adds a request. Returns false when the queue is full or
	// closed; the caller treats that as a dropped best-effort trigger.
	Enqueue(ctx context.Context, req Request) bool

	// Dequeue returns a channel delivering requests until the queue is
	// closed.
	Dequeue(ctx context.Context) <-chan Request

	// Len returns the number of waiting requests.
	Len(ctx context.Context) int

	// Close shuts the queue down; the dequeue channel is closed after
	// draining.
	Close() error
}

// InMemoryQueue implements Queue with a buffered channel.
type InMemoryQueue struct {
	requests chan Request
	capacity int
	mu       sync.RWMutex
	closed   bool
}

// NewInMemoryQueue creates a queue with the configured capacity.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.requests = make(chan Request, q.capacity)
	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	return q
}

// Enqueue adds a request without blocking.
func (q *InMemoryQueue) Enqueue(ctx context.Context, req Request) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return false
	}
	select {
	case q.requests <- req:
		metrics.UpdateQueueSize(len(q.requests))
		return true
	case <-ctx.Done():
		return false
	default:
		metrics.RecordRecomputeDropped()
		return false
	}
}

// Dequeue returns a channel delivering requests as they arrive.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Request {
	out := make(chan Request)
	go func() {
		defer close(out)
		for req := range q.requests {
			select {
			case out <- req:
				metrics.UpdateQueueSize(len(q.requests))
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the number of waiting requests.
func (q *InMemoryQueue) Len(ctx context.Context) int {
	return len(q.requests)
}

// Close shuts down the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.requests)
	q.closed = true
	return nil
}
