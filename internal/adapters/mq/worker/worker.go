// Package worker runs the overall recompute loop: it consumes requests
// from the queue and performs full derived-table rebuilds, one at a
// time. Rebuild failures are logged and counted, never surfaced to the
// submitter that triggered them.
package worker

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/MaryEddythe/tabulator/internal/adapters/mq/queue"
	"github.com/MaryEddythe/tabulator/pkg/logger"
	"github.com/MaryEddythe/tabulator/pkg/metrics"
)

const shutdownTimeout = 10 * time.Second

// Worker states.
const (
	stateIdle int32 = iota
	stateRecomputing
)

// Rebuilder performs one full overall rebuild from current source data.
type Rebuilder interface {
	RebuildOverall(ctx context.Context) error
}

// Queue defines how the worker receives requests.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Request
}

// Worker consumes recompute requests and drives the Rebuilder.
type Worker struct {
	queue     Queue
	rebuilder Rebuilder
	name      string
	state     atomic.Int32

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// New creates a recompute worker.
func New(q Queue, rebuilder Rebuilder, opts ...Option) *Worker {
	w := &Worker{
		queue:     q,
		rebuilder: rebuilder,
		name:      "recompute",
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}
	return w
}

// Run processes requests until ctx is canceled, the queue closes, or
// Shutdown is called.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	requests := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case req, ok := <-requests:
			if !ok {
				return
			}
			w.process(ctx, req)
		}
	}
}

// Recomputing reports whether a rebuild is currently in flight.
func (w *Worker) Recomputing() bool {
	return w.state.Load() == stateRecomputing
}

// Shutdown stops the worker, waiting for an in-flight rebuild to finish.
func (w *Worker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	waitCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	select {
	case <-w.done:
		return nil
	case <-waitCtx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("worker shutdown: %w", waitCtx.Err())
	}
}

func (w *Worker) process(ctx context.Context, req queue.Request) {
	w.state.Store(stateRecomputing)
	defer w.state.Store(stateIdle)

	start := time.Now()
	err := w.rebuilder.RebuildOverall(ctx)
	elapsed := time.Since(start)

	if err != nil {
		metrics.RecordRecomputeFailure()
		w.logger.Error(ctx, "overall rebuild failed",
			logger.String("requestID", req.RequestID),
			logger.String("reason", req.Reason),
			logger.Error(err),
		)
		return
	}

	metrics.RecordRecomputeRun(elapsed.Seconds())
	metrics.UpdateLastRecompute(float64(time.Now().Unix()))
	w.logger.Debug(ctx, "overall rebuild complete",
		logger.String("requestID", req.RequestID),
		logger.String("reason", req.Reason),
		logger.Float64("seconds", elapsed.Seconds()),
	)
}
