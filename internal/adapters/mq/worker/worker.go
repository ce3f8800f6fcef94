// Package worker applies queued donation submissions to the ledger. A
// single worker consumes the queue so the ledger changes in submission
// order.
package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/aikyam/site/internal/domain/donation"
	"github.com/aikyam/site/pkg/logger"
	"github.com/aikyam/site/pkg/metrics"
)

// Applier applies one submission.
type Applier interface {
	Submit(ctx context.Context, s donation.Submission) (donation.Receipt, error)
}

// Queue defines how workers receive submissions.
type Queue interface {
	Dequeue(ctx context.Context) <-chan donation.Submission
}

// Worker processes submissions.
type Worker interface {
	// Run starts the worker loop until ctx is canceled or the queue closes.
	Run(ctx context.Context)

	// Shutdown stops the worker.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue     Queue
	applier   Applier
	name      string
	onApplied func(donation.Submission, donation.Receipt)

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker.
func NewInMemoryWorker(q Queue, a Applier, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    q,
		applier:  a,
		name:     "donation-worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.Named(w.name)
	return w
}

// Run starts the worker loop. When the queue is closed the loop drains
// what is left and returns.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	ch := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case s, ok := <-ch:
			if !ok {
				return
			}
			if err := w.process(ctx, s); err != nil {
				w.logger.Warn(ctx, "submission not applied", logger.String("submission", s.ID), logger.Error(err))
			}
		}
	}
}

// Shutdown signals the loop to stop and waits for it.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	select {
	case <-w.shutdown:
	default:
		close(w.shutdown)
	}

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// Done is closed once Run has returned.
func (w *InMemoryWorker) Done() <-chan struct{} { return w.done }

func (w *InMemoryWorker) process(ctx context.Context, s donation.Submission) error {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	r, err := w.applier.Submit(ctx, s)
	if err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "apply_error")
		return fmt.Errorf("apply submission %s: %w", s.ID, err)
	}
	if w.onApplied != nil {
		w.onApplied(s, r)
	}
	return nil
}
