package worker

import (
	"github.com/aikyam/site/internal/domain/donation"
	"github.com/aikyam/site/pkg/logger"
)

// Option applies a configuration option to the InMemoryWorker.
type Option func(*InMemoryWorker)

// WithName sets the worker name for identification and logging.
func WithName(name string) Option {
	return func(w *InMemoryWorker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(l logger.Logger) Option {
	return func(w *InMemoryWorker) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithOnApplied registers a callback for every accepted submission.
func WithOnApplied(fn func(donation.Submission, donation.Receipt)) Option {
	return func(w *InMemoryWorker) {
		w.onApplied = fn
	}
}
