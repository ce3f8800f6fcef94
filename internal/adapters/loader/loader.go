// Package loader fetches the site datasets. Every failure degrades to the
// caller's default value; nothing is retried.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/aikyam/site/pkg/logger"
	"github.com/aikyam/site/pkg/metrics"
)

// Dataset file names.
const (
	CoreTeam        = "coreTeam.json"
	BoardMembers    = "boardMembers.json"
	UpcomingEvents  = "upcomingEvents.json"
	CompletedEvents = "completedEvents.json"
	Vendors         = "vendors.json"
	Gallery         = "gallery.json"
)

const (
	defaultTimeout = 5 * time.Second
	maxBodyBytes   = 4 << 20
)

// Result describes how one load went.
type Result struct {
	Name     string        `json:"name"`
	OK       bool          `json:"ok"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Option configures a Loader.
type Option func(*Loader)

// WithTimeout bounds each fetch.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// WithLogger sets the loader logger.
func WithLogger(lg logger.Logger) Option {
	return func(l *Loader) {
		if lg != nil {
			l.logger = lg
		}
	}
}

// Loader decodes datasets read through a Fetcher.
type Loader struct {
	fetcher Fetcher
	timeout time.Duration
	logger  logger.Logger
}

// New creates a Loader.
func New(f Fetcher, opts ...Option) *Loader {
	l := &Loader{
		fetcher: f,
		timeout: defaultTimeout,
		logger:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load decodes the named dataset. On any fetch, status or decode failure it
// returns def, logs a warning and counts the fallback.
func Load[T any](ctx context.Context, l *Loader, name string, def T) (T, Result) {
	start := time.Now()
	v, err := fetchInto[T](ctx, l, name)
	res := Result{Name: name, OK: err == nil, Duration: time.Since(start)}

	metrics.RecordDatasetLoadLatency(name, float64(res.Duration.Milliseconds()))
	if err != nil {
		res.Error = err.Error()
		metrics.RecordDatasetLoad(name, "fallback")
		l.logger.Warn(ctx, "dataset unavailable, using default",
			logger.String("dataset", name),
			logger.Duration("took", res.Duration),
			logger.Error(err),
		)
		return def, res
	}
	metrics.RecordDatasetLoad(name, "ok")
	l.logger.Debug(ctx, "dataset loaded", logger.String("dataset", name), logger.Duration("took", res.Duration))
	return v, res
}

func fetchInto[T any](ctx context.Context, l *Loader, name string) (T, error) {
	var v T
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	rc, err := l.fetcher.Fetch(ctx, name)
	if err != nil {
		return v, err
	}
	defer func() { _ = rc.Close() }()

	if err := json.NewDecoder(io.LimitReader(rc, maxBodyBytes)).Decode(&v); err != nil {
		return v, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return v, nil
}
