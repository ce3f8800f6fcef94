// Package service provides the site service behind the HTTP API: it loads
// the datasets, owns the page state and applies donations.
package service

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/aikyam/site/internal/adapters/loader"
	"github.com/aikyam/site/internal/adapters/mq/queue"
	"github.com/aikyam/site/internal/adapters/mq/worker"
	"github.com/aikyam/site/internal/adapters/repository"
	"github.com/aikyam/site/internal/domain/addtocal"
	"github.com/aikyam/site/internal/domain/cards"
	"github.com/aikyam/site/internal/domain/countdown"
	"github.com/aikyam/site/internal/domain/dedupe"
	"github.com/aikyam/site/internal/domain/donation"
	"github.com/aikyam/site/pkg/logger"
	"github.com/aikyam/site/pkg/metrics"
)

const (
	defaultQueueSize  = 1024
	defaultDedupeSize = 10_000
	defaultGoal       = 10_000
	defaultThreshold  = 250
	defaultCardExtent = 296
	defaultLoopSpeed  = 0.5
	gallerySpeed      = 0.35
	defaultDataDir    = "data"
	drainTimeout      = 5 * time.Second
)

var defaultPresets = []float64{25, 50, 100, 250}

// Service implements the API dependencies for the site.
type Service struct {
	mu sync.RWMutex

	// Core components
	state    *State
	loader   *loader.Loader
	renderer *cards.Renderer
	calLinks *addtocal.Builder
	ledger   *donation.Ledger
	board    repository.Store
	deduper  dedupe.Deduper
	queue    *queue.InMemoryQueue
	worker   *worker.InMemoryWorker
	timer    *countdown.Timer
	broker   *Broker

	// Configuration
	fetcher         loader.Fetcher
	prober          cards.Prober
	palette         cards.Palette
	loc             *time.Location
	firstWeekday    time.Weekday
	dataTimeout     time.Duration
	refreshInterval time.Duration
	countdownTick   time.Duration
	goal            float64
	presets         []float64
	threshold       float64
	queueSize       int
	dedupeSize      int
	cardExtent      float64
	loopSpeed       float64
	now             func() time.Time

	// State
	started      bool
	runCtx       context.Context
	cancel       context.CancelFunc
	cancelWorker context.CancelFunc
	stopCh       chan struct{}
	refreshDone  chan struct{}

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		state:         newState(),
		broker:        NewBroker(),
		palette:       cards.NewPalette(nil, "#607D8B"),
		loc:           time.Local,
		firstWeekday:  time.Sunday,
		dataTimeout:   5 * time.Second,
		countdownTick: time.Second,
		goal:          defaultGoal,
		presets:       defaultPresets,
		threshold:     defaultThreshold,
		queueSize:     defaultQueueSize,
		dedupeSize:    defaultDedupeSize,
		cardExtent:    defaultCardExtent,
		loopSpeed:     defaultLoopSpeed,
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.renderer = cards.NewRenderer(
		cards.WithPalette(s.palette),
		cards.WithLocation(s.loc),
		cards.WithProber(s.prober),
	)
	s.calLinks = addtocal.NewBuilder(addtocal.WithLocation(s.loc))
	s.board = repository.NewMemoryStore()
	s.ledger = donation.NewLedger(
		donation.WithGoal(s.goal),
		donation.WithThreshold(s.threshold),
		donation.WithLeaderboard(s.board),
		donation.WithClock(s.now),
		donation.WithLogger(s.logger.Named("ledger")),
	)
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.timer = countdown.NewTimer(
		countdown.WithTick(s.countdownTick),
		countdown.WithClock(s.now),
		countdown.WithLogger(s.logger.Named("countdown")),
	)

	return s
}

// Start starts the donation worker and the optional refresh loop, then
// runs the first bootstrap.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}

	s.logger.Info(ctx, "starting site service...")

	if s.fetcher == nil {
		s.fetcher = loader.NewFSFetcher(os.DirFS(defaultDataDir))
	}
	s.loader = loader.New(s.fetcher,
		loader.WithTimeout(s.dataTimeout),
		loader.WithLogger(s.logger.Named("loader")),
	)
	s.queue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.worker = worker.NewInMemoryWorker(s.queue, s.ledger,
		worker.WithLogger(s.logger),
		worker.WithOnApplied(s.onApplied),
	)

	// The worker outlives runCtx so Stop can drain the queue first.
	var workerCtx context.Context
	workerCtx, s.cancelWorker = context.WithCancel(context.WithoutCancel(ctx))
	s.runCtx, s.cancel = context.WithCancel(context.WithoutCancel(ctx))
	s.stopCh = make(chan struct{})
	s.refreshDone = nil
	go s.worker.Run(workerCtx)

	if s.refreshInterval > 0 {
		s.refreshDone = make(chan struct{})
		go s.refreshLoop(s.runCtx, s.refreshInterval, s.stopCh, s.refreshDone)
	}

	s.started = true
	s.mu.Unlock()

	if _, err := s.Bootstrap(ctx); err != nil {
		return err
	}

	s.logger.Info(ctx, "site service started",
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Float64("goal", s.goal),
		logger.String("location", s.loc.String()),
		logger.Duration("refresh", s.refreshInterval),
	)
	return nil
}

// Stop gracefully shuts down the service. Queued donations are applied
// before the worker exits.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	stopCh, refreshDone := s.stopCh, s.refreshDone
	s.mu.Unlock()

	ctx := context.Background()
	s.logger.Info(ctx, "stopping site service...")

	// Signal refresh loop to stop
	close(stopCh)
	s.cancel()
	if refreshDone != nil {
		<-refreshDone
	}

	s.timer.Stop()

	// Closing the queue lets the worker drain what is left and return.
	_ = s.queue.Close()
	drainCtx, cancel := context.WithTimeout(ctx, drainTimeout)
	defer cancel()
	select {
	case <-s.worker.Done():
	case <-drainCtx.Done():
		s.logger.Warn(ctx, "donation queue not drained in time", logger.Int("remaining", s.queue.Len(ctx)))
		_ = s.worker.Shutdown(ctx)
	}
	s.cancelWorker()

	s.logger.Info(ctx, "site service stopped")
}

// Started reports whether Start has completed.
func (s *Service) Started() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

// Broker exposes the countdown stream.
func (s *Service) Broker() *Broker { return s.broker }

func (s *Service) refreshLoop(ctx context.Context, every time.Duration, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Bootstrap(ctx); err != nil {
				s.logger.Warn(ctx, "refresh skipped", logger.Error(err))
			}
		}
	}
}

func (s *Service) onApplied(sub donation.Submission, r donation.Receipt) {
	s.logger.Debug(context.Background(), "donation applied",
		logger.String("submission", sub.ID),
		logger.String("receipt", r.ID),
		logger.Float64("amount", r.AcceptedAmount),
		logger.Bool("leaderboard", r.Leaderboard),
	)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":    s.started,
		"queueSize":  s.queueSize,
		"dedupeSize": s.dedupeSize,
		"goal":       s.goal,
	}

	if s.started {
		queueLen := s.queue.Len(ctx)
		snap := s.ledger.Snapshot()
		sections := s.state.Snapshot()

		datasets := make(map[string]bool, len(sections.Loads))
		for name, r := range sections.Loads {
			datasets[name] = r.OK
		}

		stats["queueLength"] = queueLen
		stats["raised"] = snap.Raised
		stats["donors"] = snap.Donors
		stats["leaderboardEntries"] = s.board.Count(ctx)
		stats["seenSubmissions"] = s.deduper.Size()
		stats["countdownRunning"] = s.timer.Running()
		stats["streamSubscribers"] = s.broker.Count()
		stats["datasets"] = datasets
		stats["loadedAt"] = sections.LoadedAt

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateDonationTotals(snap.Raised, snap.Donors)
	}

	return stats
}
