package service

import (
	"context"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aikyam/site/internal/adapters/loader"
	"github.com/aikyam/site/internal/domain/countdown"
	"github.com/aikyam/site/internal/domain/model"
	"github.com/aikyam/site/pkg/logger"
	"github.com/aikyam/site/pkg/metrics"
)

// Report summarises one bootstrap run.
type Report struct {
	Results  []loader.Result `json:"results"`
	Failed   int             `json:"failed"`
	Duration time.Duration   `json:"duration"`
	At       time.Time       `json:"at"`
}

// settle loads one dataset and hands it to publish as soon as it is done,
// independent of the other loads.
func settle[T any](ctx context.Context, l *loader.Loader, name string, def T, publish func(T, loader.Result)) func() error {
	return func() error {
		v, r := loader.Load(ctx, l, name, def)
		publish(v, r)
		return nil
	}
}

// Bootstrap fetches every dataset concurrently, publishes each section as
// its load settles and returns after all of them have. A failed load
// leaves that section empty. The countdown is restarted afterwards.
func (s *Service) Bootstrap(ctx context.Context) (Report, error) {
	s.mu.RLock()
	started, l := s.started, s.loader
	s.mu.RUnlock()
	if !started {
		return Report{}, ErrNotStarted
	}

	begin := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(settle(gctx, l, loader.CoreTeam, []model.Person{}, s.state.setTeam))
	g.Go(settle(gctx, l, loader.BoardMembers, model.Board{}, s.state.setBoard))
	g.Go(settle(gctx, l, loader.UpcomingEvents, []model.Event{}, s.state.setUpcoming))
	g.Go(settle(gctx, l, loader.CompletedEvents, []model.Event{}, s.state.setPast))
	g.Go(settle(gctx, l, loader.Vendors, []model.Vendor{}, s.state.setVendors))
	g.Go(settle(gctx, l, loader.Gallery, []model.GalleryItem{}, s.state.setGallery))
	_ = g.Wait()

	at := s.now()
	s.state.setLoadedAt(at)
	sections := s.state.Snapshot()
	s.logInvalidEvents(ctx, sections.Upcoming)
	s.restartCountdown(ctx, sections.Upcoming, at)

	report := Report{Duration: time.Since(begin), At: at}
	for _, r := range sections.Loads {
		report.Results = append(report.Results, r)
		if !r.OK {
			report.Failed++
		}
	}
	slices.SortFunc(report.Results, func(a, b loader.Result) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})

	metrics.RecordBootstrap(report.Duration)
	s.logger.Info(ctx, "bootstrap complete",
		logger.Int("datasets", len(report.Results)),
		logger.Int("failed", report.Failed),
		logger.Duration("took", report.Duration),
	)
	return report, nil
}

// logInvalidEvents reports events that claim a date but carry no usable
// start. They are ordered and counted down like TBD events.
func (s *Service) logInvalidEvents(ctx context.Context, events []model.Event) {
	for _, e := range events {
		if e.Invalid(s.loc) {
			s.logger.Warn(ctx, "event start unusable, treating as TBD",
				logger.String("event", e.ID),
				logger.String("title", e.Title),
				logger.String("start", string(e.Start)),
			)
		}
	}
}

func (s *Service) restartCountdown(ctx context.Context, events []model.Event, now time.Time) {
	var target *countdown.Target
	if t, ok := countdown.Select(events, now, s.loc); ok {
		target = &t
	}
	s.state.setTarget(target)

	s.mu.RLock()
	runCtx := s.runCtx
	s.mu.RUnlock()
	if runCtx == nil {
		runCtx = ctx
	}
	s.timer.Start(runCtx, target, s.broker.Publish)
}
