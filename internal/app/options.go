package service

import (
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/aikyam/site/internal/adapters/loader"
	"github.com/aikyam/site/internal/config"
	"github.com/aikyam/site/internal/domain/cards"
	"github.com/aikyam/site/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithQueueSize sets the maximum number of queued donations.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets how many submission ids are remembered.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithFetcher sets where datasets are read from.
func WithFetcher(f loader.Fetcher) Option {
	return func(s *Service) {
		if f != nil {
			s.fetcher = f
		}
	}
}

// WithProber lets the service check image sources before handing them out.
func WithProber(p cards.Prober) Option {
	return func(s *Service) {
		s.prober = p
	}
}

// WithLocation sets the zone the calendar and countdown run in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithFirstWeekday sets the first column of the month grid.
func WithFirstWeekday(d time.Weekday) Option {
	return func(s *Service) {
		if d == time.Sunday || d == time.Monday {
			s.firstWeekday = d
		}
	}
}

// WithDataTimeout bounds each dataset fetch.
func WithDataTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.dataTimeout = d
		}
	}
}

// WithRefreshInterval re-runs the bootstrap periodically. Zero disables it.
func WithRefreshInterval(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.refreshInterval = d
		}
	}
}

// WithCountdownTick sets the countdown publish interval.
func WithCountdownTick(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.countdownTick = d
		}
	}
}

// WithDonationGoal sets the fixed fundraising goal.
func WithDonationGoal(goal float64) Option {
	return func(s *Service) {
		if goal > 0 {
			s.goal = goal
		}
	}
}

// WithDonationPresets sets the preset amounts offered by the form.
func WithDonationPresets(presets []float64) Option {
	return func(s *Service) {
		if len(presets) > 0 {
			s.presets = append([]float64(nil), presets...)
		}
	}
}

// WithLeaderboardThreshold sets the minimum amount shown on the leaderboard.
func WithLeaderboardThreshold(t float64) Option {
	return func(s *Service) {
		if t > 0 {
			s.threshold = t
		}
	}
}

// WithCategoryColors sets the vendor placeholder palette.
func WithCategoryColors(colors map[string]string, def string) Option {
	return func(s *Service) {
		s.palette = cards.NewPalette(colors, def)
	}
}

// WithLoopGeometry sets the per-card extent and scroll speed of the loops.
func WithLoopGeometry(cardExtent, speed float64) Option {
	return func(s *Service) {
		if cardExtent > 0 {
			s.cardExtent = cardExtent
		}
		if speed > 0 {
			s.loopSpeed = speed
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// OptionsFromConfig maps cfg onto service options. Datasets come from
// cfg.DataURL when set, then cfg.DataDir, then embedded.
func OptionsFromConfig(cfg *config.Config, embedded fs.FS) ([]Option, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	first, err := cfg.FirstWeekday()
	if err != nil {
		return nil, err
	}

	var (
		fetcher loader.Fetcher
		assets  fs.FS
	)
	switch {
	case cfg.DataURL != "":
		hf, err := loader.NewHTTPFetcher(cfg.DataURL, &http.Client{Timeout: cfg.DataTimeout()})
		if err != nil {
			return nil, fmt.Errorf("data_url: %w", err)
		}
		fetcher = hf
	case cfg.DataDir != "":
		fetcher = loader.NewFSFetcher(os.DirFS(cfg.DataDir))
	default:
		if embedded == nil {
			return nil, fmt.Errorf("%w: no data source configured", config.ErrInvalidConfig)
		}
		data, err := fs.Sub(embedded, "data")
		if err != nil {
			return nil, fmt.Errorf("embedded data: %w", err)
		}
		fetcher = loader.NewFSFetcher(data)
		assets = embedded
	}

	opts := []Option{
		WithFetcher(fetcher),
		WithLocation(loc),
		WithFirstWeekday(first),
		WithDataTimeout(cfg.DataTimeout()),
		WithRefreshInterval(cfg.RefreshInterval()),
		WithCountdownTick(cfg.CountdownTick()),
		WithDonationGoal(cfg.DonationGoal),
		WithDonationPresets(cfg.DonationPresets),
		WithLeaderboardThreshold(cfg.LeaderboardThreshold),
		WithQueueSize(cfg.QueueSize),
		WithDedupeSize(cfg.DedupeSize),
		WithCategoryColors(cfg.CategoryColors, cfg.DefaultCategoryColor),
		WithLoopGeometry(cfg.CardExtentPX, cfg.LoopSpeedPX),
	}
	if assets != nil {
		opts = append(opts, WithProber(loader.NewAssetProber(assets)))
	}
	return opts, nil
}
