// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New returns a Config populated with defaults.
// - Load layers defaults, an optional YAML file and AIKYAM_* environment variables.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat selects the slog handler: text or json.
	LogFormat string `koanf:"log_format"`
	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DataURL is the base URL datasets are fetched from. Empty serves the embedded copies.
	DataURL string `koanf:"data_url"`
	// DataDir points at a directory of datasets on disk; used when DataURL is empty.
	DataDir string `koanf:"data_dir"`
	// DataTimeoutMS bounds a single dataset fetch.
	DataTimeoutMS int `koanf:"data_timeout_ms"`
	// RefreshIntervalS re-runs the bootstrap periodically; 0 disables it.
	RefreshIntervalS int `koanf:"refresh_interval_s"`

	// Timezone anchors the calendar grid and countdown, e.g. "America/Chicago".
	Timezone string `koanf:"timezone"`
	// WeekStart is the first column of the month grid: sunday or monday.
	WeekStart string `koanf:"week_start"`
	// CountdownTickMS is the countdown publish interval.
	CountdownTickMS int `koanf:"countdown_tick_ms"`

	// DonationGoal is the fixed fundraising goal.
	DonationGoal float64 `koanf:"donation_goal"`
	// DonationPresets are the selectable preset amounts.
	DonationPresets []float64 `koanf:"donation_presets"`
	// LeaderboardThreshold is the minimum amount that lands on the leaderboard.
	LeaderboardThreshold float64 `koanf:"leaderboard_threshold"`
	// MaxLeaderboardLimit caps GET /api/donations?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`
	// QueueSize bounds the donation queue.
	QueueSize int `koanf:"queue_size"`
	// DedupeSize bounds the number of remembered submission ids.
	DedupeSize int `koanf:"dedupe_size"`

	// CategoryColors maps vendor categories to placeholder colours.
	CategoryColors map[string]string `koanf:"category_colors"`
	// DefaultCategoryColor is used for unknown categories.
	DefaultCategoryColor string `koanf:"default_category_color"`
	// CardExtentPX is the width of one card plus its gap in a scrolling loop.
	CardExtentPX float64 `koanf:"card_extent_px"`
	// LoopSpeedPX is the scroll offset advanced per animation tick.
	LoopSpeedPX float64 `koanf:"loop_speed_px"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		LogFormat:            "text",
		Addr:                 ":9080",
		DataTimeoutMS:        5000,
		RefreshIntervalS:     0,
		Timezone:             "Local",
		WeekStart:            "sunday",
		CountdownTickMS:      1000,
		DonationGoal:         10_000,
		DonationPresets:      []float64{25, 50, 100, 250},
		LeaderboardThreshold: 250,
		MaxLeaderboardLimit:  100,
		QueueSize:            1024,
		DedupeSize:           10_000,
		CategoryColors: map[string]string{
			"Services":  "#4CAF50",
			"Food":      "#FF9800",
			"Education": "#2196F3",
			"Boutique":  "#9C27B0",
		},
		DefaultCategoryColor: "#607D8B",
		CardExtentPX:         296,
		LoopSpeedPX:          0.5,
	}
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, c.Timezone, err)
	}
	return loc, nil
}

// FirstWeekday resolves WeekStart.
func (c *Config) FirstWeekday() (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(c.WeekStart)) {
	case "", "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	default:
		return time.Sunday, fmt.Errorf("%w: week_start must be sunday or monday, got %q", ErrInvalidConfig, c.WeekStart)
	}
}

// DataTimeout returns DataTimeoutMS as a duration.
func (c *Config) DataTimeout() time.Duration {
	return time.Duration(c.DataTimeoutMS) * time.Millisecond
}

// RefreshInterval returns RefreshIntervalS as a duration.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalS) * time.Second
}

// CountdownTick returns CountdownTickMS as a duration.
func (c *Config) CountdownTick() time.Duration {
	return time.Duration(c.CountdownTickMS) * time.Millisecond
}

// Validate checks the fields the service cannot run without.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.FirstWeekday(); err != nil {
		return err
	}
	if c.DonationGoal <= 0 {
		return fmt.Errorf("%w: donation_goal must be positive", ErrInvalidConfig)
	}
	if c.CountdownTickMS <= 0 {
		return fmt.Errorf("%w: countdown_tick_ms must be positive", ErrInvalidConfig)
	}
	for _, p := range c.DonationPresets {
		if p <= 0 {
			return fmt.Errorf("%w: donation_presets must be positive, got %v", ErrInvalidConfig, p)
		}
	}
	return nil
}
