// Package sitecheck drives a running site end to end: it checks every
// section, reads the countdown stream and submits concurrent donations,
// then verifies the ledger applied each distinct submission exactly once.
package sitecheck

import (
	"context"
	"fmt"
	"time"

	"github.com/aikyam/site/pkg/logger"
)

// Run executes the complete site check.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get()

	log.Info(ctx, "starting site check",
		logger.String("baseURL", config.BaseURL),
		logger.Int("donations", config.NumDonations),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout),
		logger.Float64("duplicateRate", config.DuplicateRate))

	client := newHTTPClient(config.BaseURL, config.Timeout)

	// Step 1: Check service health
	if err := client.getJSON(ctx, "/healthz", nil); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Every section renders
	if err := checkSections(ctx, client); err != nil {
		return fmt.Errorf("section check failed: %w", err)
	}

	// Step 3: The countdown streams
	if err := checkCountdown(ctx, client, config.Timeout); err != nil {
		return fmt.Errorf("countdown check failed: %w", err)
	}

	// Step 4: Baseline the ledger
	var before Panel
	if err := client.getJSON(ctx, fmt.Sprintf("/api/donations?limit=%d", leaderboardLimit), &before); err != nil {
		return fmt.Errorf("donation panel failed: %w", err)
	}

	// Step 5: Generate and submit donations
	donations := generateDonations(ctx, config, before.Presets, stats)
	if err := submitDonations(ctx, config, client, donations, stats); err != nil {
		return fmt.Errorf("donation submission failed: %w", err)
	}
	if stats.Failed > 0 || stats.Rejected > 0 {
		return fmt.Errorf("%d donations failed and %d were rejected", stats.Failed, stats.Rejected)
	}

	// Step 6: Wait for the ledger and verify it
	total, distinct := expectedTotal(donations)
	stats.Expected = total
	after, err := waitForLedger(ctx, client, before.Donors+distinct, config.Settle)
	if err != nil {
		return err
	}
	stats.RaisedFrom, stats.RaisedTo = before.Raised, after.Raised
	if err := verifyLedger(ctx, before, after, distinct, total); err != nil {
		return err
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	log.Info(ctx, "site check passed")
	return nil
}

// displayFinalStats logs the final check statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var perSecond float64
	if stats.Duration > 0 {
		perSecond = float64(stats.Submitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("generated", stats.Generated),
		logger.Int("submitted", stats.Submitted),
		logger.Int("accepted", stats.Accepted),
		logger.Int("duplicate", stats.Duplicate),
		logger.Float64("expected", stats.Expected),
		logger.Float64("raisedFrom", stats.RaisedFrom),
		logger.Float64("raisedTo", stats.RaisedTo),
		logger.Duration("duration", stats.Duration),
		logger.Float64("donationsPerSecond", perSecond))
}
