package sitecheck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aikyam/site/pkg/logger"
)

// Verification errors.
var (
	ErrMissingSection = errors.New("section missing")
	ErrLedgerMismatch = errors.New("ledger mismatch")
	ErrLeaderboard    = errors.New("leaderboard out of order")
	ErrCountdown      = errors.New("countdown stream invalid")
)

// checkSections fetches the page and every section endpoint concurrently.
func checkSections(ctx context.Context, client *HTTPClient) error {
	logger.Get().Info(ctx, "checking sections")

	var page map[string]json.RawMessage
	if err := client.getJSON(ctx, "/api/bootstrap", &page); err != nil {
		return err
	}
	for _, key := range sections {
		if _, ok := page[key]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingSection, key)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, path := range []string{
		"/api/team", "/api/board", "/api/events/upcoming", "/api/events/past",
		"/api/calendar", "/api/schedule", "/api/countdown", "/api/vendors",
		"/api/vendors/marquee", "/api/gallery", "/api/events.ics",
	} {
		g.Go(func() error {
			return client.getJSON(gctx, path, nil)
		})
	}
	return g.Wait()
}

// checkCountdown reads one event from the countdown stream.
func checkCountdown(ctx context.Context, client *HTTPClient, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	event, data, err := client.firstEvent(ctx, "/api/countdown/stream")
	if err != nil {
		return err
	}
	if event != "countdown" {
		return fmt.Errorf("%w: event %q", ErrCountdown, event)
	}
	var display struct {
		State string `json:"state"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal([]byte(data), &display); err != nil {
		return fmt.Errorf("%w: %v", ErrCountdown, err)
	}
	switch display.State {
	case "none", "counting", "live":
	default:
		return fmt.Errorf("%w: state %q", ErrCountdown, display.State)
	}
	logger.Get().Info(ctx, "countdown streaming",
		logger.String("state", display.State),
		logger.String("title", display.Title))
	return nil
}

// waitForLedger polls the donation panel until the donor count reaches
// want or settle elapses.
func waitForLedger(ctx context.Context, client *HTTPClient, want int, settle time.Duration) (Panel, error) {
	ctx, cancel := context.WithTimeout(ctx, settle)
	defer cancel()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		var p Panel
		if err := client.getJSON(ctx, fmt.Sprintf("/api/donations?limit=%d", leaderboardLimit), &p); err != nil {
			return Panel{}, err
		}
		if p.Donors >= want {
			return p, nil
		}
		select {
		case <-ctx.Done():
			return p, fmt.Errorf("%w: %d donors after %s, want %d", ErrLedgerMismatch, p.Donors, settle, want)
		case <-ticker.C:
		}
	}
}

// verifyLedger checks that the accepted donations were applied exactly
// once and that the leaderboard is ordered and above the threshold.
func verifyLedger(ctx context.Context, before, after Panel, wantDonors int, wantTotal float64) error {
	if got := after.Donors - before.Donors; got != wantDonors {
		return fmt.Errorf("%w: donors grew by %d, want %d", ErrLedgerMismatch, got, wantDonors)
	}
	if got := after.Raised - before.Raised; math.Abs(got-wantTotal) > amountTolerance {
		return fmt.Errorf("%w: raised grew by %.2f, want %.2f", ErrLedgerMismatch, got, wantTotal)
	}
	if after.Goal > 0 {
		want := math.Min(after.Raised/after.Goal*percentageMultiplier, percentageMultiplier)
		if math.Abs(after.Progress-want) > amountTolerance {
			return fmt.Errorf("%w: progress %.2f, want %.2f", ErrLedgerMismatch, after.Progress, want)
		}
	}
	for i, e := range after.Leaderboard {
		if e.Amount < after.Threshold {
			return fmt.Errorf("%w: %s gave %.2f below threshold %.2f", ErrLeaderboard, e.Name, e.Amount, after.Threshold)
		}
		if i > 0 && after.Leaderboard[i-1].Amount < e.Amount {
			return fmt.Errorf("%w: rank %d (%.2f) above rank %d (%.2f)", ErrLeaderboard, i, after.Leaderboard[i-1].Amount, i+1, e.Amount)
		}
	}

	logger.Get().Info(ctx, "ledger verified",
		logger.Float64("raised", after.Raised),
		logger.Int("donors", after.Donors),
		logger.Float64("progress", after.Progress),
		logger.Int("leaderboard", len(after.Leaderboard)))
	return nil
}
