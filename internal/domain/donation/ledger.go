// Package donation keeps the in-session fundraising totals and decides
// which donations reach the leaderboard.
package donation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aikyam/site/internal/domain/model"
	"github.com/aikyam/site/internal/domain/money"
	"github.com/aikyam/site/pkg/logger"
	"github.com/aikyam/site/pkg/metrics"
)

const (
	defaultGoal      = 10_000
	defaultThreshold = 250
)

// Leaderboard receives notable donations.
type Leaderboard interface {
	Append(ctx context.Context, e model.LeaderboardEntry) error
}

// Receipt confirms an accepted donation.
type Receipt struct {
	ID             string    `json:"id"`
	SubmissionID   string    `json:"submission_id,omitempty"`
	AcceptedAmount float64   `json:"accepted_amount"`
	Recurring      bool      `json:"recurring"`
	Leaderboard    bool      `json:"leaderboard"`
	At             time.Time `json:"at"`
}

// Snapshot is the donation progress panel.
type Snapshot struct {
	Goal        float64 `json:"goal"`
	Raised      float64 `json:"raised"`
	Donors      int     `json:"donors"`
	Progress    float64 `json:"progress"`
	GoalLabel   string  `json:"goal_label"`
	RaisedLabel string  `json:"raised_label"`
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithGoal sets the fixed fundraising goal.
func WithGoal(goal float64) Option {
	return func(l *Ledger) {
		if goal > 0 {
			l.goal = goal
		}
	}
}

// WithThreshold sets the minimum amount that reaches the leaderboard.
func WithThreshold(t float64) Option {
	return func(l *Ledger) {
		if t > 0 {
			l.threshold = t
		}
	}
}

// WithLeaderboard sets where notable donations are appended.
func WithLeaderboard(b Leaderboard) Option {
	return func(l *Ledger) { l.board = b }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		if now != nil {
			l.now = now
		}
	}
}

// WithLogger sets the ledger logger.
func WithLogger(lg logger.Logger) Option {
	return func(l *Ledger) {
		if lg != nil {
			l.logger = lg
		}
	}
}

// Ledger holds the running totals. It forgets everything on restart.
type Ledger struct {
	goal      float64
	threshold float64
	board     Leaderboard
	now       func() time.Time
	logger    logger.Logger

	mu     sync.RWMutex
	raised float64
	donors int
}

// NewLedger creates an empty ledger.
func NewLedger(opts ...Option) *Ledger {
	l := &Ledger{
		goal:      defaultGoal,
		threshold: defaultThreshold,
		now:       time.Now,
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	metrics.UpdateDonationTotals(0, 0)
	return l
}

// Submit applies one donation. Invalid amounts return ErrInvalidAmount and
// leave the totals untouched.
func (l *Ledger) Submit(ctx context.Context, s Submission) (Receipt, error) {
	if err := s.Validate(); err != nil {
		metrics.RecordDonationRejected("invalid_amount")
		return Receipt{}, err
	}

	r := Receipt{
		ID:             uuid.NewString(),
		SubmissionID:   s.ID,
		AcceptedAmount: s.Amount,
		Recurring:      s.Recurring,
		At:             l.now(),
	}

	l.mu.Lock()
	l.raised += s.Amount
	l.donors++
	raised, donors := l.raised, l.donors
	l.mu.Unlock()

	metrics.RecordDonationAccepted()
	metrics.UpdateDonationTotals(raised, donors)

	if l.board != nil && s.Amount >= l.threshold {
		err := l.board.Append(ctx, model.LeaderboardEntry{
			ReceiptID: r.ID,
			Name:      s.DisplayName(),
			Amount:    s.Amount,
			Recurring: s.Recurring,
			At:        r.At,
		})
		if err != nil {
			l.logger.Warn(ctx, "leaderboard append failed", logger.String("receipt", r.ID), logger.Error(err))
		} else {
			r.Leaderboard = true
		}
	}

	l.logger.Debug(ctx, "donation applied",
		logger.String("receipt", r.ID),
		logger.Float64("amount", s.Amount),
		logger.Bool("recurring", s.Recurring),
	)
	return r, nil
}

// Snapshot returns the current totals.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.RLock()
	raised, donors := l.raised, l.donors
	l.mu.RUnlock()

	progress := 0.0
	if l.goal > 0 {
		progress = min(raised*100/l.goal, 100)
	}
	return Snapshot{
		Goal:        l.goal,
		Raised:      raised,
		Donors:      donors,
		Progress:    progress,
		GoalLabel:   money.Format(l.goal),
		RaisedLabel: money.Format(raised),
	}
}

// Threshold returns the leaderboard threshold.
func (l *Ledger) Threshold() float64 { return l.threshold }
