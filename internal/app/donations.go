package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/aikyam/site/internal/adapters/mq/queue"
	"github.com/aikyam/site/internal/domain/donation"
	"github.com/aikyam/site/internal/domain/model"
	"github.com/aikyam/site/internal/domain/money"
	"github.com/aikyam/site/pkg/logger"
	"github.com/aikyam/site/pkg/metrics"
)

const defaultLeaderboardLimit = 10

// Ack statuses.
const (
	StatusQueued    = "queued"
	StatusDuplicate = "duplicate"
)

// DonationRequest is one donation form post. Custom wins over Preset when
// both are set; amounts may carry "$" and thousands separators.
type DonationRequest struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Preset    string `json:"preset"`
	Custom    string `json:"custom"`
	Recurring bool   `json:"recurring"`
}

// Ack acknowledges a donation that passed validation.
type Ack struct {
	SubmissionID string  `json:"submission_id"`
	Amount       float64 `json:"amount"`
	AmountLabel  string  `json:"amount_label"`
	Status       string  `json:"status"`
	Duplicate    bool    `json:"duplicate"`
}

// DonationsView is the donation panel: progress, presets and leaderboard.
type DonationsView struct {
	donation.Snapshot
	Presets     []float64                `json:"presets"`
	Threshold   float64                  `json:"threshold"`
	Leaderboard []model.LeaderboardEntry `json:"leaderboard"`
}

// SubmitDonation validates a form post and queues it for the ledger. A
// resubmitted id is acknowledged without being applied twice. Invalid
// amounts wrap donation.ErrInvalidAmount and change nothing.
func (s *Service) SubmitDonation(ctx context.Context, req DonationRequest) (Ack, error) {
	s.mu.RLock()
	started, q := s.started, s.queue
	s.mu.RUnlock()
	if !started {
		return Ack{}, ErrNotStarted
	}

	amount, err := donation.Resolve(req.Preset, req.Custom)
	if err != nil {
		metrics.RecordDonationRejected("invalid_amount")
		s.logger.Debug(ctx, "donation rejected", logger.Error(err))
		return Ack{}, err
	}

	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = uuid.NewString()
	}
	ack := Ack{
		SubmissionID: id,
		Amount:       amount,
		AmountLabel:  money.Format(amount),
		Status:       StatusQueued,
	}

	if s.deduper.SeenAndRecord(ctx, id) {
		metrics.RecordDonationDuplicate()
		s.logger.Debug(ctx, "duplicate donation skipped", logger.String("submission", id))
		ack.Status, ack.Duplicate = StatusDuplicate, true
		return ack, nil
	}

	sub := donation.Submission{
		ID:        id,
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Amount:    amount,
		Recurring: req.Recurring,
		Received:  s.now(),
	}
	if !q.Enqueue(ctx, sub) {
		// Let the client retry with the same id.
		s.deduper.Unrecord(ctx, id)
		if q.IsClosed() {
			return Ack{}, fmt.Errorf("submit %s: %w", id, queue.ErrClosed)
		}
		return Ack{}, fmt.Errorf("submit %s: %w", id, queue.ErrFull)
	}
	return ack, nil
}

// Donations returns the donation panel with up to limit leaderboard rows.
func (s *Service) Donations(ctx context.Context, limit int) (DonationsView, error) {
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	top, err := s.board.TopN(ctx, limit)
	if err != nil {
		return DonationsView{}, err
	}
	return DonationsView{
		Snapshot:    s.ledger.Snapshot(),
		Presets:     append([]float64(nil), s.presets...),
		Threshold:   s.ledger.Threshold(),
		Leaderboard: top,
	}, nil
}
