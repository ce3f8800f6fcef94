package repository

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/aikyam/site/pkg/metrics"
)

const defaultMaxEntries = 1000

// MemoryStore keeps the leaderboard in two views: arrival order for Recent
// and amount order for TopN.
type MemoryStore struct {
	mu         sync.RWMutex
	arrivals   []Entry
	ranked     []Entry
	seq        map[string]int
	next       int
	maxEntries int
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		seq:        make(map[string]int),
		maxEntries: defaultMaxEntries,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// rankedBefore orders by amount desc, then arrival.
func (s *MemoryStore) rankedBefore(a, b Entry) int {
	switch {
	case a.Amount > b.Amount:
		return -1
	case a.Amount < b.Amount:
		return 1
	default:
		return s.seq[a.ReceiptID] - s.seq[b.ReceiptID]
	}
}

// Append implements Store.
func (s *MemoryStore) Append(_ context.Context, e Entry) error {
	if e.ReceiptID == "" {
		return fmt.Errorf("append: %w: missing receipt id", ErrInvalidEntry)
	}
	if math.IsNaN(e.Amount) || math.IsInf(e.Amount, 0) || e.Amount <= 0 {
		return fmt.Errorf("append: %w: amount %v", ErrInvalidEntry, e.Amount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.seq[e.ReceiptID]; dup {
		return fmt.Errorf("append: %w: duplicate receipt %s", ErrInvalidEntry, e.ReceiptID)
	}
	e.Rank = 0
	s.seq[e.ReceiptID] = s.next
	s.next++

	s.arrivals = append(s.arrivals, e)
	i, _ := slices.BinarySearchFunc(s.ranked, e, s.rankedBefore)
	s.ranked = slices.Insert(s.ranked, i, e)

	if s.maxEntries > 0 && len(s.arrivals) > s.maxEntries {
		s.evictOldestLocked()
	}
	metrics.UpdateLeaderboardSize(len(s.arrivals))
	return nil
}

func (s *MemoryStore) evictOldestLocked() {
	oldest := s.arrivals[0]
	s.arrivals = slices.Delete(s.arrivals, 0, 1)
	s.ranked = slices.DeleteFunc(s.ranked, func(e Entry) bool { return e.ReceiptID == oldest.ReceiptID })
	delete(s.seq, oldest.ReceiptID)
}

// TopN implements Store. Rank is 1-based.
func (s *MemoryStore) TopN(_ context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, fmt.Errorf("top: %w: %d", ErrInvalidLimit, n)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	n = min(n, len(s.ranked))
	out := make([]Entry, n)
	copy(out, s.ranked[:n])
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}

// Recent implements Store.
func (s *MemoryStore) Recent(_ context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, fmt.Errorf("recent: %w: %d", ErrInvalidLimit, n)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	n = min(n, len(s.arrivals))
	out := make([]Entry, 0, n)
	for i := len(s.arrivals) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.arrivals[i])
	}
	return out, nil
}

// Count implements Store.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.arrivals)
}
