// Package repository holds the in-session donation leaderboard.
package repository

import (
	"context"

	"github.com/aikyam/site/internal/domain/model"
)

// Entry is a leaderboard row.
type Entry = model.LeaderboardEntry

// Store provides read/write access to the leaderboard.
type Store interface {
	// Append records a notable donation.
	Append(ctx context.Context, e Entry) error

	// TopN returns up to n entries ordered by amount desc, earliest first on ties.
	TopN(ctx context.Context, n int) ([]Entry, error)

	// Recent returns up to n entries, newest first.
	Recent(ctx context.Context, n int) ([]Entry, error)

	// Count returns the number of entries held.
	Count(ctx context.Context) int
}
