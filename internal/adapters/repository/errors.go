package repository

import "errors"

// Sentinel kinds for leaderboard errors.
var (
	ErrInvalidEntry = errors.New("invalid leaderboard entry")
	ErrInvalidLimit = errors.New("invalid leaderboard limit")
)
