package model

import "time"

// LeaderboardEntry is a notable donation shown for social proof. It holds
// the display name only; contact details never reach it.
type LeaderboardEntry struct {
	Rank      int       `json:"rank,omitempty"`
	ReceiptID string    `json:"receipt_id"`
	Name      string    `json:"name"`
	Amount    float64   `json:"amount"`
	Recurring bool      `json:"recurring"`
	At        time.Time `json:"at"`
}
