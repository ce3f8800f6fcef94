package sitecheck

import "time"

// Submission outcomes.
const (
	outcomeAccepted  = "accepted"
	outcomeDuplicate = "duplicate"
	outcomeRejected  = "rejected"
	outcomeFailed    = "failed"
)

// Runner configuration constants.
const (
	pollInterval         = 100 * time.Millisecond
	amountTolerance      = 0.005
	percentageMultiplier = 100
	leaderboardLimit     = 100
)

// sections are the keys /api/bootstrap must carry.
var sections = []string{
	"team", "board", "upcoming", "past", "calendar", "schedule",
	"countdown", "vendors", "marquee", "gallery", "donations",
}
