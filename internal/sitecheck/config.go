package sitecheck

import "time"

// Config holds configuration for a site check run.
type Config struct {
	BaseURL       string        // Base URL of the service
	NumDonations  int           // Number of donations to submit
	DuplicateRate float64       // Share of donations resubmitted with the same id
	Workers       int           // Number of concurrent submitters
	Timeout       time.Duration // HTTP request timeout
	Settle        time.Duration // How long to wait for the ledger to catch up
	Seed          uint64        // Generator seed; 0 picks one from the clock
	LogFile       string        // Log file for check output
	Verbose       bool          // Enable verbose logging
}

// Donation is one generated form post.
type Donation struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Preset    string `json:"preset,omitempty"`
	Custom    string `json:"custom,omitempty"`
	Recurring bool   `json:"recurring"`

	// amount is what the service should resolve the post to.
	amount float64
}

// Ack is the response to a donation post.
type Ack struct {
	SubmissionID string  `json:"submission_id"`
	Amount       float64 `json:"amount"`
	Status       string  `json:"status"`
	Duplicate    bool    `json:"duplicate"`
}

// Entry is one leaderboard row.
type Entry struct {
	Rank   int     `json:"rank"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// Panel is the donation panel as served by GET /api/donations.
type Panel struct {
	Goal        float64   `json:"goal"`
	Raised      float64   `json:"raised"`
	Donors      int       `json:"donors"`
	Progress    float64   `json:"progress"`
	Presets     []float64 `json:"presets"`
	Threshold   float64   `json:"threshold"`
	Leaderboard []Entry   `json:"leaderboard"`
}

// Stats holds check statistics.
type Stats struct {
	Generated  int
	Submitted  int
	Accepted   int
	Duplicate  int
	Rejected   int
	Failed     int
	Expected   float64
	RaisedFrom float64
	RaisedTo   float64
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}
