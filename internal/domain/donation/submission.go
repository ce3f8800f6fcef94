package donation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Submission is one donation form post.
type Submission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Amount    float64   `json:"amount"`
	Recurring bool      `json:"recurring"`
	Received  time.Time `json:"received"`
}

// Validate checks the amount rule.
func (s Submission) Validate() error {
	return checkAmount(s.Amount)
}

// DisplayName is the name shown on the leaderboard.
func (s Submission) DisplayName() string {
	if n := strings.TrimSpace(s.Name); n != "" {
		return n
	}
	return "Anonymous"
}

// Resolve picks the donation amount from the form. A non-empty custom
// value wins over the selected preset.
func Resolve(preset, custom string) (float64, error) {
	raw := strings.TrimSpace(custom)
	if raw == "" {
		raw = strings.TrimSpace(preset)
	}
	if raw == "" {
		return 0, fmt.Errorf("resolve: %w: no amount given", ErrInvalidAmount)
	}
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(raw)
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("resolve: %w: %q", ErrInvalidAmount, raw)
	}
	if err := checkAmount(amount); err != nil {
		return 0, err
	}
	return amount, nil
}

func checkAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}
	return nil
}
