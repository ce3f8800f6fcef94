package sitecheck

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/aikyam/site/pkg/logger"
)

var donorNames = []string{
	"Asha", "Vikram", "Priya", "Karthik", "Meena", "Ravi", "Lakshmi",
	"Suresh", "Anita", "Rahul", "Deepa", "Arjun", "Kavya", "Nikhil",
}

// generateDonations builds n donations. Amounts come from the presets or a
// custom field in the formats people type; about dupRate of them reuse an
// earlier id.
func generateDonations(ctx context.Context, config *Config, presets []float64, stats *Stats) []Donation {
	seed := config.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	r := rand.New(rand.NewPCG(seed, seed>>1))

	out := make([]Donation, 0, config.NumDonations)
	for i := 0; i < config.NumDonations; i++ {
		if i > 0 && r.Float64() < config.DuplicateRate {
			out = append(out, out[r.IntN(len(out))])
			continue
		}
		out = append(out, newDonation(r, presets))
	}
	stats.Generated = len(out)

	logger.Get().Info(ctx, "donations generated",
		logger.Int("count", len(out)),
		logger.Any("seed", seed))
	return out
}

func newDonation(r *rand.Rand, presets []float64) Donation {
	d := Donation{
		ID:        uuid.NewString(),
		Name:      donorNames[r.IntN(len(donorNames))],
		Recurring: r.IntN(4) == 0,
	}
	if len(presets) > 0 && r.IntN(2) == 0 {
		p := presets[r.IntN(len(presets))]
		d.Preset = strconv.FormatFloat(p, 'f', -1, 64)
		d.amount = p
		return d
	}

	cents := 100 + r.IntN(150_000)
	d.amount = float64(cents) / 100
	switch r.IntN(3) {
	case 0:
		d.Custom = fmt.Sprintf("%.2f", d.amount)
	case 1:
		d.Custom = fmt.Sprintf("$%.2f", d.amount)
	default:
		// Thousands separators on whole dollars.
		whole := cents / 100
		d.amount = float64(whole)
		d.Custom = "$" + groupThousands(whole)
	}
	return d
}

func groupThousands(n int) string {
	s := strconv.Itoa(n)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}

// expectedTotal sums each distinct id once.
func expectedTotal(donations []Donation) (float64, int) {
	seen := make(map[string]struct{}, len(donations))
	var total float64
	for _, d := range donations {
		if _, ok := seen[d.ID]; ok {
			continue
		}
		seen[d.ID] = struct{}{}
		total += d.amount
	}
	return total, len(seen)
}
