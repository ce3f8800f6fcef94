// Package loop builds the duplicated card tracks behind the scrolling
// marquees and vertical loops.
package loop

import "math"

// Track is a rendered sequence followed by a copy of itself. Scrolling by
// Threshold lands on the copy's first card, which looks identical to the
// first one, so the offset can reset to zero without a visible jump.
type Track[T any] struct {
	Cards      []T     `json:"cards"`
	Count      int     `json:"count"`
	CardExtent float64 `json:"card_extent"`
	Extent     float64 `json:"extent"`
	Threshold  float64 `json:"threshold"`
}

// Build renders items once, appends the same rendered cards again and
// sizes the track from cardExtent.
func Build[S, T any](items []S, render func(S) T, cardExtent float64) Track[T] {
	n := len(items)
	cards := make([]T, 0, 2*n)
	for _, it := range items {
		cards = append(cards, render(it))
	}
	cards = append(cards, cards[:n]...)

	extent := float64(len(cards)) * cardExtent
	return Track[T]{
		Cards:      cards,
		Count:      n,
		CardExtent: cardExtent,
		Extent:     extent,
		Threshold:  extent / 2,
	}
}

// Scroller advances a track offset by a constant speed per tick.
type Scroller struct {
	speed     float64
	threshold float64
	offset    float64
}

// NewScroller creates a scroller that wraps at threshold.
func NewScroller(speed, threshold float64) *Scroller {
	return &Scroller{speed: speed, threshold: threshold}
}

// Advance moves one tick and returns the new offset. The offset resets to
// zero once its magnitude reaches the threshold.
func (s *Scroller) Advance() float64 {
	s.offset -= s.speed
	if math.Abs(s.offset) >= s.threshold {
		s.offset = 0
	}
	return s.offset
}

// Offset returns the current offset.
func (s *Scroller) Offset() float64 { return s.offset }
