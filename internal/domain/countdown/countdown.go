// Package countdown selects the next dated event and breaks the time left
// until it starts into days, hours, minutes and seconds.
package countdown

import (
	"slices"
	"time"

	"github.com/aikyam/site/internal/domain/model"
)

// Millisecond boundaries of the display fields.
const (
	msPerDay    = 86_400_000
	msPerHour   = 3_600_000
	msPerMinute = 60_000
	msPerSecond = 1_000
)

// State of the countdown display.
type State string

const (
	StateNone     State = "none"
	StateCounting State = "counting"
	StateLive     State = "live"
)

const (
	noneTitle = "Stay tuned"
	liveLabel = "Happening now"
)

// Target is the event the countdown runs towards.
type Target struct {
	Event model.Event
	Start time.Time
}

// Heading is the title line shown above the counter.
func (t Target) Heading() string {
	return t.Event.Title + " • " + t.Start.Format("Jan 2")
}

// Display is one rendered state of the countdown.
type Display struct {
	State   State      `json:"state"`
	Title   string     `json:"title"`
	EventID string     `json:"event_id,omitempty"`
	Target  *time.Time `json:"target,omitempty"`
	Days    int64      `json:"days"`
	Hours   int64      `json:"hours"`
	Minutes int64      `json:"minutes"`
	Seconds int64      `json:"seconds"`
	Label   string     `json:"label,omitempty"`
}

// Select returns the nearest event that is not TBD and starts strictly
// after now. ok is false when no event qualifies.
func Select(events []model.Event, now time.Time, loc *time.Location) (target Target, ok bool) {
	var candidates []Target
	for _, e := range events {
		start, dated := e.StartIn(loc)
		if !dated || !start.After(now) {
			continue
		}
		candidates = append(candidates, Target{Event: e, Start: start})
	}
	if len(candidates) == 0 {
		return Target{}, false
	}
	slices.SortStableFunc(candidates, func(a, b Target) int { return a.Start.Compare(b.Start) })
	return candidates[0], true
}

// Compute renders the countdown for target at now. A nil target renders the
// "Stay tuned" state.
func Compute(target *Target, now time.Time) Display {
	if target == nil {
		return Display{State: StateNone, Title: noneTitle}
	}
	start := target.Start
	d := Display{
		Title:   target.Heading(),
		EventID: target.Event.ID,
		Target:  &start,
	}

	delta := start.Sub(now).Milliseconds()
	if delta <= 0 {
		d.State = StateLive
		d.Label = liveLabel
		return d
	}
	d.State = StateCounting
	d.Days = delta / msPerDay
	d.Hours = delta % msPerDay / msPerHour
	d.Minutes = delta % msPerHour / msPerMinute
	d.Seconds = delta % msPerMinute / msPerSecond
	return d
}
