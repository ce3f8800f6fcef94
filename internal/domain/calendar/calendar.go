// Package calendar derives the month grid and the ordered schedule list from
// the upcoming events dataset.
package calendar

import (
	"time"

	"github.com/aikyam/site/internal/domain/model"
)

// Cell is one square of the month grid. Padding cells have Day 0.
type Cell struct {
	Day        int  `json:"day"`
	InMonth    bool `json:"in_month"`
	HasEvent   bool `json:"has_event"`
	EventCount int  `json:"event_count,omitempty"`
	IsToday    bool `json:"is_today"`
}

// Month is the rendered grid for the month containing "now".
type Month struct {
	Label       string   `json:"label"`
	Year        int      `json:"year"`
	Month       int      `json:"month"`
	StartDow    int      `json:"start_dow"`
	DaysInMonth int      `json:"days_in_month"`
	Weekdays    []string `json:"weekdays"`
	Cells       []Cell   `json:"cells"`
}

type dayKey struct {
	y int
	m time.Month
	d int
}

// BuildMonth lays out the month containing now. The cell count is the
// smallest multiple of 7 that fits the leading padding plus every day.
func BuildMonth(events []model.Event, now time.Time, opts ...Option) Month {
	o := newOptions(opts)
	now = now.In(o.loc)

	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, o.loc)
	startDow := (int(first.Weekday()) - int(o.firstWeekday) + 7) % 7
	// Day 0 of the next month is the last day of this one.
	daysInMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, o.loc).Day()
	total := (startDow + daysInMonth + 6) / 7 * 7

	counts := make(map[dayKey]int)
	for _, e := range events {
		start, ok := e.StartIn(o.loc)
		if !ok {
			continue
		}
		start = start.In(o.loc)
		counts[dayKey{start.Year(), start.Month(), start.Day()}]++
	}

	today := dayKey{now.Year(), now.Month(), now.Day()}
	cells := make([]Cell, total)
	for i := range cells {
		day := i - startDow + 1
		if day < 1 || day > daysInMonth {
			continue
		}
		key := dayKey{first.Year(), first.Month(), day}
		n := counts[key]
		cells[i] = Cell{
			Day:        day,
			InMonth:    true,
			HasEvent:   n > 0,
			EventCount: n,
			IsToday:    key == today,
		}
	}

	return Month{
		Label:       first.Format("January 2006"),
		Year:        first.Year(),
		Month:       int(first.Month()),
		StartDow:    startDow,
		DaysInMonth: daysInMonth,
		Weekdays:    weekdayHeaders(o.firstWeekday),
		Cells:       cells,
	}
}

func weekdayHeaders(first time.Weekday) []string {
	out := make([]string, 7)
	for i := range out {
		out[i] = time.Weekday((int(first) + i) % 7).String()[:3]
	}
	return out
}
