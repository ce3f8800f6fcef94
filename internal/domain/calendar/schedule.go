package calendar

import (
	"slices"
	"time"

	"github.com/aikyam/site/internal/domain/model"
	"github.com/aikyam/site/internal/domain/money"
)

const (
	dateTBD     = "Date TBD"
	locationTBD = "TBD"
)

// Item is one row of the schedule list.
type Item struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Start    *time.Time `json:"start,omitempty"`
	When     string     `json:"when"`
	Where    string     `json:"where"`
	Price    string     `json:"price"`
	Dated    bool       `json:"dated"`
	Location string     `json:"location,omitempty"`
}

type keyed struct {
	e     model.Event
	start time.Time
	dated bool
}

// Schedule orders events ascending by start. TBD events and events whose
// start does not parse sort after every dated event and keep their input
// order among themselves.
func Schedule(events []model.Event, opts ...Option) []Item {
	o := newOptions(opts)

	rows := make([]keyed, len(events))
	for i, e := range events {
		start, ok := e.StartIn(o.loc)
		rows[i] = keyed{e: e, start: start, dated: ok}
	}
	slices.SortStableFunc(rows, func(a, b keyed) int {
		switch {
		case a.dated && b.dated:
			return a.start.Compare(b.start)
		case a.dated:
			return -1
		case b.dated:
			return 1
		default:
			return 0
		}
	})

	items := make([]Item, len(rows))
	for i, r := range rows {
		item := Item{
			ID:       r.e.ID,
			Title:    r.e.Title,
			When:     dateTBD,
			Where:    locationTBD,
			Price:    money.Price(r.e.Price),
			Dated:    r.dated,
			Location: r.e.Location,
		}
		if r.e.Location != "" {
			item.Where = r.e.Location
		}
		if r.dated {
			start := r.start.In(o.loc)
			item.Start = &start
			item.When = start.Format("Jan 2 • 03:04 PM")
		}
		items[i] = item
	}
	return items
}
