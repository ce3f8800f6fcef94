// Package model contains the records loaded from the site datasets and
// passed between the loader, the renderers and the HTTP layer.
package model

import (
	"strings"
	"time"
)

// Timestamp layouts accepted in dataset files. Layouts without a zone are
// read as wall time in the site's configured location.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Timestamp is a dataset date as written in the JSON file.
type Timestamp string

// In parses the timestamp in loc. ok is false for empty or unparsable values.
func (ts Timestamp) In(loc *time.Location) (t time.Time, ok bool) {
	s := strings.TrimSpace(string(ts))
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.ParseInLocation(layout, s, loc); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// IsZero reports whether the timestamp is unset.
func (ts Timestamp) IsZero() bool { return strings.TrimSpace(string(ts)) == "" }

// Event is an upcoming or completed community event.
type Event struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Start    Timestamp `json:"start,omitempty"`
	End      Timestamp `json:"end,omitempty"`
	TBD      bool      `json:"tbd"`
	Location string    `json:"location,omitempty"`
	Price    float64   `json:"price,omitempty"`
	Img      string    `json:"img,omitempty"`
	Fallback string    `json:"fallback,omitempty"`
	Summary  string    `json:"summary,omitempty"`
	Desc     string    `json:"desc,omitempty"`
	// Date is used by completed events in place of Start.
	Date Timestamp `json:"date,omitempty"`
}

// StartIn returns the event start. ok is false for TBD events and for
// events whose start does not parse; both sort after every dated event.
func (e Event) StartIn(loc *time.Location) (time.Time, bool) {
	if e.TBD {
		return time.Time{}, false
	}
	return e.Start.In(loc)
}

// EndIn returns the explicit end, or start+fallback when no end is set.
func (e Event) EndIn(loc *time.Location, fallback time.Duration) (time.Time, bool) {
	start, ok := e.StartIn(loc)
	if !ok {
		return time.Time{}, false
	}
	if end, ok := e.End.In(loc); ok && end.After(start) {
		return end, true
	}
	return start.Add(fallback), true
}

// Invalid reports events that claim a date but carry no parsable start.
func (e Event) Invalid(loc *time.Location) bool {
	if e.TBD {
		return false
	}
	_, ok := e.Start.In(loc)
	return !ok
}
