// Package addtocal builds "add to calendar" links for Google, Outlook and
// Yahoo and writes iCalendar files for dated events.
package addtocal

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aikyam/site/internal/domain/model"
)

const (
	defaultDuration    = 2 * time.Hour
	defaultDescription = "AIKYAM Community Event"
	defaultProductID   = "-//AIKYAM//Community Site//EN"
	defaultUIDDomain   = "aikyam.community"

	googleBase  = "https://calendar.google.com/calendar/render"
	outlookBase = "https://outlook.live.com/calendar/0/deeplink/compose"
	yahooBase   = "https://calendar.yahoo.com/"

	compactUTC = "20060102T150405Z"
	isoUTC     = "2006-01-02T15:04:05.000Z"
)

// ErrUndated is returned for TBD events and events without a usable start.
var ErrUndated = errors.New("event has no start date")

// Option configures link and ICS generation.
type Option func(*Builder)

// WithDefaultDuration sets the length assumed when an event has no end.
func WithDefaultDuration(d time.Duration) Option {
	return func(b *Builder) {
		if d > 0 {
			b.duration = d
		}
	}
}

// WithLocation sets the zone for dataset wall times.
func WithLocation(loc *time.Location) Option {
	return func(b *Builder) {
		if loc != nil {
			b.loc = loc
		}
	}
}

// WithProductID sets the ICS PRODID.
func WithProductID(id string) Option {
	return func(b *Builder) {
		if id != "" {
			b.productID = id
		}
	}
}

// Builder turns events into calendar links and files.
type Builder struct {
	duration  time.Duration
	loc       *time.Location
	productID string
	uidDomain string
}

// NewBuilder creates a Builder with a 2h default duration.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		duration:  defaultDuration,
		loc:       time.Local,
		productID: defaultProductID,
		uidDomain: defaultUIDDomain,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Links are the provider URLs for one event.
type Links struct {
	EventID string    `json:"event_id"`
	Title   string    `json:"title"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Google  string    `json:"google"`
	Outlook string    `json:"outlook"`
	Yahoo   string    `json:"yahoo"`
	ICS     string    `json:"ics"`
}

// Links builds provider URLs for e.
func (b *Builder) Links(e model.Event) (Links, error) {
	start, ok := e.StartIn(b.loc)
	if !ok {
		return Links{}, fmt.Errorf("links %q: %w", e.ID, ErrUndated)
	}
	end, _ := e.EndIn(b.loc, b.duration)
	start, end = start.UTC(), end.UTC()

	desc := e.Desc
	if desc == "" {
		desc = defaultDescription
	}

	google := url.Values{}
	google.Set("action", "TEMPLATE")
	google.Set("text", e.Title)
	google.Set("dates", start.Format(compactUTC)+"/"+end.Format(compactUTC))
	google.Set("details", desc)
	google.Set("location", e.Location)

	outlook := url.Values{}
	outlook.Set("subject", e.Title)
	outlook.Set("startdt", start.Format(isoUTC))
	outlook.Set("enddt", end.Format(isoUTC))
	outlook.Set("body", desc)
	outlook.Set("location", e.Location)

	yahoo := url.Values{}
	yahoo.Set("v", "60")
	yahoo.Set("view", "d")
	yahoo.Set("type", "20")
	yahoo.Set("title", e.Title)
	yahoo.Set("st", start.Format(compactUTC))
	yahoo.Set("dur", yahooDuration(end.Sub(start)))
	yahoo.Set("desc", desc)
	yahoo.Set("in_loc", e.Location)

	return Links{
		EventID: e.ID,
		Title:   e.Title,
		Start:   start,
		End:     end,
		Google:  googleBase + "?" + google.Encode(),
		Outlook: outlookBase + "?" + outlook.Encode(),
		Yahoo:   yahooBase + "?" + yahoo.Encode(),
		ICS:     "/api/events/" + url.PathEscape(e.ID) + "/ics",
	}, nil
}

// yahooDuration renders d as HHMM, capped at 99:59.
func yahooDuration(d time.Duration) string {
	mins := int(d.Minutes())
	if mins > 99*60+59 {
		mins = 99*60 + 59
	}
	return fmt.Sprintf("%02d%02d", mins/60, mins%60)
}

// Filename is the download name used for e's ICS file.
func Filename(e model.Event) string {
	var b strings.Builder
	for _, r := range strings.ToLower(e.Title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	name := strings.Trim(b.String(), "-")
	if name == "" {
		name = "event"
	}
	return name + ".ics"
}
