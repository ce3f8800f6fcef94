package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aikyam/site/internal/domain/addtocal"
	"github.com/aikyam/site/internal/domain/calendar"
	"github.com/aikyam/site/internal/domain/cards"
	"github.com/aikyam/site/internal/domain/countdown"
	"github.com/aikyam/site/internal/domain/loop"
	"github.com/aikyam/site/internal/domain/model"
	"github.com/aikyam/site/internal/domain/vendors"
)

const calendarName = "AIKYAM Events"

// BoardView is the board section: the chairman apart from the members.
type BoardView struct {
	Chairman *cards.View  `json:"chairman,omitempty"`
	Members  []cards.View `json:"members"`
}

// Loop is a rendered track and the speed it scrolls at.
type Loop struct {
	loop.Track[cards.View]
	Speed float64 `json:"speed"`
}

// VendorsView is the filtered vendor grid and its filter buttons.
type VendorsView struct {
	Category   string       `json:"category"`
	Categories []string     `json:"categories"`
	Cards      []cards.View `json:"cards"`
	Empty      bool         `json:"empty"`
	Message    string       `json:"message,omitempty"`
}

// Page is every section at once.
type Page struct {
	Team      []cards.View      `json:"team"`
	Board     BoardView         `json:"board"`
	Upcoming  Loop              `json:"upcoming"`
	Past      Loop              `json:"past"`
	Calendar  calendar.Month    `json:"calendar"`
	Schedule  []calendar.Item   `json:"schedule"`
	Countdown countdown.Display `json:"countdown"`
	Vendors   VendorsView       `json:"vendors"`
	Marquee   Loop              `json:"marquee"`
	Gallery   Loop              `json:"gallery"`
	Donations DonationsView     `json:"donations"`
	LoadedAt  time.Time         `json:"loaded_at"`
	Datasets  map[string]bool   `json:"datasets"`
}

func renderAll[S any](ctx context.Context, items []S, render func(context.Context, S) cards.View) []cards.View {
	out := make([]cards.View, 0, len(items))
	for _, it := range items {
		out = append(out, render(ctx, it))
	}
	return out
}

func loopOf[S any](ctx context.Context, items []S, render func(context.Context, S) cards.View, extent, speed float64) Loop {
	track := loop.Build(items, func(it S) cards.View { return render(ctx, it) }, extent)
	return Loop{Track: track, Speed: speed}
}

// Team renders the core team cards.
func (s *Service) Team(ctx context.Context) []cards.View {
	return renderAll(ctx, s.state.Snapshot().Team, s.renderer.Person)
}

// Board renders the chairman and board member cards.
func (s *Service) Board(ctx context.Context) BoardView {
	b := s.state.Snapshot().Board
	out := BoardView{Members: renderAll(ctx, b.Members, s.renderer.Person)}
	if b.Chairman != nil {
		v := s.renderer.Person(ctx, *b.Chairman)
		out.Chairman = &v
	}
	return out
}

// Upcoming renders the upcoming events loop in dataset order.
func (s *Service) Upcoming(ctx context.Context) Loop {
	return loopOf(ctx, s.state.Snapshot().Upcoming, s.renderer.Event, s.cardExtent, s.loopSpeed)
}

// Past renders the completed events loop.
func (s *Service) Past(ctx context.Context) Loop {
	return loopOf(ctx, s.state.Snapshot().Past, s.renderer.PastEvent, s.cardExtent, s.loopSpeed)
}

// Gallery renders the gallery marquee.
func (s *Service) Gallery(ctx context.Context) Loop {
	return loopOf(ctx, s.state.Snapshot().Gallery, s.renderer.GallerySlide, s.cardExtent, gallerySpeed)
}

// VendorMarquee renders every vendor logo as a scrolling strip.
func (s *Service) VendorMarquee(ctx context.Context) Loop {
	return loopOf(ctx, s.state.Snapshot().Vendors, s.renderer.Vendor, s.cardExtent, s.loopSpeed)
}

// Vendors renders the vendor grid filtered by category.
func (s *Service) Vendors(ctx context.Context, category string) VendorsView {
	all := s.state.Snapshot().Vendors
	res := vendors.Filter(all, category)
	return VendorsView{
		Category:   res.Category,
		Categories: vendors.Categories(all),
		Cards:      renderAll(ctx, res.Vendors, s.renderer.Vendor),
		Empty:      res.Empty,
		Message:    res.Message,
	}
}

// Calendar lays out the month containing at, or the current month when at
// is zero.
func (s *Service) Calendar(_ context.Context, at time.Time) calendar.Month {
	if at.IsZero() {
		at = s.now()
	}
	return calendar.BuildMonth(s.state.Snapshot().Upcoming, at,
		calendar.WithLocation(s.loc),
		calendar.WithFirstWeekday(s.firstWeekday),
	)
}

// Schedule lists the upcoming events by start, TBD last.
func (s *Service) Schedule(_ context.Context) []calendar.Item {
	return calendar.Schedule(s.state.Snapshot().Upcoming, calendar.WithLocation(s.loc))
}

// Countdown renders the countdown towards the target chosen at the last
// bootstrap.
func (s *Service) Countdown(_ context.Context) countdown.Display {
	return countdown.Compute(s.state.Snapshot().Target, s.now())
}

func (s *Service) findEvent(id string) (model.Event, error) {
	sections := s.state.Snapshot()
	for _, list := range [][]model.Event{sections.Upcoming, sections.Past} {
		for _, e := range list {
			if e.ID == id {
				return e, nil
			}
		}
	}
	return model.Event{}, fmt.Errorf("event %q: %w", id, ErrNotFound)
}

// Links builds the add-to-calendar URLs for one event.
func (s *Service) Links(_ context.Context, id string) (addtocal.Links, error) {
	e, err := s.findEvent(id)
	if err != nil {
		return addtocal.Links{}, err
	}
	return s.calLinks.Links(e)
}

// WriteEventICS writes an iCalendar file for one dated event and returns
// its file name.
func (s *Service) WriteEventICS(_ context.Context, w io.Writer, id string) (string, error) {
	e, err := s.findEvent(id)
	if err != nil {
		return "", err
	}
	if _, ok := e.StartIn(s.loc); !ok {
		return "", fmt.Errorf("ics %q: %w", id, addtocal.ErrUndated)
	}
	if err := s.calLinks.WriteICS(w, calendarName, []model.Event{e}, s.now()); err != nil {
		return "", err
	}
	return addtocal.Filename(e), nil
}

// WriteCalendarICS writes every dated upcoming event as one calendar.
func (s *Service) WriteCalendarICS(_ context.Context, w io.Writer) error {
	return s.calLinks.WriteICS(w, calendarName, s.state.Snapshot().Upcoming, s.now())
}

// Page renders every section.
func (s *Service) Page(ctx context.Context) (Page, error) {
	donations, err := s.Donations(ctx, defaultLeaderboardLimit)
	if err != nil {
		return Page{}, err
	}
	sections := s.state.Snapshot()
	datasets := make(map[string]bool, len(sections.Loads))
	for name, r := range sections.Loads {
		datasets[name] = r.OK
	}
	return Page{
		Team:      s.Team(ctx),
		Board:     s.Board(ctx),
		Upcoming:  s.Upcoming(ctx),
		Past:      s.Past(ctx),
		Calendar:  s.Calendar(ctx, time.Time{}),
		Schedule:  s.Schedule(ctx),
		Countdown: s.Countdown(ctx),
		Vendors:   s.Vendors(ctx, vendors.All),
		Marquee:   s.VendorMarquee(ctx),
		Gallery:   s.Gallery(ctx),
		Donations: donations,
		LoadedAt:  sections.LoadedAt,
		Datasets:  datasets,
	}, nil
}
