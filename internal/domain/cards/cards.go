// Package cards maps dataset records to card views: people, upcoming and
// past events, vendors and gallery slides.
package cards

import (
	"context"
	"net/url"
	"time"

	"github.com/aikyam/site/internal/domain/model"
	"github.com/aikyam/site/internal/domain/money"
)

// Card kinds.
const (
	KindPerson    = "person"
	KindEvent     = "event"
	KindPastEvent = "past_event"
	KindVendor    = "vendor"
	KindGallery   = "gallery"
)

const (
	personInitials = 2
	eventInitials  = 2
	vendorInitials = 3

	defaultPersonColor = "#FFCC00"
	defaultVendorColor = "#607D8B"
)

// Action is a button or link rendered under a card.
type Action struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
	Href  string `json:"href"`
}

// View is the structural description of one card.
type View struct {
	Kind     string   `json:"kind"`
	ID       string   `json:"id,omitempty"`
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle,omitempty"`
	Pill     string   `json:"pill,omitempty"`
	When     string   `json:"when,omitempty"`
	Meta     string   `json:"meta,omitempty"`
	Body     string   `json:"body,omitempty"`
	Link     string   `json:"link,omitempty"`
	Image    Image    `json:"image"`
	Actions  []Action `json:"actions,omitempty"`
}

// Renderer holds what card mapping needs beyond the record itself.
type Renderer struct {
	palette     Palette
	loc         *time.Location
	prober      Prober
	personColor string
}

// NewRenderer creates a Renderer with the default palette and local time.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		palette:     NewPalette(nil, defaultVendorColor),
		loc:         time.Local,
		personColor: defaultPersonColor,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) tile(name string, limit int, color string) func() Placeholder {
	return func() Placeholder { return Placeholder{Text: Initials(name, limit), Color: color} }
}

// Person renders a core team or board member.
func (r *Renderer) Person(ctx context.Context, p model.Person) View {
	img := ResolveImage(ctx, p.Img, p.Fallback, r.tile(p.Name, personInitials, r.personColor), r.prober)
	img.Alt = p.Name
	return View{
		Kind:     KindPerson,
		Title:    p.Name,
		Subtitle: p.Role,
		Image:    img,
	}
}

// Event renders an upcoming event. Events without a usable start show as
// TBD and carry no actions.
func (r *Renderer) Event(ctx context.Context, e model.Event) View {
	img := ResolveImage(ctx, e.Img, e.Fallback, r.tile(e.Title, eventInitials, r.personColor), r.prober)
	img.Alt = e.Title

	where := e.Location
	if where == "" {
		where = "TBD"
	}
	v := View{
		Kind:  KindEvent,
		ID:    e.ID,
		Title: e.Title,
		Pill:  "TBD",
		When:  "To be announced",
		Meta:  where + " • " + money.Price(e.Price),
		Body:  e.Summary,
		Image: img,
	}
	start, ok := e.StartIn(r.loc)
	if !ok {
		return v
	}
	v.Pill = "Upcoming"
	v.When = start.In(r.loc).Format("Jan 2, 03:04 PM")
	v.Actions = []Action{
		{Kind: "add_to_calendar", Label: "Add to Calendar", Href: "/api/events/" + url.PathEscape(e.ID) + "/links"},
		{Kind: "register", Label: "Register", Href: "#register"},
	}
	return v
}

// PastEvent renders a completed event.
func (r *Renderer) PastEvent(ctx context.Context, e model.Event) View {
	img := ResolveImage(ctx, e.Img, e.Fallback, r.tile(e.Title, eventInitials, r.personColor), r.prober)
	img.Alt = e.Title

	v := View{
		Kind:  KindPastEvent,
		ID:    e.ID,
		Title: e.Title,
		Pill:  "Completed",
		Body:  e.Summary,
		Image: img,
	}
	date := e.Date
	if date.IsZero() {
		date = e.Start
	}
	if t, ok := date.In(r.loc); ok {
		v.When = t.Format("Jan 2, 2006")
	}
	return v
}

// Vendor renders a vendor tile. The placeholder colour follows the category.
func (r *Renderer) Vendor(ctx context.Context, v model.Vendor) View {
	img := ResolveImage(ctx, v.Logo, "", r.tile(v.Name, vendorInitials, r.palette.Color(v.Cat)), r.prober)
	img.Alt = v.Name
	return View{
		Kind:     KindVendor,
		Title:    v.Name,
		Subtitle: v.Cat,
		Pill:     v.Cat,
		Body:     v.Blurb,
		Link:     v.URL,
		Image:    img,
	}
}

// GallerySlide renders one gallery marquee slide.
func (r *Renderer) GallerySlide(ctx context.Context, g model.GalleryItem) View {
	img := ResolveImage(ctx, g.Src, g.Fallback, r.tile(g.Label, eventInitials, r.personColor), r.prober)
	img.Alt = g.Label
	return View{
		Kind:  KindGallery,
		Title: g.Label,
		Image: img,
	}
}
