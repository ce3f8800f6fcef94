package cards

import "time"

// Option configures a Renderer.
type Option func(*Renderer)

// WithPalette sets the category colours used by placeholders.
func WithPalette(p Palette) Option {
	return func(r *Renderer) { r.palette = p }
}

// WithLocation sets the zone event dates are shown in.
func WithLocation(loc *time.Location) Option {
	return func(r *Renderer) {
		if loc != nil {
			r.loc = loc
		}
	}
}

// WithProber resolves image chains server-side.
func WithProber(p Prober) Option {
	return func(r *Renderer) { r.prober = p }
}

// WithPersonColor sets the accent colour of people and event placeholders.
func WithPersonColor(c string) Option {
	return func(r *Renderer) {
		if c != "" {
			r.personColor = c
		}
	}
}
