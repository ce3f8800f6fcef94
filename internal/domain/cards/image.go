package cards

import (
	"context"
	"strings"
	"unicode"
)

// Placeholder is the text tile shown when no image resolves.
type Placeholder struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

// Image is a resolved image reference. When Src is empty the placeholder
// is shown. Fallback is set only when the chain has not been resolved
// server-side and the client may still try it once.
type Image struct {
	Src         string      `json:"src,omitempty"`
	Fallback    string      `json:"fallback,omitempty"`
	Alt         string      `json:"alt,omitempty"`
	Placeholder Placeholder `json:"placeholder"`
}

// Prober reports whether an image source can be loaded.
type Prober interface {
	Available(ctx context.Context, src string) bool
}

// ProberFunc adapts a function to Prober.
type ProberFunc func(ctx context.Context, src string) bool

// Available implements Prober.
func (f ProberFunc) Available(ctx context.Context, src string) bool { return f(ctx, src) }

// ResolveImage walks primary, then fallback once, then the placeholder.
// Without a prober nothing is checked and the whole chain is handed to the
// client.
func ResolveImage(ctx context.Context, primary, fallback string, placeholder func() Placeholder, p Prober) Image {
	primary = strings.TrimSpace(primary)
	fallback = strings.TrimSpace(fallback)
	img := Image{Placeholder: placeholder()}

	if p == nil {
		switch {
		case primary != "":
			img.Src = primary
			if fallback != primary {
				img.Fallback = fallback
			}
		case fallback != "":
			img.Src = fallback
		}
		return img
	}

	if primary != "" && p.Available(ctx, primary) {
		img.Src = primary
		return img
	}
	if fallback != "" && fallback != primary && p.Available(ctx, fallback) {
		img.Src = fallback
	}
	return img
}

// Initials takes the first letter of each word, uppercased, up to limit runes.
func Initials(name string, limit int) string {
	var b strings.Builder
	n := 0
	for _, word := range strings.Fields(name) {
		if n >= limit {
			break
		}
		r := []rune(word)[0]
		b.WriteRune(unicode.ToUpper(r))
		n++
	}
	return b.String()
}

// Palette maps a category label to an accent colour.
type Palette struct {
	colors map[string]string
	def    string
}

// NewPalette copies colors; def is used for unknown categories.
func NewPalette(colors map[string]string, def string) Palette {
	cp := make(map[string]string, len(colors))
	for k, v := range colors {
		cp[k] = v
	}
	return Palette{colors: cp, def: def}
}

// Color returns the colour for category, or the default.
func (p Palette) Color(category string) string {
	if c, ok := p.colors[category]; ok {
		return c
	}
	return p.def
}
