package loader

import (
	"context"
	"io/fs"
	"path"
	"strings"
)

// AssetProber checks image sources against a static file system. Remote
// URLs are not fetched and count as available.
type AssetProber struct {
	fsys fs.FS
}

// NewAssetProber wraps the site's static files.
func NewAssetProber(fsys fs.FS) *AssetProber {
	return &AssetProber{fsys: fsys}
}

// Available reports whether src can be served.
func (p *AssetProber) Available(_ context.Context, src string) bool {
	src = strings.TrimSpace(src)
	switch {
	case src == "":
		return false
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"), strings.HasPrefix(src, "data:"):
		return true
	}
	if i := strings.IndexAny(src, "?#"); i >= 0 {
		src = src[:i]
	}
	name := path.Clean(strings.TrimPrefix(strings.TrimPrefix(src, "./"), "/"))
	if name == "." || strings.HasPrefix(name, "../") {
		return false
	}
	info, err := fs.Stat(p.fsys, name)
	return err == nil && !info.IsDir()
}
