package site

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFS embed.FS

// Files returns the embedded site rooted at its top directory. Datasets
// live under data/.
func Files() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return staticFS
	}
	return sub
}

// FS returns an http.FileSystem for the embedded site.
func FS() http.FileSystem {
	return http.FS(Files())
}
