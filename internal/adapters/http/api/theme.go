package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"
)

// Theme values.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"

	themeCookie = "AIKYAM_theme"
	themeMaxAge = 365 * 24 * time.Hour
)

type themeResponse struct {
	Theme string `json:"theme"`
}

// ThemeHandler reads and writes the theme flag, the only state kept for a
// visitor. It lives in a cookie; nothing is stored server side.
type ThemeHandler struct{}

// NewThemeHandler creates a new theme handler.
func NewThemeHandler() *ThemeHandler {
	return &ThemeHandler{}
}

// HandleTheme handles GET and POST /api/theme. POST with {"theme": ...}
// sets the flag; POST without a body toggles it.
func (h *ThemeHandler) HandleTheme(w http.ResponseWriter, r *http.Request) {
	const op = "api.theme"
	current := readTheme(r)

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, themeResponse{Theme: current})
	case http.MethodPost:
		next := ThemeLight
		if current == ThemeLight {
			next = ThemeDark
		}
		// An empty body, chunked or not, toggles.
		var req themeResponse
		err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<10)).Decode(&req)
		if err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		switch req.Theme {
		case ThemeDark, ThemeLight:
			next = req.Theme
		case "":
		default:
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     themeCookie,
			Value:    next,
			Path:     "/",
			MaxAge:   int(themeMaxAge.Seconds()),
			SameSite: http.SameSiteLaxMode,
		})
		writeJSON(w, http.StatusOK, themeResponse{Theme: next})
	default:
		http.NotFound(w, r)
	}
}

// readTheme returns the stored theme, dark when absent or unknown.
func readTheme(r *http.Request) string {
	c, err := r.Cookie(themeCookie)
	if err != nil || c.Value != ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}
