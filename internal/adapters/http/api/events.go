package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	service "github.com/aikyam/site/internal/app"
	"github.com/aikyam/site/internal/domain/addtocal"
)

const calendarFilename = "aikyam-events.ics"

// EventDependencies renders the event loops and add-to-calendar output.
type EventDependencies interface {
	Upcoming(ctx context.Context) service.Loop
	Past(ctx context.Context) service.Loop
	Links(ctx context.Context, id string) (addtocal.Links, error)
	WriteEventICS(ctx context.Context, w io.Writer, id string) (string, error)
	WriteCalendarICS(ctx context.Context, w io.Writer) error
}

// EventsHandler handles event requests.
type EventsHandler struct {
	deps EventDependencies
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps EventDependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

// HandleUpcoming handles GET /api/events/upcoming requests.
func (h *EventsHandler) HandleUpcoming(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Upcoming(r.Context()))
}

// HandlePast handles GET /api/events/past requests.
func (h *EventsHandler) HandlePast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Past(r.Context()))
}

// HandleCalendarICS handles GET /api/events.ics requests.
func (h *EventsHandler) HandleCalendarICS(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_calendar_ics"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	var buf bytes.Buffer
	if err := h.deps.WriteCalendarICS(r.Context(), &buf); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeICS(w, calendarFilename, buf.Bytes())
}

// HandleEvent handles GET /api/events/{id}/links and /api/events/{id}/ics.
func (h *EventsHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_event"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Ids are path-escaped in card links, so split before unescaping.
	raw, action, ok := strings.Cut(strings.TrimPrefix(r.URL.EscapedPath(), "/api/events/"), "/")
	if !ok || raw == "" || strings.Contains(action, "/") {
		http.NotFound(w, r)
		return
	}
	id, err := url.PathUnescape(raw)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	switch action {
	case "links":
		links, err := h.deps.Links(r.Context(), id)
		if err != nil {
			writeEventError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, links)
	case "ics":
		var buf bytes.Buffer
		name, err := h.deps.WriteEventICS(r.Context(), &buf, id)
		if err != nil {
			writeEventError(w, op, err)
			return
		}
		writeICS(w, name, buf.Bytes())
	default:
		http.NotFound(w, r)
	}
}

func writeEventError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
	case errors.Is(err, addtocal.ErrUndated):
		writeError(w, http.StatusUnprocessableEntity, "undated", Wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}

func writeICS(w http.ResponseWriter, filename string, body []byte) {
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
