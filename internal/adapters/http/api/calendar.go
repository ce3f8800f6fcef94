package api

import (
	"context"
	"net/http"
	"time"

	"github.com/aikyam/site/internal/domain/calendar"
)

// CalendarDependencies renders the month grid and schedule list.
type CalendarDependencies interface {
	Calendar(ctx context.Context, at time.Time) calendar.Month
	Schedule(ctx context.Context) []calendar.Item
}

// CalendarHandler handles calendar requests.
type CalendarHandler struct {
	deps CalendarDependencies
}

// NewCalendarHandler creates a new calendar handler.
func NewCalendarHandler(deps CalendarDependencies) *CalendarHandler {
	return &CalendarHandler{deps: deps}
}

// HandleCalendar handles GET /api/calendar?month=YYYY-MM requests. Without
// month the current month is rendered.
func (h *CalendarHandler) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_calendar"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	var at time.Time
	if raw := r.URL.Query().Get("month"); raw != "" {
		first, err := time.Parse("2006-01", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		// Mid-month stays inside the month in every zone.
		at = first.AddDate(0, 0, 14)
	}
	writeJSON(w, http.StatusOK, h.deps.Calendar(r.Context(), at))
}

// HandleSchedule handles GET /api/schedule requests.
func (h *CalendarHandler) HandleSchedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Schedule(r.Context()))
}
