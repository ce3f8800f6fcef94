// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	service "github.com/aikyam/site/internal/app"
)

const defaultMaxLimit = 100

// Dependencies required by HTTP handlers. Each handler only sees the
// slice of it that it needs.
type Dependencies interface {
	PageDependencies
	PeopleDependencies
	EventDependencies
	CalendarDependencies
	CountdownDependencies
	VendorDependencies
	DonationDependencies
}

// Server wires HTTP routes for the site API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	pageHandler      *PageHandler
	peopleHandler    *PeopleHandler
	eventsHandler    *EventsHandler
	calendarHandler  *CalendarHandler
	countdownHandler *CountdownHandler
	vendorsHandler   *VendorsHandler
	donationsHandler *DonationsHandler
	themeHandler     *ThemeHandler
}

// ServerOption configures a Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	maxLimit int
}

// WithMaxLeaderboardLimit caps GET /api/donations?limit.
func WithMaxLeaderboardLimit(n int) ServerOption {
	return func(c *serverConfig) {
		if n > 0 {
			c.maxLimit = n
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, broker Broker, opts ...ServerOption) *Server {
	cfg := serverConfig{maxLimit: defaultMaxLimit}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		pageHandler:      NewPageHandler(deps),
		peopleHandler:    NewPeopleHandler(deps),
		eventsHandler:    NewEventsHandler(deps),
		calendarHandler:  NewCalendarHandler(deps),
		countdownHandler: NewCountdownHandler(deps, broker),
		vendorsHandler:   NewVendorsHandler(deps),
		donationsHandler: NewDonationsHandler(deps, cfg.maxLimit),
		themeHandler:     NewThemeHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/bootstrap", MetricsMiddleware(s.pageHandler.HandlePage, "bootstrap"))
	mux.HandleFunc("/api/team", MetricsMiddleware(s.peopleHandler.HandleTeam, "team"))
	mux.HandleFunc("/api/board", MetricsMiddleware(s.peopleHandler.HandleBoard, "board"))
	mux.HandleFunc("/api/events/upcoming", MetricsMiddleware(s.eventsHandler.HandleUpcoming, "events_upcoming"))
	mux.HandleFunc("/api/events/past", MetricsMiddleware(s.eventsHandler.HandlePast, "events_past"))
	mux.HandleFunc("/api/events.ics", MetricsMiddleware(s.eventsHandler.HandleCalendarICS, "events_ics"))
	mux.HandleFunc("/api/events/", MetricsMiddleware(s.eventsHandler.HandleEvent, "event"))
	mux.HandleFunc("/api/calendar", MetricsMiddleware(s.calendarHandler.HandleCalendar, "calendar"))
	mux.HandleFunc("/api/schedule", MetricsMiddleware(s.calendarHandler.HandleSchedule, "schedule"))
	mux.HandleFunc("/api/countdown", MetricsMiddleware(s.countdownHandler.HandleCountdown, "countdown"))
	mux.HandleFunc("/api/countdown/stream", MetricsMiddleware(s.countdownHandler.HandleStream, "countdown_stream"))
	mux.HandleFunc("/api/vendors", MetricsMiddleware(s.vendorsHandler.HandleVendors, "vendors"))
	mux.HandleFunc("/api/vendors/marquee", MetricsMiddleware(s.vendorsHandler.HandleMarquee, "vendors_marquee"))
	mux.HandleFunc("/api/gallery", MetricsMiddleware(s.peopleHandler.HandleGallery, "gallery"))
	mux.HandleFunc("/api/donations", MetricsMiddleware(s.donationsHandler.HandleDonations, "donations"))
	mux.HandleFunc("/api/theme", MetricsMiddleware(s.themeHandler.HandleTheme, "theme"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// Broker is the countdown notification source.
type Broker interface {
	Subscribe() chan struct{}
	Unsubscribe(ch chan struct{})
}

var _ Broker = (*service.Broker)(nil)
