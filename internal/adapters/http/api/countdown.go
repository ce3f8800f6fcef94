package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/aikyam/site/internal/domain/countdown"
)

// CountdownDependencies renders the current countdown.
type CountdownDependencies interface {
	Countdown(ctx context.Context) countdown.Display
}

// CountdownHandler handles countdown requests.
type CountdownHandler struct {
	deps   CountdownDependencies
	broker Broker
}

// NewCountdownHandler creates a new countdown handler.
func NewCountdownHandler(deps CountdownDependencies, broker Broker) *CountdownHandler {
	return &CountdownHandler{deps: deps, broker: broker}
}

// HandleCountdown handles GET /api/countdown requests.
func (h *CountdownHandler) HandleCountdown(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Countdown(r.Context()))
}

// HandleStream handles GET /api/countdown/stream. It writes the current
// display as a server-sent event and another one on every timer tick
// until the client goes away.
func (h *CountdownHandler) HandleStream(w http.ResponseWriter, r *http.Request) {
	const op = "api.countdown_stream"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	rc := http.NewResponseController(w)
	// Streams outlive the server write timeout.
	if err := rc.SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrStream, err))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	ctx := r.Context()
	ch := h.broker.Subscribe()
	defer h.broker.Unsubscribe(ch)

	for {
		data, err := json.Marshal(h.deps.Countdown(ctx))
		if err != nil {
			return
		}
		if _, err := w.Write([]byte("event: countdown\ndata: ")); err != nil {
			return
		}
		if _, err := w.Write(data); err != nil {
			return
		}
		if _, err := w.Write([]byte("\n\n")); err != nil {
			return
		}
		if err := rc.Flush(); err != nil {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ch:
		}
	}
}
