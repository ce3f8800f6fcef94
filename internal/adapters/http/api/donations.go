package api

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/aikyam/site/internal/adapters/mq/queue"
	service "github.com/aikyam/site/internal/app"
	"github.com/aikyam/site/internal/domain/donation"
)

const (
	defaultDonationsLimit = 10
	maxDonationBodyBytes  = 64 << 10
)

// DonationDependencies defines the donation operations.
type DonationDependencies interface {
	SubmitDonation(ctx context.Context, req service.DonationRequest) (service.Ack, error)
	Donations(ctx context.Context, limit int) (service.DonationsView, error)
}

// DonationsHandler handles donation requests.
type DonationsHandler struct {
	deps     DonationDependencies
	maxLimit int
}

// NewDonationsHandler creates a new donations handler.
func NewDonationsHandler(deps DonationDependencies, maxLimit int) *DonationsHandler {
	return &DonationsHandler{deps: deps, maxLimit: maxLimit}
}

// HandleDonations dispatches GET and POST /api/donations.
func (h *DonationsHandler) HandleDonations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r)
	case http.MethodPost:
		h.handlePost(w, r)
	default:
		http.NotFound(w, r)
	}
}

// handleGet serves the progress panel with up to ?limit=N leaderboard rows.
func (h *DonationsHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_donations"
	n := defaultDonationsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		n = v
	}
	if n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
		return
	}
	view, err := h.deps.Donations(r.Context(), n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handlePost accepts the donation form as JSON or as a url-encoded form.
func (h *DonationsHandler) handlePost(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_donation"
	r.Body = http.MaxBytesReader(w, r.Body, maxDonationBodyBytes)

	req, err := decodeDonation(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	ack, err := h.deps.SubmitDonation(r.Context(), req)
	switch {
	case err == nil:
	case errors.Is(err, donation.ErrInvalidAmount):
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "invalid_amount", Message: donation.RejectMessage})
		return
	case errors.Is(err, queue.ErrFull):
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
		return
	case errors.Is(err, queue.ErrClosed), errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", NewKind(op, ErrUnavailable))
		return
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	if ack.Duplicate {
		writeJSON(w, http.StatusOK, ack)
		return
	}
	writeJSON(w, http.StatusAccepted, ack)
}

func decodeDonation(r *http.Request) (service.DonationRequest, error) {
	var req service.DonationRequest
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch ct {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseForm(); err != nil {
			return req, err
		}
		req.ID = r.PostFormValue("id")
		req.Name = r.PostFormValue("name")
		req.Email = r.PostFormValue("email")
		req.Preset = r.PostFormValue("preset")
		req.Custom = r.PostFormValue("custom")
		switch strings.ToLower(r.PostFormValue("recurring")) {
		case "on", "true", "1", "yes":
			req.Recurring = true
		}
		return req, nil
	default:
		err := json.NewDecoder(r.Body).Decode(&req)
		return req, err
	}
}
