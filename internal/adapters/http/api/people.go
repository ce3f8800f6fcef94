package api

import (
	"context"
	"net/http"

	service "github.com/aikyam/site/internal/app"
	"github.com/aikyam/site/internal/domain/cards"
)

// PeopleDependencies renders the team, board and gallery sections.
type PeopleDependencies interface {
	Team(ctx context.Context) []cards.View
	Board(ctx context.Context) service.BoardView
	Gallery(ctx context.Context) service.Loop
}

// PeopleHandler handles the people and gallery sections.
type PeopleHandler struct {
	deps PeopleDependencies
}

// NewPeopleHandler creates a new people handler.
func NewPeopleHandler(deps PeopleDependencies) *PeopleHandler {
	return &PeopleHandler{deps: deps}
}

// HandleTeam handles GET /api/team requests.
func (h *PeopleHandler) HandleTeam(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Team(r.Context()))
}

// HandleBoard handles GET /api/board requests.
func (h *PeopleHandler) HandleBoard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Board(r.Context()))
}

// HandleGallery handles GET /api/gallery requests.
func (h *PeopleHandler) HandleGallery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Gallery(r.Context()))
}
