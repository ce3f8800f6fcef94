package api

import (
	"context"
	"net/http"

	service "github.com/aikyam/site/internal/app"
)

// PageDependencies renders every section at once.
type PageDependencies interface {
	Page(ctx context.Context) (service.Page, error)
}

// PageHandler handles the bootstrap payload.
type PageHandler struct {
	deps PageDependencies
}

// NewPageHandler creates a new page handler.
func NewPageHandler(deps PageDependencies) *PageHandler {
	return &PageHandler{deps: deps}
}

// HandlePage handles GET /api/bootstrap requests.
func (h *PageHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_bootstrap"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	page, err := h.deps.Page(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, page)
}
