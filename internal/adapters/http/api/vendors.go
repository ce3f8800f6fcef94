package api

import (
	"context"
	"net/http"

	service "github.com/aikyam/site/internal/app"
)

// VendorDependencies renders the vendor grid and marquee.
type VendorDependencies interface {
	Vendors(ctx context.Context, category string) service.VendorsView
	VendorMarquee(ctx context.Context) service.Loop
}

// VendorsHandler handles vendor requests.
type VendorsHandler struct {
	deps VendorDependencies
}

// NewVendorsHandler creates a new vendors handler.
func NewVendorsHandler(deps VendorDependencies) *VendorsHandler {
	return &VendorsHandler{deps: deps}
}

// HandleVendors handles GET /api/vendors?category=X requests. A missing
// category means All; an unknown one yields the empty state, not an error.
func (h *VendorsHandler) HandleVendors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Vendors(r.Context(), r.URL.Query().Get("category")))
}

// HandleMarquee handles GET /api/vendors/marquee requests.
func (h *VendorsHandler) HandleMarquee(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.VendorMarquee(r.Context()))
}
