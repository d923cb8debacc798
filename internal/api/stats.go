package api

import (
	"net/http"

	"reelatlas/pkg/tracker"
)

type statsResponse struct {
	Providers map[string]tracker.ProviderStats `json:"providers"`
}

// HandleStats reports per-provider API usage counters.
// GET /api/stats
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats := map[string]tracker.ProviderStats{}
	if h.tracker != nil {
		stats = h.tracker.Snapshot()
	}
	respondJSON(w, http.StatusOK, statsResponse{Providers: stats})
}
