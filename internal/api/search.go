package api

import (
	"log/slog"
	"net/http"

	"reelatlas/pkg/model"
)

type searchRequest struct {
	Query string       `json:"query"`
	Reels []model.Reel `json:"reels"`
}

type searchResponse struct {
	Success bool                  `json:"success"`
	Query   string                `json:"query"`
	Matches []model.LocationMatch `json:"matches"`
}

// HandleSearch runs a semantic location search over the submitted reels.
// POST /api/search
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if !h.geminiConfigured {
		respondError(w, http.StatusServiceUnavailable, "Gemini API is not configured")
		return
	}

	var req searchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Query == "" {
		respondError(w, http.StatusBadRequest, "query is required")
		return
	}

	matches, err := h.summarizer.SearchLocations(r.Context(), req.Query, req.Reels)
	if err != nil {
		slog.Error("Location search failed", "query", req.Query, "error", err)
		respondError(w, http.StatusInternalServerError, "search failed: "+err.Error())
		return
	}

	if matches == nil {
		matches = []model.LocationMatch{}
	}
	respondJSON(w, http.StatusOK, searchResponse{Success: true, Query: req.Query, Matches: matches})
}
