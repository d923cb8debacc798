package api

import (
	"net/http"

	"reelatlas/pkg/model"
)

type infoRequest struct {
	URL string `json:"url"`
}

type infoResponse struct {
	Success   bool             `json:"success"`
	MediaInfo *model.MediaInfo `json:"media_info,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// HandleInfo returns media metadata without downloading.
// POST /api/info
func (h *Handler) HandleInfo(w http.ResponseWriter, r *http.Request) {
	var req infoRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.URL == "" {
		respondError(w, http.StatusBadRequest, "url is required")
		return
	}

	info, err := h.downloader.Info(r.Context(), req.URL)
	if err != nil {
		respondJSON(w, http.StatusOK, infoResponse{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, infoResponse{Success: true, MediaInfo: info})
}
