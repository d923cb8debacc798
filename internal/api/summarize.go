package api

import (
	"context"
	"log/slog"
	"net/http"

	"reelatlas/pkg/model"
)

type summarizeRequest struct {
	URL string `json:"url"`

	// Pointer so an absent field defaults to true.
	PreferVideoAnalysis *bool `json:"prefer_video_analysis"`
}

type summarizeResponse struct {
	Success        bool             `json:"success"`
	URL            string           `json:"url"`
	Summary        string           `json:"summary,omitempty"`
	GeneratedTitle string           `json:"generated_title,omitempty"`
	Method         model.Method     `json:"method"`
	MediaInfo      *model.MediaInfo `json:"media_info,omitempty"`
	Locations      []model.Location `json:"locations,omitempty"`
	Error          string           `json:"error,omitempty"`
}

// HandleSummarize downloads the media, summarizes it (video first, metadata
// fallback), then extracts a title and geocoded locations from the summary.
// POST /api/summarize
func (h *Handler) HandleSummarize(w http.ResponseWriter, r *http.Request) {
	if !h.geminiConfigured {
		respondError(w, http.StatusServiceUnavailable, "Gemini API is not configured")
		return
	}

	var req summarizeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.URL == "" {
		respondError(w, http.StatusBadRequest, "url is required")
		return
	}
	preferVideo := req.PreferVideoAnalysis == nil || *req.PreferVideoAnalysis

	slog.Info("Summarize request", "url", req.URL, "prefer_video", preferVideo)

	dl, err := h.downloader.Download(r.Context(), req.URL)
	if err != nil {
		// Failure to download is an expected outcome for private or
		// removed posts, reported in-band like the summarizer does.
		respondJSON(w, http.StatusOK, summarizeResponse{
			Success: false,
			URL:     req.URL,
			Method:  model.MethodFailed,
			Error:   "Download failed: " + err.Error(),
		})
		return
	}
	defer h.downloader.Cleanup(dl.RequestID)

	result := h.summarizer.Summarize(r.Context(), dl.FilePath, &dl.Info, preferVideo)
	title, locations := h.enrich(r.Context(), result)

	respondJSON(w, http.StatusOK, summarizeResponse{
		Success:        result.Success,
		URL:            req.URL,
		Summary:        result.Summary,
		GeneratedTitle: title,
		Method:         result.Method,
		MediaInfo:      &dl.Info,
		Locations:      locations,
		Error:          result.Error,
	})
}

// HandleSummarizeQuick summarizes from metadata only, skipping the download.
// POST /api/summarize-quick
func (h *Handler) HandleSummarizeQuick(w http.ResponseWriter, r *http.Request) {
	if !h.geminiConfigured {
		respondError(w, http.StatusServiceUnavailable, "Gemini API is not configured")
		return
	}

	var req summarizeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.URL == "" {
		respondError(w, http.StatusBadRequest, "url is required")
		return
	}

	slog.Info("Quick summarize request", "url", req.URL)

	info, err := h.downloader.Info(r.Context(), req.URL)
	if err != nil {
		respondJSON(w, http.StatusOK, summarizeResponse{
			Success: false,
			URL:     req.URL,
			Method:  model.MethodFailed,
			Error:   "Failed to fetch metadata: " + err.Error(),
		})
		return
	}

	result := h.summarizer.Summarize(r.Context(), "", info, false)
	title, locations := h.enrich(r.Context(), result)

	respondJSON(w, http.StatusOK, summarizeResponse{
		Success:        result.Success,
		URL:            req.URL,
		Summary:        result.Summary,
		GeneratedTitle: title,
		Method:         result.Method,
		MediaInfo:      info,
		Locations:      locations,
		Error:          result.Error,
	})
}

// enrich derives the title and geocoded locations from a successful summary.
func (h *Handler) enrich(ctx context.Context, result model.SummaryResult) (string, []model.Location) {
	if !result.Success || result.Summary == "" {
		return "", nil
	}

	title, _ := h.extractTitle(result.Summary)

	names := h.extractLocations(result.Summary)
	if len(names) == 0 {
		return title, nil
	}

	locations := h.resolver.GeocodeBatch(ctx, names)
	slog.Info("Summary enriched", "title", title, "candidates", len(names), "geocoded", len(locations))
	return title, locations
}
