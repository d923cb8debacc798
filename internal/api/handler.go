// Package api exposes the summarization pipeline over HTTP.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"reelatlas/pkg/media"
	"reelatlas/pkg/model"
	"reelatlas/pkg/tracker"
)

// Summarizer is the slice of the summarization service the handlers need.
type Summarizer interface {
	Summarize(ctx context.Context, videoPath string, info *model.MediaInfo, preferVideo bool) model.SummaryResult
	SearchLocations(ctx context.Context, query string, reels []model.Reel) ([]model.LocationMatch, error)
}

// Resolver turns extracted location names into coordinates.
type Resolver interface {
	GeocodeBatch(ctx context.Context, names []string) []model.Location
}

// TitleExtractor pulls a title out of a generated summary.
type TitleExtractor func(text string) (string, bool)

// LocationExtractor pulls location names out of a generated summary.
type LocationExtractor func(text string) []string

// Handler holds the dependencies of all API endpoints.
type Handler struct {
	downloader media.Downloader
	summarizer Summarizer
	resolver   Resolver
	tracker    *tracker.Tracker

	extractTitle     TitleExtractor
	extractLocations LocationExtractor

	geminiConfigured bool
}

// NewHandler wires the API endpoints to their services.
func NewHandler(dl media.Downloader, sum Summarizer, res Resolver, tk *tracker.Tracker,
	titles TitleExtractor, locations LocationExtractor, geminiConfigured bool) *Handler {
	return &Handler{
		downloader:       dl,
		summarizer:       sum,
		resolver:         res,
		tracker:          tk,
		extractTitle:     titles,
		extractLocations: locations,
		geminiConfigured: geminiConfigured,
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// decodeJSON parses a request body, answering 400 itself on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}
