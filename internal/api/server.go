package api

import (
	"net/http"
	"time"

	"reelatlas/pkg/version"
)

// NewServer creates and configures the HTTP server.
func NewServer(addr string, h *Handler) *http.Server {
	mux := http.NewServeMux()

	// Health Endpoints (root is an alias)
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /{$}", h.handleHealth)

	// Media Endpoints
	mux.HandleFunc("POST /api/info", h.HandleInfo)
	mux.HandleFunc("POST /api/summarize", h.HandleSummarize)
	mux.HandleFunc("POST /api/summarize-quick", h.HandleSummarizeQuick)

	// Search Endpoint
	mux.HandleFunc("POST /api/search", h.HandleSearch)

	// Stats Endpoint
	mux.HandleFunc("GET /api/stats", h.HandleStats)

	return &http.Server{
		Addr:        addr,
		Handler:     mux,
		ReadTimeout: 30 * time.Second,
		// Summarization requests wait on downloads and model calls, so the
		// write timeout has to be generous.
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}
}

type healthResponse struct {
	Status           string `json:"status"`
	Version          string `json:"version"`
	GeminiConfigured bool   `json:"gemini_configured"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, healthResponse{
		Status:           "healthy",
		Version:          version.Version,
		GeminiConfigured: h.geminiConfigured,
	})
}
