package model

// MediaInfo holds the metadata a platform reports for a video.
// It is read-only input to the summarizer; absent fields stay empty.
type MediaInfo struct {
	ID          string  `json:"id"`
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	Duration    float64 `json:"duration,omitempty"` // seconds
	Uploader    string  `json:"uploader,omitempty"`
	Thumbnail   string  `json:"thumbnail,omitempty"`
	Platform    string  `json:"platform,omitempty"`
}

// HasText reports whether the metadata carries anything worth summarizing.
func (m *MediaInfo) HasText() bool {
	return m != nil && (m.Title != "" || m.Description != "")
}

// Download describes a completed media download.
type Download struct {
	Info      MediaInfo
	FilePath  string // local path of the media file, empty if none was produced
	RequestID string // workspace ID for cleanup
}

// Location is a geocoded place. Instances are only ever constructed from
// geocoding responses that carried explicit numeric coordinates.
type Location struct {
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DisplayName string  `json:"display_name,omitempty"`
}

// Method identifies which summarization strategy produced a result.
type Method string

const (
	MethodVideoAnalysis    Method = "video_analysis"
	MethodMetadataAnalysis Method = "metadata_analysis"
	MethodFailed           Method = "failed"
	MethodNone             Method = "none"
)

// SummaryResult is the terminal value of one summarization attempt.
// Success implies Summary is non-empty.
type SummaryResult struct {
	Summary string `json:"summary,omitempty"`
	Method  Method `json:"method"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Reel is a saved record used by semantic location search.
type Reel struct {
	ID        string     `json:"id"`
	URL       string     `json:"url"`
	Title     string     `json:"title,omitempty"`
	Summary   string     `json:"summary,omitempty"`
	Locations []Location `json:"locations"`
}

// LocationMatch is one semantic search hit, a known location plus the
// reel it came from and the model's stated reason.
type LocationMatch struct {
	Location
	SourceURL       string `json:"source_url"`
	SourceTitle     string `json:"source_title,omitempty"`
	ReelID          string `json:"reel_id"`
	RelevanceReason string `json:"relevance_reason"`
}
