// Package summarizer orchestrates content summarization: video analysis with
// a metadata fallback, plus semantic location search over stored summaries.
package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"reelatlas/pkg/llm"
	"reelatlas/pkg/model"
)

var mimeTypes = map[string]string{
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".mov":  "video/quicktime",
	".mkv":  "video/x-matroska",
	".avi":  "video/x-msvideo",
}

const defaultMimeType = "video/mp4"

// Service generates summaries through an llm.Provider. Uploaded assets are
// always released, whatever the outcome.
type Service struct {
	provider      llm.Provider
	assets        llm.AssetHost
	uploadTimeout time.Duration
}

// New creates a summarization service. uploadTimeout bounds how long a video
// upload may stay in processing before the video path is abandoned.
func New(provider llm.Provider, assets llm.AssetHost, uploadTimeout time.Duration) *Service {
	if uploadTimeout <= 0 {
		uploadTimeout = 120 * time.Second
	}
	return &Service{
		provider:      provider,
		assets:        assets,
		uploadTimeout: uploadTimeout,
	}
}

// Summarize picks the best available strategy: video analysis when a local
// file exists and the caller prefers it, otherwise metadata text analysis.
// It never returns an error; failures are reported in the result so a
// partial answer always reaches the caller.
func (s *Service) Summarize(ctx context.Context, videoPath string, info *model.MediaInfo, preferVideo bool) model.SummaryResult {
	var videoErr error

	if videoPath != "" && preferVideo {
		text, err := s.summarizeVideo(ctx, videoPath, info)
		if err == nil {
			return model.SummaryResult{Summary: text, Method: model.MethodVideoAnalysis, Success: true}
		}
		videoErr = err
		slog.Warn("Video analysis failed, falling back to metadata", "error", err)
	}

	if info != nil && info.HasText() {
		text, err := s.summarizeMetadata(ctx, info)
		if err == nil {
			return model.SummaryResult{Summary: text, Method: model.MethodMetadataAnalysis, Success: true}
		}
		return model.SummaryResult{Method: model.MethodFailed, Success: false, Error: err.Error()}
	}

	if videoErr != nil {
		return model.SummaryResult{Method: model.MethodFailed, Success: false, Error: videoErr.Error()}
	}
	return model.SummaryResult{Method: model.MethodNone, Success: false, Error: "no content available for summarization"}
}

// summarizeVideo runs the full asset protocol: upload, wait for processing,
// generate, release. The release happens exactly once on every path.
func (s *Service) summarizeVideo(ctx context.Context, videoPath string, info *model.MediaInfo) (string, error) {
	mimeType := mimeTypeFor(videoPath)

	slog.Info("Uploading video for analysis", "path", videoPath, "mime", mimeType)
	ref, err := s.assets.Upload(ctx, videoPath, mimeType)
	if err != nil {
		return "", &GenerationError{Kind: KindUpload, Err: err}
	}

	defer func() {
		// Release must survive caller cancellation, the asset is already
		// on the remote side.
		cleanupCtx := context.WithoutCancel(ctx)
		if err := s.assets.Delete(cleanupCtx, ref); err != nil {
			slog.Warn("Failed to delete uploaded asset", "name", ref.Name, "error", err)
		} else {
			slog.Debug("Released uploaded asset", "name", ref.Name)
		}
	}()

	if err := s.assets.AwaitActive(ctx, ref, s.uploadTimeout); err != nil {
		return "", &GenerationError{Kind: classifyAwaitError(err), Err: err}
	}

	slog.Info("Requesting video summary", "asset", ref.Name)
	text, err := s.provider.GenerateVideoText(ctx, "video_summary", systemInstruction, videoPrompt(info), ref, mimeType)
	if err != nil {
		return "", &GenerationError{Kind: KindGenerate, Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return "", &GenerationError{Kind: KindGenerate, Err: fmt.Errorf("empty summary returned")}
	}

	return text, nil
}

func (s *Service) summarizeMetadata(ctx context.Context, info *model.MediaInfo) (string, error) {
	text, err := s.provider.GenerateTextWithSystem(ctx, "metadata_summary", systemInstruction, metadataPrompt(info))
	if err != nil {
		return "", &GenerationError{Kind: KindGenerate, Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return "", &GenerationError{Kind: KindGenerate, Err: fmt.Errorf("empty summary returned")}
	}
	return text, nil
}

func classifyAwaitError(err error) Kind {
	switch {
	case errors.Is(err, llm.ErrAssetFailed):
		return KindAssetFailed
	case errors.Is(err, llm.ErrAssetTimeout):
		return KindAssetTimeout
	default:
		return KindUpload
	}
}

func mimeTypeFor(path string) string {
	if mt, ok := mimeTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return mt
	}
	return defaultMimeType
}
