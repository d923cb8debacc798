package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"reelatlas/pkg/config"
	"reelatlas/pkg/model"
)

// mediaExtensions are checked first when locating the downloaded file;
// anything else in the workspace is a fallback.
var mediaExtensions = map[string]bool{
	".mp4":  true,
	".webm": true,
	".mkv":  true,
	".mov":  true,
}

// ytdlpInfo is the subset of yt-dlp's JSON output we care about.
type ytdlpInfo struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Duration     float64 `json:"duration"`
	Uploader     string  `json:"uploader"`
	Thumbnail    string  `json:"thumbnail"`
	ExtractorKey string  `json:"extractor_key"`
}

func (i *ytdlpInfo) toModel() model.MediaInfo {
	platform := i.ExtractorKey
	if platform == "" {
		platform = "Unknown"
	}
	return model.MediaInfo{
		ID:          i.ID,
		Title:       i.Title,
		Description: i.Description,
		Duration:    i.Duration,
		Uploader:    i.Uploader,
		Thumbnail:   i.Thumbnail,
		Platform:    platform,
	}
}

// YTDLP implements Downloader by shelling out to yt-dlp. Each download gets
// its own workspace directory named by a short request ID, so concurrent
// requests never collide and cleanup is a single RemoveAll.
type YTDLP struct {
	dir         string
	binary      string
	maxDuration int // seconds, 0 means unlimited
}

// NewYTDLP creates a downloader rooted at cfg.Dir.
func NewYTDLP(cfg config.DownloaderConfig) (*YTDLP, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create download directory: %w", err)
	}

	binary := cfg.Binary
	if binary == "" {
		binary = "yt-dlp"
	}

	return &YTDLP{
		dir:         cfg.Dir,
		binary:      binary,
		maxDuration: int(cfg.MaxDuration.Std().Seconds()),
	}, nil
}

// Info extracts media metadata without downloading.
func (y *YTDLP) Info(ctx context.Context, url string) (*model.MediaInfo, error) {
	args := []string{
		"--dump-json",
		"--no-warnings",
		"--skip-download",
		url,
	}

	out, err := y.run(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to extract info: %s", ErrDownload, err)
	}

	var raw ytdlpInfo
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, fmt.Errorf("%w: unreadable metadata: %s", ErrDownload, err)
	}

	info := raw.toModel()
	return &info, nil
}

// Download fetches the media into a fresh workspace and returns its metadata
// together with the local file path. FilePath stays empty when yt-dlp
// produced no file (some posts are metadata-only).
func (y *YTDLP) Download(ctx context.Context, url string) (*model.Download, error) {
	requestID := uuid.NewString()[:8]
	workspace := filepath.Join(y.dir, requestID)
	if err := os.MkdirAll(workspace, 0o755); err != nil {
		return nil, fmt.Errorf("%w: failed to create workspace: %s", ErrDownload, err)
	}

	args := []string{
		"--no-warnings",
		"--print-json",
		"-f", "best[ext=mp4]/best",
		"--merge-output-format", "mp4",
		"-o", filepath.Join(workspace, "%(id)s.%(ext)s"),
	}
	if y.maxDuration > 0 {
		args = append(args, "--match-filter", fmt.Sprintf("duration <= %d", y.maxDuration))
	}
	args = append(args, url)

	out, err := y.run(ctx, args)
	if err != nil {
		y.Cleanup(requestID)
		return nil, fmt.Errorf("%w: %s", ErrDownload, err)
	}

	var raw ytdlpInfo
	if err := json.Unmarshal(out, &raw); err != nil {
		y.Cleanup(requestID)
		return nil, fmt.Errorf("%w: unreadable metadata: %s", ErrDownload, err)
	}

	filePath := findMediaFile(workspace)
	if filePath == "" {
		slog.Warn("Download produced no media file", "url", url, "request_id", requestID)
	}

	info := raw.toModel()
	if info.ID == "" {
		info.ID = requestID
	}

	return &model.Download{
		Info:      info,
		FilePath:  filePath,
		RequestID: requestID,
	}, nil
}

// Cleanup removes the workspace of a single request. Harmless if it is
// already gone.
func (y *YTDLP) Cleanup(requestID string) {
	if requestID == "" || strings.ContainsAny(requestID, `/\`) {
		return
	}
	if err := os.RemoveAll(filepath.Join(y.dir, requestID)); err != nil {
		slog.Warn("Failed to clean up download workspace", "request_id", requestID, "error", err)
	}
}

// CleanupAll wipes every workspace under the download directory.
func (y *YTDLP) CleanupAll() {
	entries, err := os.ReadDir(y.dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(y.dir, e.Name())); err != nil {
			slog.Warn("Failed to clean up download entry", "name", e.Name(), "error", err)
		}
	}
}

func (y *YTDLP) run(ctx context.Context, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, y.binary, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Debug("Running yt-dlp", "args", strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("yt-dlp: %s", firstLine(msg))
	}

	return stdout.Bytes(), nil
}

// findMediaFile locates the downloaded media in a workspace, preferring known
// video extensions over whatever else yt-dlp left behind.
func findMediaFile(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	var fallback string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if mediaExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			return path
		}
		if fallback == "" {
			fallback = path
		}
	}
	return fallback
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i != -1 {
		return s[:i]
	}
	return s
}
