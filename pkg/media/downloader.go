// Package media downloads social media videos and their metadata through the
// yt-dlp command line tool.
package media

import (
	"context"
	"errors"

	"reelatlas/pkg/model"
)

// ErrDownload wraps every failure the downloader reports, so handlers can
// distinguish download problems from everything else with errors.Is.
var ErrDownload = errors.New("download failed")

// Downloader fetches media and metadata from a platform URL.
type Downloader interface {
	// Info extracts media metadata without downloading anything.
	Info(ctx context.Context, url string) (*model.MediaInfo, error)

	// Download fetches the media file into a per-request workspace.
	Download(ctx context.Context, url string) (*model.Download, error)

	// Cleanup removes the workspace of a single request.
	Cleanup(requestID string)

	// CleanupAll removes every workspace. Called on shutdown.
	CleanupAll()
}
