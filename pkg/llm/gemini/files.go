package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jonboulle/clockwork"
	"google.golang.org/genai"

	"reelatlas/pkg/llm"
)

// Upload pushes a local file to the Gemini Files API. The returned asset is
// typically still PROCESSING; callers must AwaitActive before using it in a
// generation call.
func (c *Client) Upload(ctx context.Context, path, mimeType string) (llm.AssetRef, error) {
	c.mu.RLock()
	client := c.genaiClient
	c.mu.RUnlock()

	if client == nil {
		return llm.AssetRef{}, fmt.Errorf("gemini client not configured")
	}

	if _, err := os.Stat(path); err != nil {
		return llm.AssetRef{}, fmt.Errorf("video file not accessible: %w", err)
	}

	f, err := client.Files.UploadFromPath(ctx, path, &genai.UploadFileConfig{MIMEType: mimeType})
	if err != nil {
		c.trackFailure()
		return llm.AssetRef{}, fmt.Errorf("file upload failed: %w", err)
	}

	c.trackSuccess()
	slog.Debug("Uploaded file to Gemini", "name", f.Name, "state", f.State)
	return llm.AssetRef{URI: f.URI, Name: f.Name}, nil
}

// AwaitActive polls the file state until it becomes ACTIVE.
func (c *Client) AwaitActive(ctx context.Context, ref llm.AssetRef, timeout time.Duration) error {
	c.mu.RLock()
	client := c.genaiClient
	interval := c.pollInterval
	clock := c.clock
	c.mu.RUnlock()

	if client == nil {
		return fmt.Errorf("gemini client not configured")
	}

	return awaitActive(ctx, clock, interval, timeout, func(ctx context.Context) (genai.FileState, error) {
		f, err := client.Files.Get(ctx, ref.Name, nil)
		if err != nil {
			return genai.FileStateUnspecified, err
		}
		return f.State, nil
	})
}

// awaitActive runs the poll loop against an abstract state getter so the
// timing behavior is testable without the real Files API.
func awaitActive(ctx context.Context, clock clockwork.Clock, interval, timeout time.Duration, get func(context.Context) (genai.FileState, error)) error {
	deadline := clock.Now().Add(timeout)

	for {
		state, err := get(ctx)
		if err != nil {
			return fmt.Errorf("file state check failed: %w", err)
		}

		switch state {
		case genai.FileStateActive:
			return nil
		case genai.FileStateFailed:
			return fmt.Errorf("%w: file marked FAILED", llm.ErrAssetFailed)
		}

		if !clock.Now().Add(interval).After(deadline) {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-clock.After(interval):
			}
			continue
		}

		return fmt.Errorf("%w after %s", llm.ErrAssetTimeout, timeout)
	}
}

// Delete removes an uploaded asset. Safe to call regardless of asset state.
func (c *Client) Delete(ctx context.Context, ref llm.AssetRef) error {
	c.mu.RLock()
	client := c.genaiClient
	c.mu.RUnlock()

	if client == nil {
		return fmt.Errorf("gemini client not configured")
	}

	if _, err := client.Files.Delete(ctx, ref.Name, nil); err != nil {
		return fmt.Errorf("file delete failed: %w", err)
	}
	slog.Debug("Deleted Gemini file", "name", ref.Name)
	return nil
}
