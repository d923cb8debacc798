// Package llm defines the interfaces the summarization pipeline uses to talk
// to generation services, keeping the concrete SDK out of the orchestration
// code.
package llm

import (
	"context"
	"time"
)

// Provider defines the interface for interacting with generation services.
type Provider interface {
	// GenerateText sends a prompt and returns the text response.
	// name identifies the calling intent for logging and stats.
	GenerateText(ctx context.Context, name, prompt string) (string, error)

	// GenerateTextWithSystem is GenerateText with a system instruction.
	GenerateTextWithSystem(ctx context.Context, name, system, prompt string) (string, error)

	// GenerateVideoText sends a prompt together with a previously uploaded
	// video asset and returns the text response.
	GenerateVideoText(ctx context.Context, name, system, prompt string, asset AssetRef, mimeType string) (string, error)

	// GenerateJSON sends a prompt with a system instruction and unmarshals
	// the response into target.
	// A response that is not valid JSON is reported as ErrMalformedResponse.
	GenerateJSON(ctx context.Context, name, system, prompt string, target any) error

	// HealthCheck verifies that the provider is configured and reachable.
	HealthCheck(ctx context.Context) error
}

// AssetRef identifies a binary asset uploaded to a generation service.
// URI goes into prompts; Name is the handle for state polling and deletion.
type AssetRef struct {
	URI  string
	Name string
}

// AssetHost manages remote binary assets used for video analysis.
type AssetHost interface {
	// Upload pushes a local file to the service and returns its reference.
	// The asset is usually not ready for use yet; see AwaitActive.
	Upload(ctx context.Context, path, mimeType string) (AssetRef, error)

	// AwaitActive polls until the asset is ready. It returns
	// ErrAssetFailed when the service marks the asset unusable and
	// ErrAssetTimeout when the deadline passes first.
	AwaitActive(ctx context.Context, ref AssetRef, timeout time.Duration) error

	// Delete removes the asset from the service.
	Delete(ctx context.Context, ref AssetRef) error
}
