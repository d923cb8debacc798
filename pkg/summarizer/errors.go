package summarizer

import "fmt"

// Kind classifies where in the video analysis pipeline a failure happened.
type Kind int

const (
	// KindUpload covers failures before the asset was usable: missing
	// file, upload transport errors, poll transport errors.
	KindUpload Kind = iota

	// KindAssetFailed means the service marked the uploaded asset FAILED.
	KindAssetFailed

	// KindAssetTimeout means the asset never became ready in time.
	KindAssetTimeout

	// KindGenerate means the generation call itself failed.
	KindGenerate
)

func (k Kind) String() string {
	switch k {
	case KindUpload:
		return "upload"
	case KindAssetFailed:
		return "asset_failed"
	case KindAssetTimeout:
		return "asset_timeout"
	case KindGenerate:
		return "generate"
	default:
		return "unknown"
	}
}

// GenerationError is a classified failure from one summarization path.
type GenerationError struct {
	Kind Kind
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("summarization failed (%s): %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
