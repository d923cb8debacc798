package llm

import "errors"

var (
	// ErrAssetFailed means the service processed the uploaded asset and
	// marked it unusable. Retrying the same upload will not help.
	ErrAssetFailed = errors.New("asset processing failed")

	// ErrAssetTimeout means the asset never became ready within the
	// configured window.
	ErrAssetTimeout = errors.New("timed out waiting for asset")

	// ErrMalformedResponse means the model answered, but not in the shape
	// the caller asked for. Callers decide whether to degrade or fail.
	ErrMalformedResponse = errors.New("malformed model response")
)
