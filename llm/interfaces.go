package llm

import (
	"context"
)

// UpdateFunc receives one incremental text fragment during streaming.
// It is invoked once per received fragment, in backend emission order,
// zero or more times, strictly before StreamCompletion returns.
type UpdateFunc func(fragment string)

// Provider is the capability contract every backend adapter implements.
// Implementations handle backend-specific wire details internally; an
// adapter instance is stateless beyond its immutable settings snapshot and
// may safely serve concurrent independent calls.
type Provider interface {
	// Name returns the backend name (one of the Provider* constants).
	Name() string

	// StreamCompletion streams a completion for a full conversation.
	// Cancellation via ctx aborts the underlying transport and is not an
	// error: the call returns nil. Terminal failures return a single
	// wrapped *Error; raw transport errors never cross this boundary.
	StreamCompletion(ctx context.Context, conversation []Message, onUpdate UpdateFunc) error

	// ValidateKey performs a cheap authenticated probe against the
	// backend's model-listing endpoint and classifies the outcome.
	// It never fails; all outcomes are returned as a typed result.
	ValidateKey(ctx context.Context) KeyValidation

	// ListModels fetches the backend's model catalog. On any failure it
	// returns the backend's hard-coded fallback list rather than an error,
	// so selection UIs always have usable entries. Results are sorted by
	// display name.
	ListModels(ctx context.Context) []ModelInfo
}

// ImageUploader is the optional capability for adapters that can make an
// image addressable by their backend. Callers discover it by type assertion
// on the Provider value and must treat absence as "unsupported", not as an
// error.
type ImageUploader interface {
	// UploadImage makes raw image bytes addressable by the backend and
	// returns a reference usable with AnalyzeImage.
	UploadImage(ctx context.Context, data []byte, name string) (string, error)

	// UploadImageFromURL makes an already-hosted image addressable by the
	// backend and returns a reference usable with AnalyzeImage.
	UploadImageFromURL(ctx context.Context, srcURL string) (string, error)
}

// ImageAnalyzer is the optional capability for adapters whose backend can
// answer questions about an image. Discovered the same way as ImageUploader.
type ImageAnalyzer interface {
	// AnalyzeImage asks the backend's vision model about an image.
	AnalyzeImage(ctx context.Context, image string, prompt string) (string, error)
}

// AsImageUploader probes a provider for the upload capability.
func AsImageUploader(p Provider) (ImageUploader, bool) {
	u, ok := p.(ImageUploader)
	return u, ok
}

// AsImageAnalyzer probes a provider for the analysis capability.
func AsImageAnalyzer(p Provider) (ImageAnalyzer, bool) {
	a, ok := p.(ImageAnalyzer)
	return a, ok
}

// CompletePrompt streams a completion for a bare prompt by wrapping it into
// a one-message user-only conversation. The adapter injects the configured
// system prompt.
func CompletePrompt(ctx context.Context, p Provider, prompt string, onUpdate UpdateFunc) error {
	return p.StreamCompletion(ctx, UserConversation(prompt), onUpdate)
}
