package domain

import (
	"context"
	"fmt"
	"strings"
)

// Provider identifies one external service backing a capability.
type Provider string

const (
	ProviderVision   Provider = "google-vision"
	ProviderOCRSpace Provider = "ocr-space"
	ProviderOpenAI   Provider = "openai"
	ProviderGemini   Provider = "gemini"
	ProviderOllama   Provider = "ollama"

	// ProviderInline marks text taken straight from the upload, with no
	// OCR provider involved.
	ProviderInline Provider = "inline"
)

// ExtractionRequest is one uploaded document. Immutable, created per upload.
type ExtractionRequest struct {
	Payload   []byte
	MediaType string
}

// ExtractionResult is the canonical success value of the extraction
// capability. Text may be empty but is never reported by a successful
// adapter; adapters treat whitespace-only text as a failure so the
// orchestrator moves on.
type ExtractionResult struct {
	Text           string   `json:"text"`
	SourceProvider Provider `json:"source_provider"`
}

// GenerationRequest is one prompt for the text generation capability.
type GenerationRequest struct {
	Prompt    string
	MaxTokens int
}

// TokenUsage mirrors the primary provider's usage report. Providers that do
// not report usage synthesize a zero value.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// GenerationResult is the canonical success value of the generation capability.
type GenerationResult struct {
	Text           string     `json:"text"`
	SourceProvider Provider   `json:"source_provider"`
	Usage          TokenUsage `json:"usage"`
}

// TextExtractor is one provider-specific implementation of the
// "extract text" capability.
type TextExtractor interface {
	Provider() Provider
	Extract(ctx context.Context, req ExtractionRequest) (ExtractionResult, error)
}

// TextGenerator is one provider-specific implementation of the
// "generate text" capability.
type TextGenerator interface {
	Provider() Provider
	Generate(ctx context.Context, req GenerationRequest) (GenerationResult, error)
}

// ProviderFailure records why a single adapter in a chain failed. The
// orchestrator handles it internally; it never surfaces past the chain.
type ProviderFailure struct {
	Provider Provider `json:"provider"`
	Message  string   `json:"message"`
}

func (f ProviderFailure) Error() string {
	return fmt.Sprintf("%s: %s", f.Provider, f.Message)
}

// NewProviderFailure wraps an adapter error into a ProviderFailure,
// keeping the provider's own message.
func NewProviderFailure(provider Provider, err error) ProviderFailure {
	return ProviderFailure{Provider: provider, Message: err.Error()}
}

// AggregateFailure means every adapter in a chain was tried and failed.
// Failures are kept in invocation order so callers can report which
// providers were tried and why each failed.
type AggregateFailure struct {
	Capability string            `json:"capability"`
	Failures   []ProviderFailure `json:"failures"`
}

func (a *AggregateFailure) Error() string {
	parts := make([]string, 0, len(a.Failures))
	for _, f := range a.Failures {
		parts = append(parts, f.Error())
	}
	return fmt.Sprintf("all %s providers failed: %s", a.Capability, strings.Join(parts, "; "))
}
