package generation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"smartnotes/internal/domain"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiAdapter is the fallback generation adapter. It is only ever tried
// after the primary has failed, and it requires its API key to be
// configured: an absent key is an immediate failure, not an attempt.
type GeminiAdapter struct {
	apiKey  string
	model   string
	timeout time.Duration
}

func NewGeminiAdapter(apiKey, model string, timeout time.Duration) *GeminiAdapter {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &GeminiAdapter{
		apiKey:  strings.TrimSpace(apiKey),
		model:   model,
		timeout: timeout,
	}
}

func (a *GeminiAdapter) Provider() domain.Provider { return domain.ProviderGemini }

// Generate wraps the prompt into Gemini's content shape and maps the
// response back into the canonical result. Gemini does not report token
// usage in the primary provider's form, so usage is synthesized as zeros.
func (a *GeminiAdapter) Generate(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error) {
	if a.apiKey == "" {
		return domain.GenerationResult{}, fmt.Errorf("gemini API key is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	cl, err := genai.NewClient(ctx, option.WithAPIKey(a.apiKey))
	if err != nil {
		return domain.GenerationResult{}, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer cl.Close()

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	m := cl.GenerativeModel(a.model)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:     ptrFloat32(samplingTemp),
		MaxOutputTokens: ptrInt32(int32(maxTokens)),
	}

	prompt := fmt.Sprintf("%s Please respond to the following request: %s", systemInstruction, req.Prompt)
	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return domain.GenerationResult{}, fmt.Errorf("gemini API error: %w", err)
	}

	text := firstText(resp)
	if strings.TrimSpace(text) == "" {
		return domain.GenerationResult{}, fmt.Errorf("gemini response has no text candidates")
	}

	return domain.GenerationResult{
		Text:           text,
		SourceProvider: domain.ProviderGemini,
		Usage:          domain.TokenUsage{},
	}, nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
func ptrInt32(v int32) *int32       { return &v }

var _ domain.TextGenerator = (*GeminiAdapter)(nil)
