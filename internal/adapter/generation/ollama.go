package generation

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"smartnotes/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// OllamaAdapter is an optional last-resort generation adapter backed by a
// local Ollama server. It is only registered in the chain when a server URL
// is configured, which keeps production deployments on the remote pair.
type OllamaAdapter struct {
	llm     *ollama.LLM
	timeout time.Duration
}

func NewOllamaAdapter(serverURL, model string, timeout time.Duration) (*OllamaAdapter, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("ollama server URL cannot be empty")
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     10 * time.Second,
		},
	}

	llm, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(model),
		ollama.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}

	return &OllamaAdapter{llm: llm, timeout: timeout}, nil
}

func (a *OllamaAdapter) Provider() domain.Provider { return domain.ProviderOllama }

func (a *OllamaAdapter) Generate(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	prompt := fmt.Sprintf("%s\n\n%s", systemInstruction, req.Prompt)
	response, err := a.llm.Call(ctx, prompt,
		llms.WithTemperature(samplingTemp),
		llms.WithMaxTokens(maxTokens),
	)
	if err != nil {
		if err == context.DeadlineExceeded {
			return domain.GenerationResult{}, fmt.Errorf("ollama request timed out: %w", err)
		}
		return domain.GenerationResult{}, fmt.Errorf("ollama call failed: %w", err)
	}
	if strings.TrimSpace(response) == "" {
		return domain.GenerationResult{}, fmt.Errorf("ollama response is empty")
	}

	// Local models do not report usage in the remote providers' form.
	return domain.GenerationResult{
		Text:           response,
		SourceProvider: domain.ProviderOllama,
		Usage:          domain.TokenUsage{},
	}, nil
}

var _ domain.TextGenerator = (*OllamaAdapter)(nil)
