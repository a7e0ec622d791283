// Package generation contains the provider adapters for the "generate text"
// capability. Each adapter maps the shared GenerationRequest into its
// provider's request shape and normalizes the response back into the
// canonical domain.GenerationResult.
package generation

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"smartnotes/internal/domain"

	openai "github.com/sashabaranov/go-openai"
)

// systemInstruction is the shared system prompt for both summary and quiz
// generation requests.
const systemInstruction = "You are a helpful assistant that creates structured summaries and educational quizzes."

const (
	defaultMaxTokens = 500
	samplingTemp     = 0.7
)

// OpenAIAdapter is the primary generation adapter, backed by the OpenAI
// chat completion API.
type OpenAIAdapter struct {
	client *openai.Client
	model  string
}

func NewOpenAIAdapter(apiKey, model string, timeout time.Duration) *OpenAIAdapter {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return &OpenAIAdapter{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (a *OpenAIAdapter) Provider() domain.Provider { return domain.ProviderOpenAI }

// Generate sends a chat-style request with the system instruction, the
// caller's prompt, the token cap and a fixed sampling temperature. The
// client library reports both non-success HTTP statuses and error objects
// embedded in a 200 body as errors.
func (a *OpenAIAdapter) Generate(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: samplingTemp,
	})
	if err != nil {
		return domain.GenerationResult{}, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return domain.GenerationResult{}, fmt.Errorf("OpenAI response has no choices")
	}

	return domain.GenerationResult{
		Text:           resp.Choices[0].Message.Content,
		SourceProvider: domain.ProviderOpenAI,
		Usage: domain.TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

var _ domain.TextGenerator = (*OpenAIAdapter)(nil)
