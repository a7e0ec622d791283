package service

import (
	"context"
	"strings"

	"smartnotes/internal/domain"
	"smartnotes/internal/orchestrator"
)

// GenerationService runs the text generation provider chain.
type GenerationService interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error)
}

// generationService implements GenerationService over an ordered adapter
// chain. The order encodes the fallback policy: primary first, never
// parallel.
type generationService struct {
	steps []orchestrator.Step[domain.GenerationRequest, domain.GenerationResult]
}

// NewGenerationService creates a generation service over the given adapters,
// tried in the given order.
func NewGenerationService(generators ...domain.TextGenerator) GenerationService {
	steps := make([]orchestrator.Step[domain.GenerationRequest, domain.GenerationResult], 0, len(generators))
	for _, g := range generators {
		steps = append(steps, orchestrator.GeneratorStep(g))
	}
	return &generationService{steps: steps}
}

// Generate validates the request and runs the chain. An empty prompt is
// rejected before any network call.
func (s *generationService) Generate(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return domain.GenerationResult{}, domain.NewInvalidInputError("prompt is required")
	}
	return orchestrator.Run(ctx, "generate-text", s.steps, req)
}
