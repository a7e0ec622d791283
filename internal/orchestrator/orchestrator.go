// Package orchestrator implements the sequential fallback driver shared by
// every multi-provider capability: try adapters in the configured order,
// accept the first success, and aggregate the reasons when everything fails.
package orchestrator

import (
	"context"

	"smartnotes/internal/domain"
	"smartnotes/internal/logger"

	"go.uber.org/zap"
)

// Step is one provider attempt in a chain. The Invoke func wraps a single
// adapter call; the adapter has already normalized its response shape, so
// nothing above this package ever sees provider-specific payloads.
type Step[I, O any] struct {
	Provider domain.Provider
	Invoke   func(ctx context.Context, input I) (O, error)
}

// ExtractorStep adapts a TextExtractor into a chain step.
func ExtractorStep(e domain.TextExtractor) Step[domain.ExtractionRequest, domain.ExtractionResult] {
	return Step[domain.ExtractionRequest, domain.ExtractionResult]{
		Provider: e.Provider(),
		Invoke:   e.Extract,
	}
}

// GeneratorStep adapts a TextGenerator into a chain step.
func GeneratorStep(g domain.TextGenerator) Step[domain.GenerationRequest, domain.GenerationResult] {
	return Step[domain.GenerationRequest, domain.GenerationResult]{
		Provider: g.Provider(),
		Invoke:   g.Generate,
	}
}

// Run invokes the steps strictly in the given order with the same input.
// The first success short-circuits and is returned as-is. Every failure is
// recorded as a ProviderFailure; retries are scoped to trying the next
// provider, never re-trying the same one, and step n+1 is not invoked
// before step n's outcome is known. If the chain is exhausted, the
// accumulated failures are returned as an AggregateFailure in invocation
// order. Context cancellation aborts the chain between attempts.
func Run[I, O any](ctx context.Context, capability string, steps []Step[I, O], input I) (O, error) {
	var zero O
	failures := make([]domain.ProviderFailure, 0, len(steps))

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := step.Invoke(ctx, input)
		if err == nil {
			logger.Get().Info("Provider chain succeeded",
				zap.String("capability", capability),
				zap.String("provider", string(step.Provider)),
				zap.Int("failed_attempts", len(failures)),
			)
			return result, nil
		}

		failure := domain.NewProviderFailure(step.Provider, err)
		failures = append(failures, failure)
		logger.Get().Warn("Provider failed, falling through",
			zap.String("capability", capability),
			zap.String("provider", string(step.Provider)),
			zap.String("reason", failure.Message),
		)
	}

	return zero, &domain.AggregateFailure{
		Capability: capability,
		Failures:   failures,
	}
}
