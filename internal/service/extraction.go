package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"smartnotes/internal/config"
	"smartnotes/internal/domain"
	"smartnotes/internal/dto"
	"smartnotes/internal/logger"
	"smartnotes/internal/orchestrator"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ExtractionCachePrefix namespaces cached extraction results by payload hash.
const ExtractionCachePrefix = "extraction:"

// ExtractionService turns an uploaded base64 document into extracted text
// via the OCR provider chain.
type ExtractionService interface {
	Extract(ctx context.Context, req *dto.ExtractRequest) (*dto.ExtractResponse, error)
}

type extractionService struct {
	steps   []orchestrator.Step[domain.ExtractionRequest, domain.ExtractionResult]
	cache   domain.Cache
	cfg     *config.Config
	sfGroup singleflight.Group
}

// NewExtractionService creates an extraction service over the given
// adapters, tried in the given order. The cache may be nil; extraction then
// always runs the chain.
func NewExtractionService(cache domain.Cache, cfg *config.Config, extractors ...domain.TextExtractor) ExtractionService {
	steps := make([]orchestrator.Step[domain.ExtractionRequest, domain.ExtractionResult], 0, len(extractors))
	for _, e := range extractors {
		steps = append(steps, orchestrator.ExtractorStep(e))
	}
	return &extractionService{steps: steps, cache: cache, cfg: cfg}
}

// Extract decodes the upload, short-circuits plain text, and otherwise runs
// the provider chain. Identical concurrent uploads are collapsed into one
// chain invocation, and results are cached by payload hash so re-uploads
// skip the providers entirely.
func (s *extractionService) Extract(ctx context.Context, req *dto.ExtractRequest) (*dto.ExtractResponse, error) {
	if strings.TrimSpace(req.FileBase64) == "" {
		return nil, domain.NewInvalidInputError("no file provided")
	}

	payload, mediaType, err := decodeUpload(req.FileBase64, req.MediaType)
	if err != nil {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("invalid file payload: %v", err))
	}

	// Plain text files need no OCR at all.
	if strings.HasPrefix(mediaType, "text/plain") {
		return &dto.ExtractResponse{
			Text:           string(payload),
			SourceProvider: string(domain.ProviderInline),
		}, nil
	}

	cacheKey := ExtractionCachePrefix + hashPayload(payload)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			var result domain.ExtractionResult
			if err := json.Unmarshal([]byte(cached), &result); err == nil {
				logger.Get().Info("ExtractionService: cache hit", zap.String("cacheKey", cacheKey))
				return toExtractResponse(result), nil
			}
			logger.Get().Warn("ExtractionService: corrupt cache entry, re-extracting", zap.String("cacheKey", cacheKey))
		} else if err != domain.ErrCacheMiss {
			logger.Get().Error("ExtractionService: cache read failed", zap.Error(err), zap.String("cacheKey", cacheKey))
		}
	}

	input := domain.ExtractionRequest{Payload: payload, MediaType: mediaType}
	res, err, _ := s.sfGroup.Do(cacheKey, func() (interface{}, error) {
		result, err := orchestrator.Run(ctx, "extract-text", s.steps, input)
		if err != nil {
			return nil, err
		}
		s.cacheResult(ctx, cacheKey, result)
		return result, nil
	})
	if err != nil {
		return nil, err
	}

	result, ok := res.(domain.ExtractionResult)
	if !ok {
		return nil, domain.NewInternalError(fmt.Sprintf("unexpected type from singleflight: %T", res), nil)
	}
	return toExtractResponse(result), nil
}

func (s *extractionService) cacheResult(ctx context.Context, cacheKey string, result domain.ExtractionResult) {
	if s.cache == nil {
		return
	}
	encoded, err := json.Marshal(result)
	if err != nil {
		logger.Get().Error("ExtractionService: failed to encode result for cache", zap.Error(err))
		return
	}
	ttl := s.cfg.Cache.ExtractionTTL
	if err := s.cache.Set(ctx, cacheKey, string(encoded), ttl); err != nil {
		logger.Get().Error("ExtractionService: cache write failed", zap.Error(err), zap.String("cacheKey", cacheKey))
	}
}

func toExtractResponse(result domain.ExtractionResult) *dto.ExtractResponse {
	return &dto.ExtractResponse{
		Text:           result.Text,
		SourceProvider: string(result.SourceProvider),
	}
}

// decodeUpload strips a data-URL prefix when present and decodes the base64
// payload. The media type declared in the prefix wins over the request
// field.
func decodeUpload(fileBase64, declaredType string) ([]byte, string, error) {
	encoded := fileBase64
	mediaType := declaredType

	if strings.HasPrefix(encoded, "data:") {
		comma := strings.Index(encoded, ",")
		if comma == -1 {
			return nil, "", fmt.Errorf("malformed data URL")
		}
		header := encoded[len("data:"):comma]
		encoded = encoded[comma+1:]
		if semi := strings.Index(header, ";"); semi != -1 {
			header = header[:semi]
		}
		if header != "" {
			mediaType = header
		}
	}

	payload, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, "", fmt.Errorf("base64 decode failed: %w", err)
	}
	if len(payload) == 0 {
		return nil, "", fmt.Errorf("empty payload")
	}
	return payload, mediaType, nil
}

func hashPayload(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
