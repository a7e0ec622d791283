// Package extraction contains the provider adapters for the "extract text"
// capability. Each adapter normalizes one remote OCR service's shapes into
// the canonical domain.ExtractionResult and keeps no state between calls.
package extraction

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"smartnotes/internal/domain"
)

// VisionAdapter extracts document text through the Google Vision
// images:annotate endpoint using DOCUMENT_TEXT_DETECTION.
type VisionAdapter struct {
	endpoint string
	apiKey   string
	httpc    *http.Client
}

// NewVisionAdapter creates a Vision adapter. The timeout applies per call;
// a timed-out call surfaces as a provider failure like any other error.
func NewVisionAdapter(endpoint, apiKey string, timeout time.Duration) *VisionAdapter {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &VisionAdapter{
		endpoint: endpoint,
		apiKey:   apiKey,
		httpc:    &http.Client{Timeout: timeout},
	}
}

func (a *VisionAdapter) Provider() domain.Provider { return domain.ProviderVision }

type visionImage struct {
	Content string `json:"content"`
}

type visionFeature struct {
	Type string `json:"type"`
}

type visionAnnotateRequest struct {
	Image    visionImage     `json:"image"`
	Features []visionFeature `json:"features"`
}

type visionRequest struct {
	Requests []visionAnnotateRequest `json:"requests"`
}

type visionResponse struct {
	Responses []struct {
		FullTextAnnotation *struct {
			Text string `json:"text"`
		} `json:"fullTextAnnotation"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	} `json:"responses"`
}

// Extract sends the decoded binary content for document text detection.
// An empty or whitespace-only detection is reported as a failure so the
// orchestrator proceeds to the next adapter instead of accepting it.
func (a *VisionAdapter) Extract(ctx context.Context, req domain.ExtractionRequest) (domain.ExtractionResult, error) {
	if a.apiKey == "" {
		return domain.ExtractionResult{}, fmt.Errorf("vision API key is not configured")
	}

	body := visionRequest{
		Requests: []visionAnnotateRequest{{
			Image:    visionImage{Content: base64.StdEncoding.EncodeToString(req.Payload)},
			Features: []visionFeature{{Type: "DOCUMENT_TEXT_DETECTION"}},
		}},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return domain.ExtractionResult{}, fmt.Errorf("failed to encode vision request: %w", err)
	}

	url := fmt.Sprintf("%s?key=%s", a.endpoint, a.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return domain.ExtractionResult{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := a.httpc.Do(httpReq)
	if err != nil {
		return domain.ExtractionResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return domain.ExtractionResult{}, fmt.Errorf("vision API error: %d: %s", resp.StatusCode, string(raw))
	}

	var out visionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.ExtractionResult{}, fmt.Errorf("failed to decode vision response: %w", err)
	}
	if len(out.Responses) == 0 {
		return domain.ExtractionResult{}, fmt.Errorf("vision response has no annotations")
	}
	if apiErr := out.Responses[0].Error; apiErr != nil {
		return domain.ExtractionResult{}, fmt.Errorf("vision annotation error: %s", apiErr.Message)
	}

	var text string
	if out.Responses[0].FullTextAnnotation != nil {
		text = out.Responses[0].FullTextAnnotation.Text
	}
	if strings.TrimSpace(text) == "" {
		return domain.ExtractionResult{}, fmt.Errorf("no text detected in document")
	}

	return domain.ExtractionResult{
		Text:           text,
		SourceProvider: domain.ProviderVision,
	}, nil
}

var _ domain.TextExtractor = (*VisionAdapter)(nil)
