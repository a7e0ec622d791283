package extraction

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"smartnotes/internal/domain"
)

// OCRSpaceAdapter extracts text through the OCR.Space parse endpoint. It is
// the generic fallback engine behind the vision adapter.
type OCRSpaceAdapter struct {
	endpoint string
	apiKey   string
	engine   int
	language string
	httpc    *http.Client
}

func NewOCRSpaceAdapter(endpoint, apiKey string, engine int, language string, timeout time.Duration) *OCRSpaceAdapter {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if engine <= 0 {
		engine = 2
	}
	if language == "" {
		language = "eng"
	}
	return &OCRSpaceAdapter{
		endpoint: endpoint,
		apiKey:   apiKey,
		engine:   engine,
		language: language,
		httpc:    &http.Client{Timeout: timeout},
	}
}

func (a *OCRSpaceAdapter) Provider() domain.Provider { return domain.ProviderOCRSpace }

type ocrSpaceResponse struct {
	ParsedResults []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
	IsErroredOnProcessing bool            `json:"IsErroredOnProcessing"`
	ErrorMessage          json.RawMessage `json:"ErrorMessage"`
}

// errorMessage flattens OCR.Space's error field, which is sometimes a string
// and sometimes an array of strings.
func (r *ocrSpaceResponse) errorMessage() string {
	if len(r.ErrorMessage) == 0 {
		return ""
	}
	var single string
	if err := json.Unmarshal(r.ErrorMessage, &single); err == nil {
		return single
	}
	var many []string
	if err := json.Unmarshal(r.ErrorMessage, &many); err == nil && len(many) > 0 {
		return many[0]
	}
	return ""
}

// Extract posts the base64-encoded payload with the engine and language
// selectors. Success requires a parsed-results array whose first element
// carries non-whitespace text; an explicit error flag or an empty array is
// a failure carrying the provider's message.
func (a *OCRSpaceAdapter) Extract(ctx context.Context, req domain.ExtractionRequest) (domain.ExtractionResult, error) {
	if a.apiKey == "" {
		return domain.ExtractionResult{}, fmt.Errorf("OCR.Space API key is not configured")
	}

	mediaType := req.MediaType
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s", mediaType, base64.StdEncoding.EncodeToString(req.Payload))

	form := url.Values{}
	form.Set("base64Image", dataURL)
	form.Set("apikey", a.apiKey)
	form.Set("OCREngine", strconv.Itoa(a.engine))
	form.Set("language", a.language)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return domain.ExtractionResult{}, err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.httpc.Do(httpReq)
	if err != nil {
		return domain.ExtractionResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.ExtractionResult{}, fmt.Errorf("OCR.Space API error: %d %s", resp.StatusCode, resp.Status)
	}

	var out ocrSpaceResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.ExtractionResult{}, fmt.Errorf("failed to decode OCR.Space response: %w", err)
	}

	if out.IsErroredOnProcessing {
		msg := out.errorMessage()
		if msg == "" {
			msg = "OCR.Space processing error"
		}
		return domain.ExtractionResult{}, fmt.Errorf("%s", msg)
	}
	if len(out.ParsedResults) == 0 || strings.TrimSpace(out.ParsedResults[0].ParsedText) == "" {
		return domain.ExtractionResult{}, fmt.Errorf("no text found in OCR.Space response")
	}

	return domain.ExtractionResult{
		Text:           out.ParsedResults[0].ParsedText,
		SourceProvider: domain.ProviderOCRSpace,
	}, nil
}

var _ domain.TextExtractor = (*OCRSpaceAdapter)(nil)
