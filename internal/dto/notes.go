package dto

import "smartnotes/internal/domain"

// ExtractRequest is the body of POST /api/ocr. FileBase64 may carry a
// data-URL prefix from the browser's FileReader; the service strips it.
type ExtractRequest struct {
	FileBase64 string `json:"fileBase64"`
	MediaType  string `json:"mediaType,omitempty"`
}

// ExtractResponse is the canonical extraction result shape.
type ExtractResponse struct {
	Text           string `json:"text"`
	SourceProvider string `json:"source_provider"`
}

// GenerateRequest is the body of POST /api/generate.
type GenerateRequest struct {
	Prompt    string `json:"prompt"`
	MaxTokens int    `json:"maxTokens"`
}

// GenerateResponse is the canonical generation result shape.
type GenerateResponse struct {
	Text           string           `json:"text"`
	SourceProvider string           `json:"source_provider"`
	Usage          domain.TokenUsage `json:"usage"`
}

// QuizRequest is the body of POST /api/quiz.
type QuizRequest struct {
	Text string `json:"text"`
}

// QuizQuestionResponse mirrors one validated question.
type QuizQuestionResponse struct {
	Question    string            `json:"question"`
	Options     map[string]string `json:"options"`
	Correct     string            `json:"correct"`
	Explanation string            `json:"explanation"`
}

// QuizResponse is the validated quiz returned to the UI layer.
type QuizResponse struct {
	Questions      []QuizQuestionResponse `json:"questions"`
	SourceProvider string                 `json:"source_provider"`
}

// SummaryRequest is the body of POST /api/summary. The preference fields
// shape the prompt; empty values fall back to defaults.
type SummaryRequest struct {
	Text     string `json:"text"`
	Title    string `json:"title,omitempty"`
	Style    string `json:"style,omitempty"`
	Length   string `json:"length,omitempty"`
	Intent   string `json:"intent,omitempty"`
	Language string `json:"language,omitempty"`
}

// SummaryResponse carries the generated summary and the ID of the stored
// note record.
type SummaryResponse struct {
	NoteID         string `json:"note_id"`
	Title          string `json:"title"`
	Summary        string `json:"summary"`
	SourceProvider string `json:"source_provider"`
}

// NoteResponse is a stored note record.
type NoteResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	OriginalText string `json:"original_text"`
	CreatedAt    string `json:"created_at"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
