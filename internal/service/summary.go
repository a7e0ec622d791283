package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"smartnotes/internal/domain"
	"smartnotes/internal/dto"
	"smartnotes/internal/logger"
	"smartnotes/internal/util"

	"go.uber.org/zap"
)

const summaryMaxTokens = 500

// SummaryService generates a structured summary of extracted text and hands
// the resulting record to persistence.
type SummaryService interface {
	Summarize(ctx context.Context, req *dto.SummaryRequest) (*dto.SummaryResponse, error)
	GetNote(ctx context.Context, id string) (*dto.NoteResponse, error)
}

type summaryService struct {
	generation GenerationService
	notes      domain.NoteRepository
}

// NewSummaryService creates a new instance of summaryService. The note
// repository may be nil; summaries are then generated but not stored.
func NewSummaryService(generation GenerationService, notes domain.NoteRepository) SummaryService {
	return &summaryService{generation: generation, notes: notes}
}

// Summarize implements SummaryService.
func (s *summaryService) Summarize(ctx context.Context, req *dto.SummaryRequest) (*dto.SummaryResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, domain.NewInvalidInputError("text is required to generate a summary")
	}

	style := req.Style
	if style == "" {
		style = "Bullet Points"
	}

	result, err := s.generation.Generate(ctx, domain.GenerationRequest{
		Prompt:    BuildSummaryPrompt(text, style, req.Length, req.Intent, req.Language),
		MaxTokens: summaryMaxTokens,
	})
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = deriveTitle(text)
	}

	response := &dto.SummaryResponse{
		Title:          title,
		Summary:        result.Text,
		SourceProvider: string(result.SourceProvider),
	}

	if s.notes != nil {
		note := &domain.Note{
			ID:           util.NewULID(),
			Title:        title,
			Content:      result.Text,
			OriginalText: text,
			CreatedAt:    time.Now(),
		}
		if err := s.notes.Save(ctx, note); err != nil {
			// The summary was generated; a storage failure should not lose it.
			logger.Get().Error("SummaryService: failed to save note", zap.Error(err), zap.String("title", title))
		} else {
			response.NoteID = note.ID
		}
	}

	return response, nil
}

// GetNote implements SummaryService.
func (s *summaryService) GetNote(ctx context.Context, id string) (*dto.NoteResponse, error) {
	if s.notes == nil {
		return nil, domain.NewNotFoundError("note storage is not configured")
	}
	note, err := s.notes.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("failed to load note", err)
	}
	if note == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("note not found: %s", id))
	}
	return &dto.NoteResponse{
		ID:           note.ID,
		Title:        note.Title,
		Content:      note.Content,
		OriginalText: note.OriginalText,
		CreatedAt:    note.CreatedAt.Format(time.RFC3339),
	}, nil
}

// BuildSummaryPrompt folds the user's preferences into the prompt, with an
// explicit instruction per summary style.
func BuildSummaryPrompt(text, style, length, intent, language string) string {
	var styleInstruction string
	switch style {
	case "Bullet Points":
		styleInstruction = "Format the summary as clear bullet points."
	case "Descriptive":
		styleInstruction = "Write the summary in a descriptive paragraph style."
	case "Objective":
		styleInstruction = "Write the summary in an objective, factual tone."
	case "Narrative":
		styleInstruction = "Write the summary as a narrative, telling a story."
	case "Q&A":
		styleInstruction = "Format the summary as a series of questions and answers."
	}

	return fmt.Sprintf(`You are an intelligent assistant that summarizes notes into clear and useful formats.

User preferences:
- Summary Style: %s
- Summary Length: %s
- Summary Intent: %s
- Language: %s

%s

Based on these preferences, summarize the following content accordingly.

=== START OF USER NOTES ===
%s
=== END OF USER NOTES ===

Generate only the summary. Do not explain what you're doing. Use formatting where appropriate (e.g., headers, bullets, paragraphs).`,
		style, length, intent, language, styleInstruction, text)
}

// deriveTitle takes the first non-empty line of the source text, clipped to
// a reasonable length.
func deriveTitle(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		runes := []rune(line)
		if len(runes) > 80 {
			return string(runes[:80])
		}
		return line
	}
	return "Untitled note"
}
