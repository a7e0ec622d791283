package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"smartnotes/internal/domain"
	"smartnotes/internal/dto"
	"smartnotes/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ManualMockNoteRepository for domain.NoteRepository
type ManualMockNoteRepository struct {
	SaveFunc    func(ctx context.Context, note *domain.Note) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.Note, error)
	Saved       []*domain.Note
}

func (m *ManualMockNoteRepository) Save(ctx context.Context, note *domain.Note) error {
	m.Saved = append(m.Saved, note)
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, note)
	}
	return nil
}

func (m *ManualMockNoteRepository) GetByID(ctx context.Context, id string) (*domain.Note, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func TestSummarizeRejectsEmptyText(t *testing.T) {
	mock := &ManualMockGeneration{}
	svc := service.NewSummaryService(mock, nil)

	_, err := svc.Summarize(context.Background(), &dto.SummaryRequest{Text: "  "})

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
	assert.Empty(t, mock.Requests)
}

func TestSummarizeBuildsPromptFromPreferences(t *testing.T) {
	mock := &ManualMockGeneration{
		GenerateFunc: func(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error) {
			return domain.GenerationResult{Text: "- point one", SourceProvider: domain.ProviderOpenAI}, nil
		},
	}
	svc := service.NewSummaryService(mock, nil)

	resp, err := svc.Summarize(context.Background(), &dto.SummaryRequest{
		Text:     "Mitochondria are the powerhouse of the cell.",
		Style:    "Q&A",
		Length:   "Short",
		Intent:   "Exam prep",
		Language: "English",
	})

	require.NoError(t, err)
	assert.Equal(t, "- point one", resp.Summary)
	assert.Equal(t, string(domain.ProviderOpenAI), resp.SourceProvider)
	assert.Empty(t, resp.NoteID, "no note ID without a repository")

	require.Len(t, mock.Requests, 1)
	req := mock.Requests[0]
	assert.Equal(t, 500, req.MaxTokens)
	assert.Contains(t, req.Prompt, "Summary Style: Q&A")
	assert.Contains(t, req.Prompt, "questions and answers")
	assert.Contains(t, req.Prompt, "Mitochondria are the powerhouse of the cell.")
}

func TestSummarizePersistsNote(t *testing.T) {
	mock := &ManualMockGeneration{
		GenerateFunc: func(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error) {
			return domain.GenerationResult{Text: "summary body", SourceProvider: domain.ProviderGemini}, nil
		},
	}
	repo := &ManualMockNoteRepository{}
	svc := service.NewSummaryService(mock, repo)

	resp, err := svc.Summarize(context.Background(), &dto.SummaryRequest{
		Text:  "Photosynthesis converts light into chemical energy.\nMore detail follows.",
		Title: "Biology notes",
	})

	require.NoError(t, err)
	require.Len(t, repo.Saved, 1)
	saved := repo.Saved[0]
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, saved.ID, resp.NoteID)
	assert.Equal(t, "Biology notes", saved.Title)
	assert.Equal(t, "summary body", saved.Content)
	assert.Contains(t, saved.OriginalText, "Photosynthesis")
}

func TestSummarizeTitleDerivedFromFirstLine(t *testing.T) {
	mock := &ManualMockGeneration{
		GenerateFunc: func(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error) {
			return domain.GenerationResult{Text: "summary", SourceProvider: domain.ProviderOpenAI}, nil
		},
	}
	svc := service.NewSummaryService(mock, nil)

	resp, err := svc.Summarize(context.Background(), &dto.SummaryRequest{
		Text: "\n\nThe French Revolution began in 1789.\nIt reshaped Europe.",
	})

	require.NoError(t, err)
	assert.Equal(t, "The French Revolution began in 1789.", resp.Title)
}

func TestSummarizeSaveFailureStillReturnsSummary(t *testing.T) {
	mock := &ManualMockGeneration{
		GenerateFunc: func(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error) {
			return domain.GenerationResult{Text: "summary body", SourceProvider: domain.ProviderOpenAI}, nil
		},
	}
	repo := &ManualMockNoteRepository{
		SaveFunc: func(ctx context.Context, note *domain.Note) error {
			return errors.New("ORA-12541: no listener")
		},
	}
	svc := service.NewSummaryService(mock, repo)

	resp, err := svc.Summarize(context.Background(), &dto.SummaryRequest{Text: "some text"})

	require.NoError(t, err)
	assert.Equal(t, "summary body", resp.Summary)
	assert.Empty(t, resp.NoteID, "failed save leaves the note ID empty")
}

func TestGetNote(t *testing.T) {
	t.Run("returns stored note", func(t *testing.T) {
		created := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
		repo := &ManualMockNoteRepository{
			GetByIDFunc: func(ctx context.Context, id string) (*domain.Note, error) {
				return &domain.Note{
					ID:           id,
					Title:        "Biology notes",
					Content:      "summary body",
					OriginalText: "full text",
					CreatedAt:    created,
				}, nil
			},
		}
		svc := service.NewSummaryService(&ManualMockGeneration{}, repo)

		resp, err := svc.GetNote(context.Background(), "01HXYZ")

		require.NoError(t, err)
		assert.Equal(t, "01HXYZ", resp.ID)
		assert.Equal(t, "Biology notes", resp.Title)
		assert.Equal(t, created.Format(time.RFC3339), resp.CreatedAt)
	})

	t.Run("missing note is NotFound", func(t *testing.T) {
		repo := &ManualMockNoteRepository{}
		svc := service.NewSummaryService(&ManualMockGeneration{}, repo)

		_, err := svc.GetNote(context.Background(), "missing")

		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeNotFound, domainErr.Code)
	})

	t.Run("no repository configured is NotFound", func(t *testing.T) {
		svc := service.NewSummaryService(&ManualMockGeneration{}, nil)

		_, err := svc.GetNote(context.Background(), "any")

		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeNotFound, domainErr.Code)
	})
}
