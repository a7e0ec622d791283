package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"smartnotes/internal/domain"
	"smartnotes/internal/dto"
	"smartnotes/internal/logger"
	"smartnotes/internal/util"

	"go.uber.org/zap"
)

// Token budget per question plus a fixed overhead for the JSON envelope.
const (
	quizTokensPerQuestion = 200
	quizTokenOverhead     = 400
)

// QuizService compiles extracted text into a validated multiple-choice quiz:
// it sizes the question count, builds the generation prompt, runs the
// generation chain and parses the returned payload into a strict schema.
type QuizService interface {
	GenerateQuiz(ctx context.Context, req *dto.QuizRequest) (*dto.QuizResponse, error)
}

type quizService struct {
	generation GenerationService
}

// NewQuizService creates a new instance of quizService.
func NewQuizService(generation GenerationService) QuizService {
	return &quizService{generation: generation}
}

// GenerateQuiz implements QuizService.
func (s *quizService) GenerateQuiz(ctx context.Context, req *dto.QuizRequest) (*dto.QuizResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, domain.NewInvalidInputError("text is required to generate a quiz")
	}

	questionCount := QuestionCountForLength(utf8.RuneCountInString(text))
	prompt := BuildQuizPrompt(questionCount, text)

	result, err := s.generation.Generate(ctx, domain.GenerationRequest{
		Prompt:    prompt,
		MaxTokens: questionCount*quizTokensPerQuestion + quizTokenOverhead,
	})
	if err != nil {
		return nil, err
	}

	spec, err := ParseQuizSpec(result.Text)
	if err != nil {
		logger.Get().Error("QuizService: failed to parse generated quiz",
			zap.Error(err),
			zap.String("provider", string(result.SourceProvider)),
			zap.Int("requested_questions", questionCount),
		)
		return nil, err
	}

	logger.Get().Info("QuizService: quiz generated",
		zap.Int("questions", spec.Len()),
		zap.String("provider", string(result.SourceProvider)),
	)

	return toQuizResponse(spec, result.SourceProvider), nil
}

// QuestionCountForLength sizes the quiz by the extracted text's character
// length. The step function bounds both generation cost and quiz length;
// the thresholds are contract, not tuning knobs.
func QuestionCountForLength(length int) int {
	switch {
	case length >= 8000:
		return 8
	case length >= 6000:
		return 7
	case length >= 4000:
		return 6
	case length >= 3000:
		return 5
	case length >= 1500:
		return 4
	default:
		return 3
	}
}

// BuildQuizPrompt embeds the question count and the strict output format:
// exactly 4 labeled options per question, one correct label, and an
// explanation, all inside a single JSON object with a questions array.
func BuildQuizPrompt(questionCount int, text string) string {
	return fmt.Sprintf(`Create a %d-question multiple choice quiz based on the following text. Each question should have 4 options (A, B, C, D) with only one correct answer. Include explanations for each correct answer. Make sure questions cover different aspects of the content. Format as JSON:

{
  "questions": [
    {
      "question": "Question text here?",
      "options": {
        "A": "Option A",
        "B": "Option B",
        "C": "Option C",
        "D": "Option D"
      },
      "correct": "B",
      "explanation": "Explanation for why B is correct"
    }
  ]
}

Text to create quiz from:
%s`, questionCount, text)
}

// ParseQuizSpec parses the raw generation output into a validated quiz.
// Models may wrap the JSON in prose, so the outermost {...} span is tried
// first and the whole string second. The brace scan is only signal
// extraction; schema validation below is the actual safety net. Any parse
// or validation failure rejects the whole payload.
func ParseQuizSpec(raw string) (*domain.QuizSpec, error) {
	var spec domain.QuizSpec

	parsed := false
	if span, ok := util.ExtractJSONObject(raw); ok {
		if err := json.Unmarshal([]byte(span), &spec); err == nil {
			parsed = true
		}
	}
	if !parsed {
		if err := json.Unmarshal([]byte(raw), &spec); err != nil {
			return nil, domain.NewFormatError("invalid quiz data format", err)
		}
	}

	if len(spec.Questions) == 0 {
		return nil, domain.NewFormatError("invalid quiz data format", fmt.Errorf("questions array is missing or empty"))
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func toQuizResponse(spec *domain.QuizSpec, provider domain.Provider) *dto.QuizResponse {
	questions := make([]dto.QuizQuestionResponse, 0, spec.Len())
	for _, q := range spec.Questions {
		questions = append(questions, dto.QuizQuestionResponse{
			Question:    q.Prompt,
			Options:     q.Options,
			Correct:     q.CorrectKey,
			Explanation: q.Explanation,
		})
	}
	return &dto.QuizResponse{
		Questions:      questions,
		SourceProvider: string(provider),
	}
}
