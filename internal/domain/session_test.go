package domain_test

import (
	"fmt"
	"testing"

	"smartnotes/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fiveQuestionSpec builds a spec where question i's correct key is A, B, C,
// D, A, ... in rotation.
func fiveQuestionSpec() *domain.QuizSpec {
	questions := make([]domain.Question, 5)
	for i := range questions {
		questions[i] = domain.Question{
			Prompt: fmt.Sprintf("Question %d?", i+1),
			Options: map[string]string{
				"A": "first", "B": "second", "C": "third", "D": "fourth",
			},
			CorrectKey:  domain.ChoiceKeys[i%len(domain.ChoiceKeys)],
			Explanation: "because",
		}
	}
	return &domain.QuizSpec{Questions: questions}
}

func TestNewSession(t *testing.T) {
	t.Run("rejects nil spec", func(t *testing.T) {
		_, err := domain.NewSession(nil)
		assert.Error(t, err)
	})

	t.Run("rejects empty spec", func(t *testing.T) {
		_, err := domain.NewSession(&domain.QuizSpec{})
		assert.Error(t, err)
	})

	t.Run("starts in NotStarted", func(t *testing.T) {
		s, err := domain.NewSession(fiveQuestionSpec())
		require.NoError(t, err)
		assert.Equal(t, domain.SessionNotStarted, s.State())
	})
}

func TestSessionInitialize(t *testing.T) {
	s, err := domain.NewSession(fiveQuestionSpec())
	require.NoError(t, err)

	s.Initialize()

	assert.Equal(t, domain.SessionInProgress, s.State())
	assert.Equal(t, 0, s.CurrentIndex())
	assert.Equal(t, 0, s.AnsweredCount())
	for i := 0; i < 5; i++ {
		_, answered := s.Answer(i)
		assert.False(t, answered, "question %d should start unanswered", i)
	}
}

func TestSessionSelectAnswer(t *testing.T) {
	t.Run("fails before initialization", func(t *testing.T) {
		s, _ := domain.NewSession(fiveQuestionSpec())
		assert.Error(t, s.SelectAnswer("A"))
	})

	t.Run("rejects unknown choice key", func(t *testing.T) {
		s, _ := domain.NewSession(fiveQuestionSpec())
		s.Initialize()
		assert.Error(t, s.SelectAnswer("E"))
		assert.Equal(t, 0, s.AnsweredCount())
	})

	t.Run("is idempotent per question", func(t *testing.T) {
		s, _ := domain.NewSession(fiveQuestionSpec())
		s.Initialize()

		require.NoError(t, s.SelectAnswer("A"))
		// Second select must not overwrite the recorded answer.
		require.NoError(t, s.SelectAnswer("B"))

		answer, answered := s.Answer(0)
		assert.True(t, answered)
		assert.Equal(t, "A", answer)
	})

	t.Run("answering the last question completes the session", func(t *testing.T) {
		s, _ := domain.NewSession(fiveQuestionSpec())
		s.Initialize()

		for i := 0; i < 4; i++ {
			require.NoError(t, s.SelectAnswer("A"))
			s.GoNext()
		}
		assert.Equal(t, domain.SessionInProgress, s.State())

		require.NoError(t, s.SelectAnswer("A"))
		assert.Equal(t, domain.SessionCompleted, s.State())
	})

	t.Run("is a no-op once completed", func(t *testing.T) {
		s, _ := domain.NewSession(fiveQuestionSpec())
		s.Initialize()
		s.Complete()

		assert.NoError(t, s.SelectAnswer("A"))
		assert.Equal(t, 0, s.AnsweredCount())
	})
}

func TestSessionNavigation(t *testing.T) {
	s, _ := domain.NewSession(fiveQuestionSpec())
	s.Initialize()

	assert.False(t, s.GoPrevious(), "cannot move before the first question")

	assert.True(t, s.GoNext())
	assert.Equal(t, 1, s.CurrentIndex())

	assert.True(t, s.GoPrevious())
	assert.Equal(t, 0, s.CurrentIndex())

	for s.GoNext() {
	}
	assert.Equal(t, 4, s.CurrentIndex())
	assert.False(t, s.GoNext(), "cannot move past the last question")

	// Navigating back to an answered question never clears the answer.
	require.NoError(t, s.SelectAnswer("D"))
	assert.Equal(t, domain.SessionCompleted, s.State())
	answer, answered := s.Answer(4)
	assert.True(t, answered)
	assert.Equal(t, "D", answer)

	assert.False(t, s.GoNext())
	assert.False(t, s.GoPrevious())
}

func TestSessionComplete(t *testing.T) {
	t.Run("unanswered questions count as incorrect", func(t *testing.T) {
		s, _ := domain.NewSession(fiveQuestionSpec())
		s.Initialize()

		// Answer the first three correctly (keys rotate A, B, C, D, A).
		require.NoError(t, s.SelectAnswer("A"))
		s.GoNext()
		require.NoError(t, s.SelectAnswer("B"))
		s.GoNext()
		require.NoError(t, s.SelectAnswer("C"))

		s.Complete()

		result, err := s.Result()
		require.NoError(t, err)
		assert.Equal(t, 3, result.CorrectCount)
		assert.Equal(t, 5, result.Total)
		assert.Equal(t, 60, result.Percentage)
	})

	t.Run("percentage is rounded to nearest integer", func(t *testing.T) {
		spec := fiveQuestionSpec()
		spec.Questions = spec.Questions[:3]
		s, _ := domain.NewSession(spec)
		s.Initialize()

		require.NoError(t, s.SelectAnswer("A")) // correct
		s.GoNext()
		require.NoError(t, s.SelectAnswer("A")) // wrong, correct is B
		s.GoNext()
		require.NoError(t, s.SelectAnswer("A")) // wrong, correct is C

		result, err := s.Result()
		require.NoError(t, err)
		assert.Equal(t, 1, result.CorrectCount)
		assert.Equal(t, 33, result.Percentage)
	})

	t.Run("result is unavailable before completion", func(t *testing.T) {
		s, _ := domain.NewSession(fiveQuestionSpec())
		s.Initialize()
		_, err := s.Result()
		assert.Error(t, err)
	})
}

func TestSessionRetry(t *testing.T) {
	s, _ := domain.NewSession(fiveQuestionSpec())
	s.Initialize()
	require.NoError(t, s.SelectAnswer("A"))
	s.Complete()
	require.Equal(t, domain.SessionCompleted, s.State())

	s.Retry()

	assert.Equal(t, domain.SessionInProgress, s.State())
	assert.Equal(t, 0, s.CurrentIndex())
	assert.Equal(t, 0, s.AnsweredCount())
	_, err := s.Result()
	assert.Error(t, err, "previous result must not survive a retry")
}
