package domain

import (
	"fmt"
	"strings"
)

// ChoiceKeys is the fixed alphabet for question options. Every question
// carries exactly one option per key.
var ChoiceKeys = []string{"A", "B", "C", "D"}

// Question is one validated multiple-choice question.
type Question struct {
	Prompt      string            `json:"question"`
	Options     map[string]string `json:"options"`
	CorrectKey  string            `json:"correct"`
	Explanation string            `json:"explanation"`
}

// Validate checks the question invariants: exactly one option per choice
// key and a correct key that is present among the options. Violations are
// rejected, never coerced.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return NewFormatError("question text is empty", nil)
	}
	if len(q.Options) != len(ChoiceKeys) {
		return NewFormatError(
			fmt.Sprintf("question %q has %d options, want %d", q.Prompt, len(q.Options), len(ChoiceKeys)), nil)
	}
	for _, key := range ChoiceKeys {
		if _, ok := q.Options[key]; !ok {
			return NewFormatError(fmt.Sprintf("question %q is missing option %q", q.Prompt, key), nil)
		}
	}
	if _, ok := q.Options[q.CorrectKey]; !ok {
		return NewFormatError(
			fmt.Sprintf("question %q has correct key %q absent from its options", q.Prompt, q.CorrectKey), nil)
	}
	return nil
}

// QuizSpec is the validated, provider-agnostic quiz produced by the quiz
// service. Once built it is never mutated; sessions only read it.
type QuizSpec struct {
	Questions []Question `json:"questions"`
}

// Validate rejects the whole batch on the first invalid question. Partial
// quizzes with unverifiable correctness are worse than an explicit retry.
func (s *QuizSpec) Validate() error {
	if len(s.Questions) == 0 {
		return NewFormatError("quiz has no questions", nil)
	}
	for i := range s.Questions {
		if err := s.Questions[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of questions.
func (s *QuizSpec) Len() int {
	return len(s.Questions)
}
