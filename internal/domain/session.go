package domain

import (
	"fmt"
	"math"
)

// SessionState is the lifecycle state of a quiz session.
type SessionState string

const (
	SessionNotStarted SessionState = "NOT_STARTED"
	SessionInProgress SessionState = "IN_PROGRESS"
	SessionCompleted  SessionState = "COMPLETED"
)

// NoAnswer marks an index the user has not answered yet.
const NoAnswer = ""

// SessionResult is the final score of a completed session.
type SessionResult struct {
	CorrectCount int `json:"correct_count"`
	Total        int `json:"total"`
	Percentage   int `json:"percentage"`
}

// Session drives a user's progress through a QuizSpec: question display,
// answer capture, scoring and retry. It holds no references to provider
// code and makes no external calls. The session has exactly one logical
// owner; it is not safe for concurrent use.
type Session struct {
	spec         *QuizSpec
	state        SessionState
	currentIndex int
	answers      []string
	result       SessionResult
}

// NewSession creates a session over an already validated spec. The session
// starts in NotStarted; call Initialize to begin.
func NewSession(spec *QuizSpec) (*Session, error) {
	if spec == nil || spec.Len() == 0 {
		return nil, NewInvalidInputError("quiz spec must have at least one question")
	}
	return &Session{
		spec:    spec,
		state:   SessionNotStarted,
		answers: make([]string, spec.Len()),
	}, nil
}

// Initialize enters InProgress at question 0 with a cleared answer sequence.
func (s *Session) Initialize() {
	s.state = SessionInProgress
	s.currentIndex = 0
	s.answers = make([]string, s.spec.Len())
	s.result = SessionResult{}
}

// Retry re-enters Initialize with the same spec. It is the only transition
// reachable from Completed.
func (s *Session) Retry() {
	s.Initialize()
}

// State returns the current lifecycle state.
func (s *Session) State() SessionState {
	return s.state
}

// Spec returns the quiz spec the session was created over.
func (s *Session) Spec() *QuizSpec {
	return s.spec
}

// CurrentIndex returns the index of the displayed question.
func (s *Session) CurrentIndex() int {
	return s.currentIndex
}

// CurrentQuestion returns the displayed question.
func (s *Session) CurrentQuestion() Question {
	return s.spec.Questions[s.currentIndex]
}

// Answer returns the recorded key for an index and whether it is set.
func (s *Session) Answer(index int) (string, bool) {
	if index < 0 || index >= len(s.answers) {
		return NoAnswer, false
	}
	return s.answers[index], s.answers[index] != NoAnswer
}

// AnsweredCount returns how many questions have a recorded answer.
func (s *Session) AnsweredCount() int {
	count := 0
	for _, a := range s.answers {
		if a != NoAnswer {
			count++
		}
	}
	return count
}

// SelectAnswer records the key for the current question. An answer is set
// at most once: a second call on an answered question is a no-op, matching
// the "already answered" UI semantics. Calls on a completed session are
// ignored the same way. Answering the last question completes the session
// immediately.
func (s *Session) SelectAnswer(key string) error {
	if s.state == SessionNotStarted {
		return NewInvalidInputError("session is not started")
	}
	if s.state == SessionCompleted {
		return nil
	}
	if _, ok := s.CurrentQuestion().Options[key]; !ok {
		return NewInvalidInputError(fmt.Sprintf("%q is not a valid choice key", key))
	}
	if s.answers[s.currentIndex] != NoAnswer {
		return nil
	}
	s.answers[s.currentIndex] = key

	if s.currentIndex == s.spec.Len()-1 {
		s.Complete()
	}
	return nil
}

// GoNext moves to the next question. Moving to an already answered question
// is always legal; answers are never mutated by navigation.
func (s *Session) GoNext() bool {
	if s.state != SessionInProgress {
		return false
	}
	if s.currentIndex >= s.spec.Len()-1 {
		return false
	}
	s.currentIndex++
	return true
}

// GoPrevious moves to the previous question.
func (s *Session) GoPrevious() bool {
	if s.state != SessionInProgress {
		return false
	}
	if s.currentIndex <= 0 {
		return false
	}
	s.currentIndex--
	return true
}

// Complete scores the session and enters Completed. Unanswered questions
// count as incorrect. Terminal except for Retry.
func (s *Session) Complete() {
	if s.state != SessionInProgress {
		return
	}
	correct := 0
	for i, q := range s.spec.Questions {
		if s.answers[i] != NoAnswer && s.answers[i] == q.CorrectKey {
			correct++
		}
	}
	total := s.spec.Len()
	s.result = SessionResult{
		CorrectCount: correct,
		Total:        total,
		Percentage:   int(math.Round(100 * float64(correct) / float64(total))),
	}
	s.state = SessionCompleted
}

// Result returns the final score. It is only meaningful once the session
// is completed.
func (s *Session) Result() (SessionResult, error) {
	if s.state != SessionCompleted {
		return SessionResult{}, NewInvalidInputError("session is not completed")
	}
	return s.result, nil
}
