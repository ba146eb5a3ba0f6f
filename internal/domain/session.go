package domain

import (
	"fmt"
)

// State is the top-level phase of a practice session.
type State string

// Session states.
const (
	StateSetup    State = "setup"
	StatePractice State = "practice"
	StateSummary  State = "summary"
)

// SetupStep is the sub-step within StateSetup.
// Steps only move forward: operation, then difficulty, then count.
type SetupStep string

// Setup steps.
const (
	SetupStepOperation  SetupStep = "operation"
	SetupStepDifficulty SetupStep = "difficulty"
	SetupStepCount      SetupStep = "count"
)

// DefaultQuestionCount is the question count a fresh session starts with.
const DefaultQuestionCount = 10

// QuestionGenerator produces the ordered questions for a session.
// The arith package provides the production implementation.
type QuestionGenerator interface {
	Generate(op Operation, diff Difficulty, count int) ([]Question, error)
}

// SessionOption customises a Session at construction time.
type SessionOption func(*Session)

// WithDefaultCount overrides the question count a session starts with and
// returns to on reset. Values below 1 are ignored.
func WithDefaultCount(n int) SessionOption {
	return func(s *Session) {
		if n >= 1 {
			s.defaultCount = n
		}
	}
}

// Session is one setup → practice → summary run.
//
// The question sequence is generated once by Start and never changes
// afterwards. Reset discards everything and returns to the operation step.
// A Session is not safe for concurrent use; its owner must serialise calls.
type Session struct {
	generator    QuestionGenerator
	defaultCount int

	state      State
	setupStep  SetupStep
	operation  Operation
	difficulty Difficulty
	count      int

	questions []Question
	current   int
	correct   int
	attempted int
}

// NewSession creates a session in the setup state at the operation step.
func NewSession(generator QuestionGenerator, opts ...SessionOption) *Session {
	if generator == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("generator cannot be nil for Session")
	}

	s := &Session{
		generator:    generator,
		defaultCount: DefaultQuestionCount,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.clear()
	return s
}

// SelectOperation records the operation and moves setup to the difficulty step.
func (s *Session) SelectOperation(op Operation) error {
	if s.state != StateSetup {
		return ErrNotInSetup
	}
	if !op.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidOperation, string(op))
	}

	s.operation = op
	s.setupStep = SetupStepDifficulty
	return nil
}

// SelectDifficulty records the difficulty and moves setup to the count step.
func (s *Session) SelectDifficulty(diff Difficulty) error {
	if s.state != StateSetup {
		return ErrNotInSetup
	}
	if !diff.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidDifficulty, string(diff))
	}

	s.difficulty = diff
	s.setupStep = SetupStepCount
	return nil
}

// SelectCount sets the number of questions. It does not change the setup step.
func (s *Session) SelectCount(n int) error {
	if s.state != StateSetup {
		return ErrNotInSetup
	}
	if n < 1 {
		return ErrInvalidQuestionCount
	}

	s.count = n
	return nil
}

// Start generates the question sequence and enters practice.
//
// If the operation or difficulty is missing it returns ErrSetupIncomplete and
// leaves the session exactly as it was; no questions are generated.
func (s *Session) Start() error {
	if s.state != StateSetup {
		return ErrNotInSetup
	}
	if s.operation == "" || s.difficulty == "" {
		return ErrSetupIncomplete
	}

	questions, err := s.generator.Generate(s.operation, s.difficulty, s.count)
	if err != nil {
		return fmt.Errorf("failed to generate questions: %w", err)
	}

	s.questions = questions
	s.current = 0
	s.correct = 0
	s.attempted = 0
	s.state = StatePractice
	return nil
}

// RecordCorrect counts the current question as attempted and correct.
func (s *Session) RecordCorrect() error {
	if s.state != StatePractice {
		return ErrNotInPractice
	}

	s.attempted++
	s.correct++
	return nil
}

// RecordIncorrect counts the current question as attempted only.
func (s *Session) RecordIncorrect() error {
	if s.state != StatePractice {
		return ErrNotInPractice
	}

	s.attempted++
	return nil
}

// Advance moves to the next question, or to the summary after the last one.
// It does not check that an outcome was recorded for the current question.
func (s *Session) Advance() error {
	if s.state != StatePractice {
		return ErrNotInPractice
	}

	if s.current < len(s.questions)-1 {
		s.current++
		return nil
	}

	s.state = StateSummary
	return nil
}

// Reset discards every selection, question, and counter and returns to the
// operation step of setup. It succeeds from any state.
func (s *Session) Reset() {
	s.clear()
}

func (s *Session) clear() {
	s.state = StateSetup
	s.setupStep = SetupStepOperation
	s.operation = ""
	s.difficulty = ""
	s.count = s.defaultCount
	s.questions = nil
	s.current = 0
	s.correct = 0
	s.attempted = 0
}

// State returns the current phase.
func (s *Session) State() State { return s.state }

// SetupStep returns the current setup sub-step.
func (s *Session) SetupStep() SetupStep { return s.setupStep }

// Operation returns the selected operation, or "" if none.
func (s *Session) Operation() Operation { return s.operation }

// Difficulty returns the selected difficulty, or "" if none.
func (s *Session) Difficulty() Difficulty { return s.difficulty }

// Count returns the selected question count.
func (s *Session) Count() int { return s.count }

// CurrentIndex returns the zero-based position of the current question.
func (s *Session) CurrentIndex() int { return s.current }

// TotalQuestions returns the number of generated questions.
func (s *Session) TotalQuestions() int { return len(s.questions) }

// Correct returns the number of questions answered correctly.
func (s *Session) Correct() int { return s.correct }

// Attempted returns the number of questions with a recorded outcome.
func (s *Session) Attempted() int { return s.attempted }

// CurrentQuestion returns the question being practised.
// The boolean is false outside practice.
func (s *Session) CurrentQuestion() (Question, bool) {
	if s.state != StatePractice || s.current >= len(s.questions) {
		return Question{}, false
	}
	return s.questions[s.current], true
}

// Questions returns a copy of the full question list.
func (s *Session) Questions() []Question {
	if s.questions == nil {
		return nil
	}
	out := make([]Question, len(s.questions))
	copy(out, s.questions)
	return out
}
