package practice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashmath/internal/config"
	"github.com/phrazzld/flashmath/internal/domain"
)

// Service manages practice sessions on behalf of clients.
type Service interface {
	// CreateSession registers a new session in setup. Any selection present in
	// setup is applied in order (operation, difficulty, count); if one fails
	// the session is not created.
	//
	// Returns ErrTooManySessions when the session limit is reached.
	CreateSession(ctx context.Context, setup SessionSetup) (*SessionView, error)

	// GetSession returns the current view of a session.
	// Returns ErrSessionNotFound for unknown IDs.
	GetSession(ctx context.Context, id uuid.UUID) (*SessionView, error)

	// SelectOperation, SelectDifficulty and SelectCount make setup selections.
	// They return domain.ErrNotInSetup outside setup. SelectCount returns
	// ErrCountOutOfRange for counts outside the configured bounds.
	SelectOperation(ctx context.Context, id uuid.UUID, op domain.Operation) (*SessionView, error)
	SelectDifficulty(ctx context.Context, id uuid.UUID, diff domain.Difficulty) (*SessionView, error)
	SelectCount(ctx context.Context, id uuid.UUID, count int) (*SessionView, error)

	// Start generates the questions and enters practice.
	//
	// Returns domain.ErrSetupIncomplete, leaving the session untouched, when
	// the operation or difficulty has not been selected; NoticeFor turns it
	// into the message shown to the learner.
	Start(ctx context.Context, id uuid.UUID) (*SessionView, error)

	// SubmitAnswer checks typed answer text against the current question and
	// records the outcome. Returns domain.ErrEmptyAnswer for blank input and
	// ErrAlreadyAnswered if the question already has an outcome.
	SubmitAnswer(ctx context.Context, id uuid.UUID, raw string) (*AnswerResult, error)

	// RecordOutcome records a self-assessed outcome for the current question.
	// Returns ErrAlreadyAnswered if the question already has an outcome.
	RecordOutcome(ctx context.Context, id uuid.UUID, correct bool) (*SessionView, error)

	// Advance moves to the next question, or to the summary after the last.
	// Returns ErrNotAnswered until the current question has an outcome.
	Advance(ctx context.Context, id uuid.UUID) (*SessionView, error)

	// Reset returns the session to the start of setup from any state and
	// cancels any pending automatic advance.
	Reset(ctx context.Context, id uuid.UUID) (*SessionView, error)

	// Summary returns the final report. Returns ErrNotInSummary unless the
	// session has finished.
	Summary(ctx context.Context, id uuid.UUID) (*domain.Summary, error)

	// DeleteSession discards a session.
	// Returns ErrSessionNotFound for unknown IDs.
	DeleteSession(ctx context.Context, id uuid.UUID) error

	// Options describes the selectable operations, difficulties and counts.
	Options() Options
}

// SessionSetup carries optional initial selections for CreateSession. Zero
// values mean "not selected".
type SessionSetup struct {
	Operation  domain.Operation
	Difficulty domain.Difficulty
	Count      int
}

// SessionView is what clients see of a session.
type SessionView struct {
	ID uuid.UUID `json:"id"`
	// RunID identifies the current run from Start until Reset; it is the key
	// of the run's stored result. uuid.Nil during setup.
	RunID uuid.UUID `json:"run_id"`
	domain.Snapshot
	// Answered reports whether the current question already has an outcome.
	Answered bool `json:"answered"`
	// AutoAdvancePending reports whether an automatic advance is scheduled.
	AutoAdvancePending bool      `json:"auto_advance_pending"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// AnswerResult is the feedback for a submitted answer.
type AnswerResult struct {
	Correct       bool         `json:"correct"`
	CorrectAnswer int          `json:"correct_answer"`
	AnswerText    string       `json:"answer_text"`
	Session       *SessionView `json:"session"`
}

// Option is one selectable value with its display name.
type Option struct {
	Value  string `json:"value"`
	Name   string `json:"name"`
	Symbol string `json:"symbol,omitempty"`
}

// Options lists what a client may select during setup.
type Options struct {
	Operations   []Option `json:"operations"`
	Difficulties []Option `json:"difficulties"`
	MinCount     int      `json:"min_count"`
	MaxCount     int      `json:"max_count"`
	DefaultCount int      `json:"default_count"`
}

// Notice is a short message surfaced to the learner.
type Notice struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SetupIncompleteNotice is shown when practice is started before every
// required option has been chosen.
var SetupIncompleteNotice = Notice{
	Title:       "Setup incomplete",
	Description: "Please select all options to continue",
}

// NoticeFor returns the learner-facing notice for err, if it has one.
func NoticeFor(err error) (Notice, bool) {
	if errors.Is(err, domain.ErrSetupIncomplete) {
		return SetupIncompleteNotice, true
	}
	return Notice{}, false
}

// Settings tunes the service.
type Settings struct {
	// DefaultCount is the count a new or reset session starts with.
	DefaultCount int
	// MinCount and MaxCount bound SelectCount.
	MinCount int
	MaxCount int
	// AdvanceDelay enables automatic advance after an outcome when positive.
	AdvanceDelay time.Duration
	// MaxSessions caps live sessions; 0 means unlimited.
	MaxSessions int
}

// DefaultSettings mirrors the configuration defaults.
func DefaultSettings() Settings {
	return Settings{
		DefaultCount: domain.DefaultQuestionCount,
		MinCount:     5,
		MaxCount:     50,
		MaxSessions:  1000,
	}
}

// SettingsFromConfig converts loaded configuration into Settings.
func SettingsFromConfig(cfg config.PracticeConfig) Settings {
	return Settings{
		DefaultCount: cfg.DefaultCount,
		MinCount:     cfg.MinCount,
		MaxCount:     cfg.MaxCount,
		AdvanceDelay: time.Duration(cfg.AdvanceDelayMS) * time.Millisecond,
		MaxSessions:  cfg.MaxSessions,
	}
}

// Common error types for the practice service
var (
	// ErrSessionNotFound indicates that no live session has the given ID.
	ErrSessionNotFound = errors.New("practice session not found")

	// ErrTooManySessions indicates that the live session limit is reached.
	ErrTooManySessions = errors.New("too many active practice sessions")

	// ErrAlreadyAnswered indicates that the current question already has an outcome.
	ErrAlreadyAnswered = errors.New("question already answered")

	// ErrNotAnswered indicates an attempt to advance past a question without an outcome.
	ErrNotAnswered = errors.New("question has not been answered")

	// ErrNotInSummary indicates that the summary was requested before the session finished.
	ErrNotInSummary = errors.New("session has not finished")

	// ErrCountOutOfRange indicates a question count outside the configured bounds.
	ErrCountOutOfRange = errors.New("question count out of range")
)

// ServiceError wraps errors from the practice service with additional context.
// This allows consumers to differentiate between different types of service errors
// using errors.As instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "start", "advance")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError returns a new ServiceError.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
