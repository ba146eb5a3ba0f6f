package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// QuestionRecord is one question of a completed session as logged by the
// result store.
type QuestionRecord struct {
	Position     int    `json:"position"`
	QuestionText string `json:"question_text"`
	Answer       int    `json:"answer"`
	Answered     bool   `json:"answered"`
	Correct      bool   `json:"correct"`
}

// SessionResult is the outcome of one completed practice run. A session
// that is reset and played again produces one result per run, all sharing
// the same SessionID.
type SessionResult struct {
	ID             uuid.UUID        `json:"id"`
	SessionID      uuid.UUID        `json:"session_id"`
	Operation      string           `json:"operation"`
	Difficulty     string           `json:"difficulty"`
	TotalQuestions int              `json:"total_questions"`
	Correct        int              `json:"correct"`
	Attempted      int              `json:"attempted"`
	Percentage     int              `json:"percentage"`
	CompletedAt    time.Time        `json:"completed_at"`
	Questions      []QuestionRecord `json:"questions,omitempty"`
}

// Validate checks the counters of a result for consistency.
func (r *SessionResult) Validate() error {
	var errs []error
	if r.ID == uuid.Nil {
		errs = append(errs, errors.New("result id is required"))
	}
	if r.SessionID == uuid.Nil {
		errs = append(errs, errors.New("session id is required"))
	}
	if r.Operation == "" {
		errs = append(errs, errors.New("operation is required"))
	}
	if r.Difficulty == "" {
		errs = append(errs, errors.New("difficulty is required"))
	}
	if r.TotalQuestions < 1 {
		errs = append(errs, errors.New("total questions must be positive"))
	}
	if r.Correct < 0 || r.Correct > r.Attempted {
		errs = append(errs, fmt.Errorf("correct %d outside [0, attempted %d]", r.Correct, r.Attempted))
	}
	if r.Attempted > r.TotalQuestions {
		errs = append(errs, fmt.Errorf("attempted %d exceeds total %d", r.Attempted, r.TotalQuestions))
	}
	if r.Percentage < 0 || r.Percentage > 100 {
		errs = append(errs, fmt.Errorf("percentage %d outside [0, 100]", r.Percentage))
	}
	if r.CompletedAt.IsZero() {
		errs = append(errs, errors.New("completed at is required"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidEntity, errors.Join(errs...))
	}
	return nil
}

// OperationStats aggregates the results recorded for one operation.
type OperationStats struct {
	Operation         string  `json:"operation"`
	Sessions          int     `json:"sessions"`
	AveragePercentage float64 `json:"average_percentage"`
}

// ResultStats aggregates every recorded result.
type ResultStats struct {
	Sessions          int              `json:"sessions"`
	TotalQuestions    int              `json:"total_questions"`
	TotalCorrect      int              `json:"total_correct"`
	AveragePercentage float64          `json:"average_percentage"`
	ByOperation       []OperationStats `json:"by_operation"`
}

// ResultStore defines the interface for session result persistence.
type ResultStore interface {
	// Save records a completed run together with its question log.
	// Returns ErrResultExists if a result with the same ID was already recorded and
	// ErrInvalidEntity if the result fails validation.
	Save(ctx context.Context, result *SessionResult) error

	// Get retrieves a result and its question log by result ID.
	// Returns ErrResultNotFound if no such result was recorded.
	Get(ctx context.Context, id uuid.UUID) (*SessionResult, error)

	// ListRecent returns up to limit results, most recently completed first.
	// The question log is not populated.
	ListRecent(ctx context.Context, limit int) ([]*SessionResult, error)

	// Stats aggregates all recorded results.
	Stats(ctx context.Context) (*ResultStats, error)
}
