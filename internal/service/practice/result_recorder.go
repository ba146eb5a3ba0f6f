package practice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/flashmath/internal/events"
	"github.com/phrazzld/flashmath/internal/platform/logger"
	"github.com/phrazzld/flashmath/internal/redact"
	"github.com/phrazzld/flashmath/internal/store"
)

// ResultRecorder saves every completed run into a result store.
type ResultRecorder struct {
	results store.ResultStore
	logger  *slog.Logger
}

var _ events.EventHandler = (*ResultRecorder)(nil)

// NewResultRecorder creates a ResultRecorder.
func NewResultRecorder(results store.ResultStore, logger *slog.Logger) *ResultRecorder {
	if results == nil {
		panic("results cannot be nil") // ALLOW-PANIC: Constructor enforcing required dependency
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ResultRecorder{
		results: results,
		logger:  logger.With(slog.String("component", "result_recorder")),
	}
}

// HandleEvent implements events.EventHandler. Events other than
// session.completed are ignored.
func (r *ResultRecorder) HandleEvent(ctx context.Context, event *events.SessionEvent) error {
	if event.Type != events.TypeSessionCompleted {
		return nil
	}

	log := logger.FromContextOrDefault(ctx, r.logger).With(
		slog.String("session_id", event.SessionID.String()),
		slog.String("event_id", event.ID.String()))

	var payload events.SessionCompletedPayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		log.Error("invalid session.completed payload", slog.String("error", err.Error()))
		return fmt.Errorf("failed to decode %s payload: %w", event.Type, err)
	}
	log = log.With(slog.String("run_id", payload.RunID.String()))

	// Each run is stored under its own ID; a redelivered event for the same
	// run hits ErrResultExists below.
	result := &store.SessionResult{
		ID:             payload.RunID,
		SessionID:      event.SessionID,
		Operation:      payload.Operation,
		Difficulty:     payload.Difficulty,
		TotalQuestions: payload.TotalQuestions,
		Correct:        payload.Correct,
		Attempted:      payload.Attempted,
		Percentage:     payload.Percentage,
		CompletedAt:    event.CreatedAt,
		Questions:      make([]store.QuestionRecord, len(payload.Questions)),
	}
	for i, q := range payload.Questions {
		result.Questions[i] = store.QuestionRecord{
			Position:     q.Position,
			QuestionText: q.QuestionText,
			Answer:       q.Answer,
			Answered:     q.Answered,
			Correct:      q.Correct,
		}
	}

	if err := r.results.Save(ctx, result); err != nil {
		if errors.Is(err, store.ErrResultExists) {
			log.Debug("run already recorded")
			return nil
		}
		log.Error("failed to record session result", slog.String("error", redact.Error(err)))
		return fmt.Errorf("failed to record session result: %w", err)
	}

	log.Debug("session result recorded", slog.Int("percentage", result.Percentage))
	return nil
}
