package practice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashmath/internal/domain"
	"github.com/phrazzld/flashmath/internal/events"
	"github.com/phrazzld/flashmath/internal/platform/logger"
	"github.com/phrazzld/flashmath/internal/redact"
)

// AdvanceScheduler runs delayed, keyed callbacks. *pacing.Scheduler
// satisfies it.
type AdvanceScheduler interface {
	Schedule(key string, delay time.Duration, fn func())
	Cancel(key string) bool
	Pending(key string) bool
}

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

type outcome struct {
	answered bool
	correct  bool
}

// entry is one live session. mu serialises every call on the session.
type entry struct {
	mu        sync.Mutex
	session   *domain.Session
	outcomes  []outcome
	epoch     uint64
	runID     uuid.UUID
	createdAt time.Time
	updatedAt time.Time
}

func (e *entry) answered() bool {
	idx := e.session.CurrentIndex()
	return e.session.State() == domain.StatePractice && idx < len(e.outcomes) && e.outcomes[idx].answered
}

type serviceImpl struct {
	generator domain.QuestionGenerator
	scheduler AdvanceScheduler
	emitter   events.EventEmitter
	settings  Settings
	logger    *slog.Logger
	now       func() time.Time

	mu       sync.RWMutex
	sessions map[uuid.UUID]*entry
}

// NewService creates a new practice Service.
func NewService(
	generator domain.QuestionGenerator,
	scheduler AdvanceScheduler,
	emitter events.EventEmitter,
	settings Settings,
	logger *slog.Logger,
) Service {
	if generator == nil {
		panic("generator cannot be nil") // ALLOW-PANIC: Constructor enforcing required dependency
	}
	if scheduler == nil {
		panic("scheduler cannot be nil") // ALLOW-PANIC: Constructor enforcing required dependency
	}
	if emitter == nil {
		panic("emitter cannot be nil") // ALLOW-PANIC: Constructor enforcing required dependency
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		generator: generator,
		scheduler: scheduler,
		emitter:   emitter,
		settings:  settings,
		logger:    logger.With(slog.String("component", "practice_service")),
		now:       func() time.Time { return time.Now().UTC() },
		sessions:  make(map[uuid.UUID]*entry),
	}
}

// CreateSession implements Service.CreateSession.
func (s *serviceImpl) CreateSession(ctx context.Context, setup SessionSetup) (*SessionView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := s.now()
	e := &entry{
		session:   domain.NewSession(s.generator, domain.WithDefaultCount(s.settings.DefaultCount)),
		createdAt: now,
		updatedAt: now,
	}

	if setup.Operation != "" {
		if err := e.session.SelectOperation(setup.Operation); err != nil {
			return nil, err
		}
	}
	if setup.Difficulty != "" {
		if err := e.session.SelectDifficulty(setup.Difficulty); err != nil {
			return nil, err
		}
	}
	if setup.Count != 0 {
		if err := s.checkCount(setup.Count); err != nil {
			return nil, err
		}
		if err := e.session.SelectCount(setup.Count); err != nil {
			return nil, err
		}
	}

	id := uuid.New()

	s.mu.Lock()
	if s.settings.MaxSessions > 0 && len(s.sessions) >= s.settings.MaxSessions {
		s.mu.Unlock()
		log.Warn("practice session limit reached", slog.Int("max_sessions", s.settings.MaxSessions))
		return nil, ErrTooManySessions
	}
	s.sessions[id] = e
	active := len(s.sessions)
	s.mu.Unlock()

	log.Info("practice session created",
		slog.String("session_id", id.String()),
		slog.Int("active_sessions", active))

	return s.view(id, e), nil
}

// GetSession implements Service.GetSession.
func (s *serviceImpl) GetSession(ctx context.Context, id uuid.UUID) (*SessionView, error) {
	var view *SessionView
	err := s.withSession(ctx, id, func(e *entry) error {
		view = s.view(id, e)
		return nil
	})
	return view, err
}

// SelectOperation implements Service.SelectOperation.
func (s *serviceImpl) SelectOperation(ctx context.Context, id uuid.UUID, op domain.Operation) (*SessionView, error) {
	return s.mutate(ctx, id, func(e *entry) error {
		return e.session.SelectOperation(op)
	})
}

// SelectDifficulty implements Service.SelectDifficulty.
func (s *serviceImpl) SelectDifficulty(
	ctx context.Context,
	id uuid.UUID,
	diff domain.Difficulty,
) (*SessionView, error) {
	return s.mutate(ctx, id, func(e *entry) error {
		return e.session.SelectDifficulty(diff)
	})
}

// SelectCount implements Service.SelectCount.
func (s *serviceImpl) SelectCount(ctx context.Context, id uuid.UUID, count int) (*SessionView, error) {
	return s.mutate(ctx, id, func(e *entry) error {
		if e.session.State() != domain.StateSetup {
			return domain.ErrNotInSetup
		}
		if err := s.checkCount(count); err != nil {
			return err
		}
		return e.session.SelectCount(count)
	})
}

// Start implements Service.Start.
func (s *serviceImpl) Start(ctx context.Context, id uuid.UUID) (*SessionView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("session_id", id.String()))

	return s.mutate(ctx, id, func(e *entry) error {
		err := e.session.Start()
		switch {
		case errors.Is(err, domain.ErrSetupIncomplete):
			log.Warn("setup incomplete",
				slog.String("operation", string(e.session.Operation())),
				slog.String("difficulty", string(e.session.Difficulty())))
			return err
		case errors.Is(err, domain.ErrNotInSetup):
			return err
		case err != nil:
			log.Error("failed to start practice session", slog.String("error", redact.Error(err)))
			return NewServiceError("start", "failed to generate questions", err)
		}

		e.outcomes = make([]outcome, e.session.TotalQuestions())
		e.epoch++
		e.runID = uuid.New()

		log.Info("practice session started",
			slog.String("run_id", e.runID.String()),
			slog.String("operation", string(e.session.Operation())),
			slog.String("difficulty", string(e.session.Difficulty())),
			slog.Int("total_questions", e.session.TotalQuestions()))

		s.emit(ctx, events.TypeSessionStarted, id, events.SessionStartedPayload{
			RunID:          e.runID,
			Operation:      string(e.session.Operation()),
			Difficulty:     string(e.session.Difficulty()),
			TotalQuestions: e.session.TotalQuestions(),
		})
		return nil
	})
}

// SubmitAnswer implements Service.SubmitAnswer.
func (s *serviceImpl) SubmitAnswer(ctx context.Context, id uuid.UUID, raw string) (*AnswerResult, error) {
	var result *AnswerResult
	err := s.withSession(ctx, id, func(e *entry) error {
		q, ok := e.session.CurrentQuestion()
		if !ok {
			return domain.ErrNotInPractice
		}
		if e.answered() {
			return ErrAlreadyAnswered
		}

		correct, err := domain.CheckAnswer(q, raw)
		if err != nil {
			return err
		}

		if err := s.record(ctx, id, e, correct); err != nil {
			return err
		}

		result = &AnswerResult{
			Correct:       correct,
			CorrectAnswer: q.Answer,
			AnswerText:    q.AnswerText,
			Session:       s.view(id, e),
		}
		return nil
	})
	return result, err
}

// RecordOutcome implements Service.RecordOutcome.
func (s *serviceImpl) RecordOutcome(ctx context.Context, id uuid.UUID, correct bool) (*SessionView, error) {
	return s.mutate(ctx, id, func(e *entry) error {
		return s.record(ctx, id, e, correct)
	})
}

// Advance implements Service.Advance.
func (s *serviceImpl) Advance(ctx context.Context, id uuid.UUID) (*SessionView, error) {
	return s.mutate(ctx, id, func(e *entry) error {
		if err := s.advance(ctx, id, e); err != nil {
			return err
		}
		s.scheduler.Cancel(id.String())
		return nil
	})
}

// Reset implements Service.Reset.
func (s *serviceImpl) Reset(ctx context.Context, id uuid.UUID) (*SessionView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	return s.mutate(ctx, id, func(e *entry) error {
		s.scheduler.Cancel(id.String())

		previous := e.session.State()
		e.session.Reset()
		e.outcomes = nil
		e.epoch++
		e.runID = uuid.Nil

		log.Info("practice session reset",
			slog.String("session_id", id.String()),
			slog.String("previous_state", string(previous)))

		s.emit(ctx, events.TypeSessionReset, id, events.SessionResetPayload{
			PreviousState: string(previous),
		})
		return nil
	})
}

// Summary implements Service.Summary.
func (s *serviceImpl) Summary(ctx context.Context, id uuid.UUID) (*domain.Summary, error) {
	var summary *domain.Summary
	err := s.withSession(ctx, id, func(e *entry) error {
		if e.session.State() != domain.StateSummary {
			return ErrNotInSummary
		}
		sum := e.session.Summary()
		summary = &sum
		return nil
	})
	return summary, err
}

// DeleteSession implements Service.DeleteSession.
func (s *serviceImpl) DeleteSession(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	e, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}

	// Wait for any call still holding the session.
	e.mu.Lock()
	s.scheduler.Cancel(id.String())
	e.mu.Unlock()

	log.Info("practice session deleted", slog.String("session_id", id.String()))
	return nil
}

// Options implements Service.Options.
func (s *serviceImpl) Options() Options {
	opts := Options{
		MinCount:     s.settings.MinCount,
		MaxCount:     s.settings.MaxCount,
		DefaultCount: s.settings.DefaultCount,
	}
	for _, op := range domain.Operations() {
		opts.Operations = append(opts.Operations, Option{
			Value:  string(op),
			Name:   op.DisplayName(),
			Symbol: op.Symbol(),
		})
	}
	for _, d := range domain.Difficulties() {
		opts.Difficulties = append(opts.Difficulties, Option{
			Value: string(d),
			Name:  d.DisplayName(),
		})
	}
	return opts
}

// record stores an outcome for the current question and, when enabled,
// schedules the automatic advance. The caller holds e.mu.
func (s *serviceImpl) record(ctx context.Context, id uuid.UUID, e *entry, correct bool) error {
	if e.session.State() != domain.StatePractice {
		return domain.ErrNotInPractice
	}
	if e.answered() {
		return ErrAlreadyAnswered
	}

	var err error
	if correct {
		err = e.session.RecordCorrect()
	} else {
		err = e.session.RecordIncorrect()
	}
	if err != nil {
		return err
	}

	idx := e.session.CurrentIndex()
	e.outcomes[idx] = outcome{answered: true, correct: correct}

	logger.FromContextOrDefault(ctx, s.logger).Debug("outcome recorded",
		slog.String("session_id", id.String()),
		slog.Int("question", idx+1),
		slog.Bool("correct", correct))

	if s.settings.AdvanceDelay > 0 {
		epoch := e.epoch
		s.scheduler.Schedule(id.String(), s.settings.AdvanceDelay, func() {
			s.autoAdvance(id, epoch, idx)
		})
	}
	return nil
}

// advance moves past an answered question. The caller holds e.mu.
func (s *serviceImpl) advance(ctx context.Context, id uuid.UUID, e *entry) error {
	if e.session.State() != domain.StatePractice {
		return domain.ErrNotInPractice
	}
	if !e.answered() {
		return ErrNotAnswered
	}
	if err := e.session.Advance(); err != nil {
		return err
	}

	if e.session.State() == domain.StateSummary {
		s.complete(ctx, id, e)
	}
	return nil
}

// autoAdvance runs from the scheduler. It only acts if the session is still
// on the question whose outcome scheduled it.
func (s *serviceImpl) autoAdvance(id uuid.UUID, epoch uint64, idx int) {
	e, ok := s.lookup(id)
	if !ok {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.epoch != epoch || e.session.State() != domain.StatePractice || e.session.CurrentIndex() != idx {
		return
	}

	ctx := logger.WithLogger(context.Background(), s.logger)
	if err := s.advance(ctx, id, e); err != nil {
		s.logger.Warn("automatic advance failed",
			slog.String("session_id", id.String()),
			slog.String("error", err.Error()))
		return
	}
	e.updatedAt = s.now()

	s.logger.Debug("automatic advance",
		slog.String("session_id", id.String()),
		slog.String("state", string(e.session.State())),
		slog.Int("question", e.session.CurrentIndex()+1))
}

// complete emits the completion event. The caller holds e.mu.
func (s *serviceImpl) complete(ctx context.Context, id uuid.UUID, e *entry) {
	summary := e.session.Summary()

	questions := make([]events.QuestionOutcome, len(summary.Questions))
	for i, q := range summary.Questions {
		questions[i] = events.QuestionOutcome{
			Position:     i + 1,
			QuestionText: q.QuestionText,
			Answer:       q.Answer,
		}
		if i < len(e.outcomes) {
			questions[i].Answered = e.outcomes[i].answered
			questions[i].Correct = e.outcomes[i].correct
		}
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("practice session completed",
		slog.String("session_id", id.String()),
		slog.String("run_id", e.runID.String()),
		slog.Int("correct", summary.Correct),
		slog.Int("total_questions", summary.TotalQuestions),
		slog.Int("percentage", summary.Percentage))

	s.emit(ctx, events.TypeSessionCompleted, id, events.SessionCompletedPayload{
		RunID:          e.runID,
		Operation:      string(summary.Operation),
		Difficulty:     string(summary.Difficulty),
		TotalQuestions: summary.TotalQuestions,
		Correct:        summary.Correct,
		Attempted:      summary.Attempted,
		Percentage:     summary.Percentage,
		Questions:      questions,
	})
}

// emit publishes an event. Handler failures are logged; the session change
// that caused the event stands.
func (s *serviceImpl) emit(ctx context.Context, eventType string, id uuid.UUID, payload interface{}) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := events.NewSessionEvent(eventType, id, payload)
	if err != nil {
		log.Error("failed to create session event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
		return
	}

	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.Error("failed to emit session event",
			slog.String("event_type", eventType),
			slog.String("session_id", id.String()),
			slog.String("error", redact.Error(err)))
	}
}

func (s *serviceImpl) checkCount(n int) error {
	if n < s.settings.MinCount || n > s.settings.MaxCount {
		return fmt.Errorf("%w: %d is not between %d and %d",
			ErrCountOutOfRange, n, s.settings.MinCount, s.settings.MaxCount)
	}
	return nil
}

func (s *serviceImpl) lookup(id uuid.UUID) (*entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.sessions[id]
	return e, ok
}

// withSession runs fn with the session locked.
func (s *serviceImpl) withSession(ctx context.Context, id uuid.UUID, fn func(e *entry) error) error {
	e, ok := s.lookup(id)
	if !ok {
		logger.FromContextOrDefault(ctx, s.logger).Debug("practice session not found",
			slog.String("session_id", id.String()))
		return ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// Deleted while waiting for the lock.
	if _, ok := s.lookup(id); !ok {
		return ErrSessionNotFound
	}
	return fn(e)
}

// mutate runs fn with the session locked and returns the resulting view.
func (s *serviceImpl) mutate(ctx context.Context, id uuid.UUID, fn func(e *entry) error) (*SessionView, error) {
	var view *SessionView
	err := s.withSession(ctx, id, func(e *entry) error {
		if err := fn(e); err != nil {
			return err
		}
		e.updatedAt = s.now()
		view = s.view(id, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// view builds the client view. The caller holds e.mu or owns e exclusively.
func (s *serviceImpl) view(id uuid.UUID, e *entry) *SessionView {
	return &SessionView{
		ID:                 id,
		RunID:              e.runID,
		Snapshot:           e.session.Snapshot(),
		Answered:           e.answered(),
		AutoAdvancePending: s.scheduler.Pending(id.String()),
		CreatedAt:          e.createdAt,
		UpdatedAt:          e.updatedAt,
	}
}
