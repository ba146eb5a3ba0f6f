package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/flashmath/internal/domain"
	"github.com/phrazzld/flashmath/internal/service/practice"
)

var _ practice.Service = (*MockPracticeService)(nil)

// MockPracticeService implements practice.Service for testing. Every method
// delegates to its function field; an unset field returns View (or the zero
// value) and Err.
type MockPracticeService struct {
	CreateSessionFn    func(ctx context.Context, setup practice.SessionSetup) (*practice.SessionView, error)
	GetSessionFn       func(ctx context.Context, id uuid.UUID) (*practice.SessionView, error)
	SelectOperationFn  func(ctx context.Context, id uuid.UUID, op domain.Operation) (*practice.SessionView, error)
	SelectDifficultyFn func(ctx context.Context, id uuid.UUID, diff domain.Difficulty) (*practice.SessionView, error)
	SelectCountFn      func(ctx context.Context, id uuid.UUID, count int) (*practice.SessionView, error)
	StartFn            func(ctx context.Context, id uuid.UUID) (*practice.SessionView, error)
	SubmitAnswerFn     func(ctx context.Context, id uuid.UUID, raw string) (*practice.AnswerResult, error)
	RecordOutcomeFn    func(ctx context.Context, id uuid.UUID, correct bool) (*practice.SessionView, error)
	AdvanceFn          func(ctx context.Context, id uuid.UUID) (*practice.SessionView, error)
	ResetFn            func(ctx context.Context, id uuid.UUID) (*practice.SessionView, error)
	SummaryFn          func(ctx context.Context, id uuid.UUID) (*domain.Summary, error)
	DeleteSessionFn    func(ctx context.Context, id uuid.UUID) error
	OptionsFn          func() practice.Options

	// Default response values
	View *practice.SessionView
	Err  error

	mu    sync.Mutex
	calls []string
}

func (m *MockPracticeService) track(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

// Calls returns the names of the methods called, in order.
func (m *MockPracticeService) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// CreateSession implements practice.Service.
func (m *MockPracticeService) CreateSession(
	ctx context.Context,
	setup practice.SessionSetup,
) (*practice.SessionView, error) {
	m.track("CreateSession")
	if m.CreateSessionFn != nil {
		return m.CreateSessionFn(ctx, setup)
	}
	return m.View, m.Err
}

// GetSession implements practice.Service.
func (m *MockPracticeService) GetSession(ctx context.Context, id uuid.UUID) (*practice.SessionView, error) {
	m.track("GetSession")
	if m.GetSessionFn != nil {
		return m.GetSessionFn(ctx, id)
	}
	return m.View, m.Err
}

// SelectOperation implements practice.Service.
func (m *MockPracticeService) SelectOperation(
	ctx context.Context,
	id uuid.UUID,
	op domain.Operation,
) (*practice.SessionView, error) {
	m.track("SelectOperation")
	if m.SelectOperationFn != nil {
		return m.SelectOperationFn(ctx, id, op)
	}
	return m.View, m.Err
}

// SelectDifficulty implements practice.Service.
func (m *MockPracticeService) SelectDifficulty(
	ctx context.Context,
	id uuid.UUID,
	diff domain.Difficulty,
) (*practice.SessionView, error) {
	m.track("SelectDifficulty")
	if m.SelectDifficultyFn != nil {
		return m.SelectDifficultyFn(ctx, id, diff)
	}
	return m.View, m.Err
}

// SelectCount implements practice.Service.
func (m *MockPracticeService) SelectCount(ctx context.Context, id uuid.UUID, count int) (*practice.SessionView, error) {
	m.track("SelectCount")
	if m.SelectCountFn != nil {
		return m.SelectCountFn(ctx, id, count)
	}
	return m.View, m.Err
}

// Start implements practice.Service.
func (m *MockPracticeService) Start(ctx context.Context, id uuid.UUID) (*practice.SessionView, error) {
	m.track("Start")
	if m.StartFn != nil {
		return m.StartFn(ctx, id)
	}
	return m.View, m.Err
}

// SubmitAnswer implements practice.Service.
func (m *MockPracticeService) SubmitAnswer(
	ctx context.Context,
	id uuid.UUID,
	raw string,
) (*practice.AnswerResult, error) {
	m.track("SubmitAnswer")
	if m.SubmitAnswerFn != nil {
		return m.SubmitAnswerFn(ctx, id, raw)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return &practice.AnswerResult{Session: m.View}, nil
}

// RecordOutcome implements practice.Service.
func (m *MockPracticeService) RecordOutcome(
	ctx context.Context,
	id uuid.UUID,
	correct bool,
) (*practice.SessionView, error) {
	m.track("RecordOutcome")
	if m.RecordOutcomeFn != nil {
		return m.RecordOutcomeFn(ctx, id, correct)
	}
	return m.View, m.Err
}

// Advance implements practice.Service.
func (m *MockPracticeService) Advance(ctx context.Context, id uuid.UUID) (*practice.SessionView, error) {
	m.track("Advance")
	if m.AdvanceFn != nil {
		return m.AdvanceFn(ctx, id)
	}
	return m.View, m.Err
}

// Reset implements practice.Service.
func (m *MockPracticeService) Reset(ctx context.Context, id uuid.UUID) (*practice.SessionView, error) {
	m.track("Reset")
	if m.ResetFn != nil {
		return m.ResetFn(ctx, id)
	}
	return m.View, m.Err
}

// Summary implements practice.Service.
func (m *MockPracticeService) Summary(ctx context.Context, id uuid.UUID) (*domain.Summary, error) {
	m.track("Summary")
	if m.SummaryFn != nil {
		return m.SummaryFn(ctx, id)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return &domain.Summary{}, nil
}

// DeleteSession implements practice.Service.
func (m *MockPracticeService) DeleteSession(ctx context.Context, id uuid.UUID) error {
	m.track("DeleteSession")
	if m.DeleteSessionFn != nil {
		return m.DeleteSessionFn(ctx, id)
	}
	return m.Err
}

// Options implements practice.Service.
func (m *MockPracticeService) Options() practice.Options {
	m.track("Options")
	if m.OptionsFn != nil {
		return m.OptionsFn()
	}
	return practice.Options{}
}
