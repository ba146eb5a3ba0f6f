package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashmath/internal/platform/sqlite"
	"github.com/phrazzld/flashmath/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResult(op string, pct int, completedAt time.Time) *store.SessionResult {
	return &store.SessionResult{
		ID:             uuid.New(),
		SessionID:      uuid.New(),
		Operation:      op,
		Difficulty:     "easy",
		TotalQuestions: 5,
		Correct:        pct / 20,
		Attempted:      5,
		Percentage:     pct,
		CompletedAt:    completedAt,
	}
}

func TestResultStore_SaveAndGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	rs := sqlite.NewResultStore(newTestDB(t), discardLogger())

	result := newResult("addition", 60, time.Now().UTC())
	result.Questions = []store.QuestionRecord{
		{Position: 1, QuestionText: "3 + 4", Answer: 7, Answered: true, Correct: true},
		{Position: 2, QuestionText: "5 + 5", Answer: 10, Answered: true, Correct: false},
	}

	require.NoError(t, rs.Save(ctx, result))

	got, err := rs.Get(ctx, result.ID)
	require.NoError(t, err)
	assert.Equal(t, result.ID, got.ID)
	assert.Equal(t, result.SessionID, got.SessionID)
	assert.Equal(t, "addition", got.Operation)
	assert.Equal(t, "easy", got.Difficulty)
	assert.Equal(t, 5, got.TotalQuestions)
	assert.Equal(t, 3, got.Correct)
	assert.Equal(t, 5, got.Attempted)
	assert.Equal(t, 60, got.Percentage)
	assert.True(t, result.CompletedAt.Equal(got.CompletedAt), "completed_at should round-trip")
	assert.Equal(t, result.Questions, got.Questions)
}

func TestResultStore_SaveDuplicate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	rs := sqlite.NewResultStore(newTestDB(t), discardLogger())

	result := newResult("division", 80, time.Now().UTC())
	require.NoError(t, rs.Save(ctx, result))

	err := rs.Save(ctx, result)
	assert.ErrorIs(t, err, store.ErrResultExists)
	assert.True(t, store.IsDuplicateError(err))
}

func TestResultStore_SaveSeveralRunsOfOneSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	rs := sqlite.NewResultStore(newTestDB(t), discardLogger())

	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	first := newResult("addition", 100, base)
	first.Questions = []store.QuestionRecord{
		{Position: 1, QuestionText: "1 + 1 = ?", Answer: 2, Answered: true, Correct: true},
	}
	second := newResult("division", 40, base.Add(time.Minute))
	second.SessionID = first.SessionID
	second.Questions = []store.QuestionRecord{
		{Position: 1, QuestionText: "8 ÷ 4 = ?", Answer: 2, Answered: true},
	}

	require.NoError(t, rs.Save(ctx, first))
	require.NoError(t, rs.Save(ctx, second))

	all, err := rs.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)
	assert.Equal(t, first.SessionID, all[0].SessionID)

	got, err := rs.Get(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "division", got.Operation)
	assert.Equal(t, second.Questions, got.Questions, "question logs should not mix between runs")

	stats, err := rs.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Sessions)
}

func TestResultStore_SaveInvalid(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	rs := sqlite.NewResultStore(newTestDB(t), discardLogger())

	result := newResult("addition", 60, time.Now().UTC())
	result.Attempted = 9

	err := rs.Save(ctx, result)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)

	_, err = rs.Get(ctx, result.ID)
	assert.ErrorIs(t, err, store.ErrResultNotFound)
}

func TestResultStore_SaveRollsBackOnQuestionFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	rs := sqlite.NewResultStore(newTestDB(t), discardLogger())

	result := newResult("subtraction", 40, time.Now().UTC())
	result.Questions = []store.QuestionRecord{
		{Position: 1, QuestionText: "9 − 4", Answer: 5},
		{Position: 1, QuestionText: "7 − 2", Answer: 5},
	}

	err := rs.Save(ctx, result)
	require.Error(t, err)

	_, err = rs.Get(ctx, result.ID)
	assert.ErrorIs(t, err, store.ErrResultNotFound, "result row should be rolled back")
}

func TestResultStore_GetMissing(t *testing.T) {
	t.Parallel()
	rs := sqlite.NewResultStore(newTestDB(t), discardLogger())

	_, err := rs.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrResultNotFound)
	assert.True(t, store.IsNotFoundError(err))
}

func TestResultStore_ListRecent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	rs := sqlite.NewResultStore(newTestDB(t), discardLogger())

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	oldest := newResult("addition", 20, base)
	middle := newResult("subtraction", 40, base.Add(time.Minute))
	newest := newResult("multiplication", 100, base.Add(2*time.Minute))
	for _, r := range []*store.SessionResult{middle, newest, oldest} {
		require.NoError(t, rs.Save(ctx, r))
	}

	got, err := rs.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, newest.ID, got[0].ID)
	assert.Equal(t, middle.ID, got[1].ID)

	all, err := rs.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = rs.ListRecent(ctx, 0)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestResultStore_Stats(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	rs := sqlite.NewResultStore(newTestDB(t), discardLogger())

	empty, err := rs.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Sessions)
	assert.Equal(t, 0.0, empty.AveragePercentage)
	assert.Empty(t, empty.ByOperation)

	now := time.Now().UTC()
	for _, r := range []*store.SessionResult{
		newResult("addition", 60, now),
		newResult("addition", 100, now),
		newResult("division", 20, now),
	} {
		require.NoError(t, rs.Save(ctx, r))
	}

	stats, err := rs.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Sessions)
	assert.Equal(t, 15, stats.TotalQuestions)
	assert.Equal(t, 3+5+1, stats.TotalCorrect)
	assert.InDelta(t, 60.0, stats.AveragePercentage, 0.001)

	require.Len(t, stats.ByOperation, 2)
	assert.Equal(t, store.OperationStats{Operation: "addition", Sessions: 2, AveragePercentage: 80}, stats.ByOperation[0])
	assert.Equal(t, store.OperationStats{Operation: "division", Sessions: 1, AveragePercentage: 20}, stats.ByOperation[1])
}

func TestNewResultStore_NilDB(t *testing.T) {
	assert.Panics(t, func() { sqlite.NewResultStore(nil, nil) })
}
