package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashmath/internal/platform/logger"
	"github.com/phrazzld/flashmath/internal/redact"
	"github.com/phrazzld/flashmath/internal/store"
)

const resultEntity = "session_result"

// ResultStore implements store.ResultStore on SQLite.
type ResultStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// Ensure ResultStore implements store.ResultStore interface
var _ store.ResultStore = (*ResultStore)(nil)

// NewResultStore creates a ResultStore over an opened and migrated database.
// If logger is nil, a default logger will be used.
func NewResultStore(db *sql.DB, logger *slog.Logger) *ResultStore {
	if db == nil {
		panic("db cannot be nil") // ALLOW-PANIC: Constructor enforcing required dependency
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ResultStore{
		db:     db,
		logger: logger.With(slog.String("component", "result_store")),
	}
}

// Save implements store.ResultStore.Save.
// The result row and its question log are written in one transaction.
func (s *ResultStore) Save(ctx context.Context, result *store.SessionResult) error {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("result_id", result.ID.String()),
		slog.String("session_id", result.SessionID.String()))

	if err := result.Validate(); err != nil {
		log.Warn("session result validation failed", slog.String("error", err.Error()))
		return err
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		exists, err := resultExists(ctx, tx, result.ID)
		if err != nil {
			return err
		}
		if exists {
			return store.ErrResultExists
		}

		if err := insertResult(ctx, tx, result); err != nil {
			return err
		}
		return insertQuestions(ctx, tx, result.ID, result.Questions)
	})

	if err != nil {
		if errors.Is(err, store.ErrResultExists) {
			log.Warn("session result already recorded")
			return err
		}
		log.Error("failed to save session result", slog.String("error", redact.Error(err)))
		return store.NewStoreError(resultEntity, "save", "failed to save result", err)
	}

	log.Info("session result saved",
		slog.String("operation", result.Operation),
		slog.String("difficulty", result.Difficulty),
		slog.Int("percentage", result.Percentage),
		slog.Int("questions_logged", len(result.Questions)))
	return nil
}

// Get implements store.ResultStore.Get.
// Returns store.ErrResultNotFound if no result has the given ID.
func (s *ResultStore) Get(ctx context.Context, id uuid.UUID) (*store.SessionResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx, `
		SELECT `+resultColumns+`
		FROM session_results
		WHERE id = ?`, id)

	result, err := scanResult(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("session result not found", slog.String("result_id", id.String()))
			return nil, store.ErrResultNotFound
		}
		log.Error("failed to get session result",
			slog.String("error", redact.Error(err)),
			slog.String("result_id", id.String()))
		return nil, store.NewStoreError(resultEntity, "get", "failed to read result", err)
	}

	questions, err := loadQuestions(ctx, s.db, id)
	if err != nil {
		return nil, store.NewStoreError(resultEntity, "get", "failed to read question log", err)
	}
	result.Questions = questions

	return result, nil
}

// ListRecent implements store.ResultStore.ListRecent.
func (s *ResultStore) ListRecent(ctx context.Context, limit int) ([]*store.SessionResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit < 1 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", store.ErrInvalidEntity, limit)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+resultColumns+`
		FROM session_results
		ORDER BY completed_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		log.Error("failed to list session results", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError(resultEntity, "list", "failed to query results", err)
	}
	defer func() { _ = rows.Close() }()

	results := make([]*store.SessionResult, 0, limit)
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, store.NewStoreError(resultEntity, "list", "failed to scan result", err)
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError(resultEntity, "list", "failed to iterate results", err)
	}

	log.Debug("listed session results", slog.Int("count", len(results)), slog.Int("limit", limit))
	return results, nil
}

// Stats implements store.ResultStore.Stats.
func (s *ResultStore) Stats(ctx context.Context) (*store.ResultStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	stats := &store.ResultStats{ByOperation: []store.OperationStats{}}
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(total_questions), 0),
		       COALESCE(SUM(correct), 0),
		       COALESCE(AVG(percentage), 0.0)
		FROM session_results`,
	).Scan(&stats.Sessions, &stats.TotalQuestions, &stats.TotalCorrect, &stats.AveragePercentage)
	if err != nil {
		log.Error("failed to aggregate session results", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError(resultEntity, "stats", "failed to aggregate results", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT operation, COUNT(*), AVG(percentage)
		FROM session_results
		GROUP BY operation
		ORDER BY operation`)
	if err != nil {
		return nil, store.NewStoreError(resultEntity, "stats", "failed to aggregate by operation", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var op store.OperationStats
		if err := rows.Scan(&op.Operation, &op.Sessions, &op.AveragePercentage); err != nil {
			return nil, store.NewStoreError(resultEntity, "stats", "failed to scan operation stats", err)
		}
		stats.ByOperation = append(stats.ByOperation, op)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError(resultEntity, "stats", "failed to iterate operation stats", err)
	}

	return stats, nil
}

const resultColumns = `id, session_id, operation, difficulty, total_questions,
	correct, attempted, percentage, completed_at`

// resultExists, insertResult, insertQuestions and loadQuestions take a
// store.DBTX so they run on the pool or inside RunInTransaction alike.

func resultExists(ctx context.Context, q store.DBTX, id uuid.UUID) (bool, error) {
	var n int
	if err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM session_results WHERE id = ?`, id,
	).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func insertResult(ctx context.Context, q store.DBTX, r *store.SessionResult) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO session_results (`+resultColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.SessionID,
		r.Operation,
		r.Difficulty,
		r.TotalQuestions,
		r.Correct,
		r.Attempted,
		r.Percentage,
		r.CompletedAt.UTC().UnixNano(),
	)
	return MapError(err)
}

func insertQuestions(ctx context.Context, q store.DBTX, resultID uuid.UUID, questions []store.QuestionRecord) error {
	if len(questions) == 0 {
		return nil
	}

	stmt, err := q.PrepareContext(ctx, `
		INSERT INTO session_questions (
			result_id, position, question_text, answer, answered, correct
		) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, qr := range questions {
		if _, err := stmt.ExecContext(ctx,
			resultID, qr.Position, qr.QuestionText, qr.Answer, qr.Answered, qr.Correct,
		); err != nil {
			return MapError(err)
		}
	}
	return nil
}

func loadQuestions(ctx context.Context, q store.DBTX, resultID uuid.UUID) ([]store.QuestionRecord, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT position, question_text, answer, answered, correct
		FROM session_questions
		WHERE result_id = ?
		ORDER BY position`, resultID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var questions []store.QuestionRecord
	for rows.Next() {
		var qr store.QuestionRecord
		if err := rows.Scan(&qr.Position, &qr.QuestionText, &qr.Answer, &qr.Answered, &qr.Correct); err != nil {
			return nil, err
		}
		questions = append(questions, qr)
	}
	return questions, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResult(row rowScanner) (*store.SessionResult, error) {
	var (
		r           store.SessionResult
		completedAt int64
	)
	if err := row.Scan(
		&r.ID,
		&r.SessionID,
		&r.Operation,
		&r.Difficulty,
		&r.TotalQuestions,
		&r.Correct,
		&r.Attempted,
		&r.Percentage,
		&completedAt,
	); err != nil {
		return nil, err
	}
	r.CompletedAt = time.Unix(0, completedAt).UTC()
	return &r, nil
}
