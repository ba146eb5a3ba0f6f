package sqlite_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/flashmath/internal/platform/sqlite"
	"github.com/phrazzld/flashmath/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const insertResult = `
	INSERT INTO session_results (
		id, session_id, operation, difficulty, total_questions,
		correct, attempted, percentage, completed_at
	) VALUES (?, ?, 'addition', 'easy', ?, 0, 0, ?, 0)`

func TestMapError(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, sqlite.MapError(nil))
	})

	t.Run("no rows", func(t *testing.T) {
		var n int
		err := db.QueryRow(`SELECT total_questions FROM session_results WHERE id = ?`, uuid.New()).Scan(&n)
		assert.ErrorIs(t, sqlite.MapError(err), store.ErrNotFound)
	})

	t.Run("primary key violation", func(t *testing.T) {
		id := uuid.New()
		_, err := db.Exec(insertResult, id, uuid.New(), 5, 0)
		require.NoError(t, err)

		_, err = db.Exec(insertResult, id, uuid.New(), 5, 0)
		require.Error(t, err)
		assert.True(t, sqlite.IsConstraintViolation(err))
		assert.ErrorIs(t, sqlite.MapError(err), store.ErrDuplicate)
	})

	t.Run("session id is not unique", func(t *testing.T) {
		sessionID := uuid.New()
		_, err := db.Exec(insertResult, uuid.New(), sessionID, 5, 0)
		require.NoError(t, err)

		_, err = db.Exec(insertResult, uuid.New(), sessionID, 5, 0)
		assert.NoError(t, err)
	})

	t.Run("check violation", func(t *testing.T) {
		_, err := db.Exec(insertResult, uuid.New(), uuid.New(), 5, 150)
		require.Error(t, err)
		assert.ErrorIs(t, sqlite.MapError(err), store.ErrInvalidEntity)
	})

	t.Run("foreign key violation", func(t *testing.T) {
		_, err := db.Exec(`
			INSERT INTO session_questions (result_id, position, question_text, answer)
			VALUES (?, 1, '1 + 1', 2)`, uuid.New())
		require.Error(t, err)
		assert.ErrorIs(t, sqlite.MapError(err), store.ErrInvalidEntity)
	})

	t.Run("unmapped error passes through", func(t *testing.T) {
		plain := errors.New("disk I/O error")
		assert.Same(t, plain, sqlite.MapError(plain))
	})
}
