package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/flashmath/internal/store"
)

var _ store.ResultStore = (*MockResultStore)(nil)

// MockResultStore implements store.ResultStore for testing. Without function
// fields it keeps saved results in memory.
type MockResultStore struct {
	SaveFn       func(ctx context.Context, result *store.SessionResult) error
	GetFn        func(ctx context.Context, id uuid.UUID) (*store.SessionResult, error)
	ListRecentFn func(ctx context.Context, limit int) ([]*store.SessionResult, error)
	StatsFn      func(ctx context.Context) (*store.ResultStats, error)

	mu    sync.Mutex
	saved []*store.SessionResult
}

// Save implements store.ResultStore.
func (m *MockResultStore) Save(ctx context.Context, result *store.SessionResult) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, result)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.saved {
		if r.ID == result.ID {
			return store.ErrResultExists
		}
	}
	m.saved = append(m.saved, result)
	return nil
}

// Get implements store.ResultStore.
func (m *MockResultStore) Get(ctx context.Context, id uuid.UUID) (*store.SessionResult, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.saved {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, store.ErrResultNotFound
}

// ListRecent implements store.ResultStore. The default returns saved results
// newest first.
func (m *MockResultStore) ListRecent(ctx context.Context, limit int) ([]*store.SessionResult, error) {
	if m.ListRecentFn != nil {
		return m.ListRecentFn(ctx, limit)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*store.SessionResult, 0, limit)
	for i := len(m.saved) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.saved[i])
	}
	return out, nil
}

// Stats implements store.ResultStore.
func (m *MockResultStore) Stats(ctx context.Context) (*store.ResultStats, error) {
	if m.StatsFn != nil {
		return m.StatsFn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := &store.ResultStats{Sessions: len(m.saved), ByOperation: []store.OperationStats{}}
	return stats, nil
}

// Saved returns every result saved through the default Save.
func (m *MockResultStore) Saved() []*store.SessionResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*store.SessionResult, len(m.saved))
	copy(out, m.saved)
	return out
}
