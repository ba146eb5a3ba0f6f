package mocks

import (
	"sync"
	"time"
)

// ManualScheduler records scheduled callbacks and runs them only when the
// test calls Fire. It satisfies practice.AdvanceScheduler.
type ManualScheduler struct {
	mu      sync.Mutex
	tasks   map[string]func()
	delays  map[string]time.Duration
	Cancels []string
}

// NewManualScheduler creates an empty ManualScheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{
		tasks:  make(map[string]func()),
		delays: make(map[string]time.Duration),
	}
}

// Schedule records fn for key, replacing any earlier callback.
func (m *ManualScheduler) Schedule(key string, delay time.Duration, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks[key] = fn
	m.delays[key] = delay
}

// Cancel drops the callback for key.
func (m *ManualScheduler) Cancel(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Cancels = append(m.Cancels, key)
	_, ok := m.tasks[key]
	delete(m.tasks, key)
	delete(m.delays, key)
	return ok
}

// Pending reports whether a callback is recorded for key.
func (m *ManualScheduler) Pending(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.tasks[key]
	return ok
}

// Delay returns the delay the pending callback for key was scheduled with.
func (m *ManualScheduler) Delay(key string) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.delays[key]
}

// Fire runs and removes the callback for key. It reports whether one ran.
func (m *ManualScheduler) Fire(key string) bool {
	m.mu.Lock()
	fn, ok := m.tasks[key]
	delete(m.tasks, key)
	delete(m.delays, key)
	m.mu.Unlock()

	if ok {
		fn()
	}
	return ok
}
