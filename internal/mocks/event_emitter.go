package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/flashmath/internal/events"
)

var _ events.EventEmitter = (*MockEventEmitter)(nil)

// MockEventEmitter records emitted events.
type MockEventEmitter struct {
	// EmitEventFn allows test cases to mock the EmitEvent behavior
	EmitEventFn func(ctx context.Context, event *events.SessionEvent) error

	// Err is returned when EmitEventFn is nil
	Err error

	mu     sync.Mutex
	events []*events.SessionEvent
}

// EmitEvent implements events.EventEmitter.
func (m *MockEventEmitter) EmitEvent(ctx context.Context, event *events.SessionEvent) error {
	m.mu.Lock()
	m.events = append(m.events, event)
	m.mu.Unlock()

	if m.EmitEventFn != nil {
		return m.EmitEventFn(ctx, event)
	}
	return m.Err
}

// Events returns the emitted events in order.
func (m *MockEventEmitter) Events() []*events.SessionEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*events.SessionEvent, len(m.events))
	copy(out, m.events)
	return out
}

// Types returns the types of the emitted events in order.
func (m *MockEventEmitter) Types() []string {
	evs := m.Events()
	types := make([]string, len(evs))
	for i, e := range evs {
		types[i] = e.Type
	}
	return types
}
