package task

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/phrazzld/flashmath/internal/events"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// funcTask is a Task backed by a function.
type funcTask struct {
	id uuid.UUID
	fn func(ctx context.Context) error
}

func newFuncTask(fn func(ctx context.Context) error) *funcTask {
	return &funcTask{id: uuid.New(), fn: fn}
}

func (t *funcTask) ID() uuid.UUID                     { return t.id }
func (t *funcTask) Type() string                      { return "func" }
func (t *funcTask) Status() TaskStatus                { return TaskStatusPending }
func (t *funcTask) Execute(ctx context.Context) error { return t.fn(ctx) }

// recordingHandler records every event it handles.
type recordingHandler struct {
	mu     sync.Mutex
	events []*events.SessionEvent
	err    error
	calls  atomic.Int32
}

func (h *recordingHandler) HandleEvent(ctx context.Context, event *events.SessionEvent) error {
	h.calls.Add(1)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return h.err
}

func (h *recordingHandler) handled() []*events.SessionEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*events.SessionEvent, len(h.events))
	copy(out, h.events)
	return out
}

// submitterFunc adapts a function to Submitter.
type submitterFunc func(ctx context.Context, task Task) error

func (f submitterFunc) Submit(ctx context.Context, task Task) error { return f(ctx, task) }
