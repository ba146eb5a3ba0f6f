package task

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/flashmath/internal/events"
	"github.com/phrazzld/flashmath/internal/redact"
)

// TaskTypeEvent prefixes the type of every task created from an event.
const TaskTypeEvent = "event"

// Submitter accepts tasks for background execution.
type Submitter interface {
	Submit(ctx context.Context, task Task) error
}

// EventTask runs an event handler for one event as a background task.
type EventTask struct {
	id      uuid.UUID
	event   *events.SessionEvent
	handler events.EventHandler

	mu     sync.Mutex
	status TaskStatus
}

var _ Task = (*EventTask)(nil)

// NewEventTask creates a pending task that delivers event to handler.
func NewEventTask(event *events.SessionEvent, handler events.EventHandler) *EventTask {
	return &EventTask{
		id:      uuid.New(),
		event:   event,
		handler: handler,
		status:  TaskStatusPending,
	}
}

// ID implements Task.
func (t *EventTask) ID() uuid.UUID { return t.id }

// Type implements Task, e.g. "event:session.completed".
func (t *EventTask) Type() string { return TaskTypeEvent + ":" + t.event.Type }

// Status implements Task.
func (t *EventTask) Status() TaskStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

func (t *EventTask) setStatus(s TaskStatus) {
	t.mu.Lock()
	t.status = s
	t.mu.Unlock()
}

// Execute implements Task.
func (t *EventTask) Execute(ctx context.Context) error {
	t.setStatus(TaskStatusProcessing)
	if err := t.handler.HandleEvent(ctx, t.event); err != nil {
		t.setStatus(TaskStatusFailed)
		return err
	}
	t.setStatus(TaskStatusCompleted)
	return nil
}

// AsyncEventHandler implements events.EventHandler by submitting each event
// to a task runner instead of handling it on the emitting goroutine.
// When the runner cannot take the task, the event is handled inline so
// nothing is dropped.
type AsyncEventHandler struct {
	runner Submitter
	inner  events.EventHandler
	types  map[string]bool
	logger *slog.Logger
}

var _ events.EventHandler = (*AsyncEventHandler)(nil)

// NewAsyncEventHandler wraps inner. If types is non-empty, only events of
// those types are forwarded; others are ignored.
func NewAsyncEventHandler(
	runner Submitter,
	inner events.EventHandler,
	logger *slog.Logger,
	types ...string,
) *AsyncEventHandler {
	if runner == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("runner cannot be nil for AsyncEventHandler")
	}
	if inner == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("inner handler cannot be nil for AsyncEventHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	var filter map[string]bool
	if len(types) > 0 {
		filter = make(map[string]bool, len(types))
		for _, t := range types {
			filter[t] = true
		}
	}

	return &AsyncEventHandler{
		runner: runner,
		inner:  inner,
		types:  filter,
		logger: logger.With(slog.String("component", "async_event_handler")),
	}
}

// HandleEvent implements events.EventHandler.
func (h *AsyncEventHandler) HandleEvent(ctx context.Context, event *events.SessionEvent) error {
	if h.types != nil && !h.types[event.Type] {
		return nil
	}

	task := NewEventTask(event, h.inner)
	err := h.runner.Submit(ctx, task)
	if err == nil {
		h.logger.Debug("event submitted as task",
			"task_id", task.ID(),
			"event_type", event.Type,
			"session_id", event.SessionID)
		return nil
	}

	if errors.Is(err, ErrQueueFull) || errors.Is(err, ErrQueueClosed) {
		h.logger.Warn("task runner unavailable, handling event inline",
			"event_type", event.Type,
			"session_id", event.SessionID,
			"reason", err.Error())
		return h.inner.HandleEvent(context.WithoutCancel(ctx), event)
	}

	h.logger.Error("failed to submit event task",
		"event_type", event.Type,
		"error", redact.Error(err))
	return err
}
