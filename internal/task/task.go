package task

import (
	"context"

	"github.com/google/uuid"
)

// TaskStatus is the lifecycle position of a task.
type TaskStatus string

// Task statuses. A task moves from pending to processing when a worker picks
// it up, then to completed or failed.
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// Task is work taken off the request path, such as writing a finished run
// to the result store. EventTask is the implementation the server uses.
type Task interface {
	ID() uuid.UUID

	// Type names the work, e.g. "event:session.completed". It is logged with
	// every failure.
	Type() string

	Status() TaskStatus

	// Execute does the work. ctx carries the worker pool's per-task timeout.
	Execute(ctx context.Context) error
}

// TaskQueueReader is the side of the queue the worker pool drains.
type TaskQueueReader interface {
	// GetChannel returns the channel workers range over. It is closed once
	// the queue is closed and every buffered task has been received.
	GetChannel() <-chan Task
}

// TaskQueueWriter is the side of the queue TaskRunner.Submit feeds.
type TaskQueueWriter interface {
	// Enqueue buffers task without blocking. It returns ErrQueueFull when the
	// buffer is exhausted and ErrQueueClosed after Close, in which case
	// AsyncEventHandler records the run inline instead.
	Enqueue(task Task) error

	// Close stops further submissions. Tasks already buffered still run.
	Close()
}
