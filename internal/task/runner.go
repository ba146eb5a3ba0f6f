package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/flashmath/internal/config"
)

// TaskRunnerConfig holds configuration for the task runner
type TaskRunnerConfig struct {
	// WorkerCount determines how many concurrent workers process tasks
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory task queue
	QueueSize int

	// TaskTimeout bounds a single task's execution
	TaskTimeout time.Duration
}

// DefaultTaskRunnerConfig returns a TaskRunnerConfig with reasonable defaults
func DefaultTaskRunnerConfig() TaskRunnerConfig {
	return TaskRunnerConfig{
		WorkerCount: 1,
		QueueSize:   100,
		TaskTimeout: 10 * time.Second,
	}
}

// TaskRunnerConfigFromConfig converts the loaded task settings.
func TaskRunnerConfigFromConfig(cfg config.TaskConfig) TaskRunnerConfig {
	return TaskRunnerConfig{
		WorkerCount: cfg.WorkerCount,
		QueueSize:   cfg.QueueSize,
		TaskTimeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	}
}

// TaskRunner manages background task processing: a bounded queue drained by
// a worker pool.
type TaskRunner struct {
	queue    TaskQueueWriter
	pool     *WorkerPool
	logger   *slog.Logger
	stopOnce sync.Once
}

// NewTaskRunner creates a new TaskRunner. Call Start before submitting work.
func NewTaskRunner(config TaskRunnerConfig, logger *slog.Logger) *TaskRunner {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "task_runner"))

	if config.QueueSize <= 0 {
		config.QueueSize = DefaultTaskRunnerConfig().QueueSize
	}

	queue := NewTaskQueue(config.QueueSize, logger)
	pool := NewWorkerPool(queue, WorkerPoolConfig{
		WorkerCount: config.WorkerCount,
		TaskTimeout: config.TaskTimeout,
	}, logger)

	return &TaskRunner{
		queue:  queue,
		pool:   pool,
		logger: logger,
	}
}

// SetErrorHandler sets a function called for every failed task.
// It must be called before Start.
func (r *TaskRunner) SetErrorHandler(handler func(task Task, err error)) {
	r.pool.SetErrorHandler(handler)
}

// Start begins processing tasks.
func (r *TaskRunner) Start() {
	r.pool.Start()
}

// Submit adds a new task to the queue. It returns ErrQueueFull when the
// buffer is exhausted and ErrQueueClosed after Stop.
func (r *TaskRunner) Submit(ctx context.Context, task Task) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("submit task: %w", err)
	}
	return r.queue.Enqueue(task)
}

// Stop closes the queue and waits for the workers to finish the tasks
// already queued. Stop is idempotent.
func (r *TaskRunner) Stop() {
	r.stopOnce.Do(func() {
		r.queue.Close()
		r.pool.Wait()
		r.logger.Info("task runner stopped")
	})
}
