package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/flashmath/internal/config"
	"github.com/phrazzld/flashmath/internal/domain/arith"
	"github.com/phrazzld/flashmath/internal/events"
	"github.com/phrazzld/flashmath/internal/pacing"
	"github.com/phrazzld/flashmath/internal/platform/sqlite"
	"github.com/phrazzld/flashmath/internal/service/practice"
	"github.com/phrazzld/flashmath/internal/store"
	"github.com/phrazzld/flashmath/internal/task"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config

	logger *slog.Logger
	db     *sql.DB

	results store.ResultStore

	eventEmitter *events.InMemoryEventEmitter
	scheduler    *pacing.Scheduler
	taskRunner   *task.TaskRunner

	practiceService practice.Service
}

// newApplication wires the stores, event system and practice service on top
// of an already migrated database.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	if cfg == nil || logger == nil || db == nil {
		return nil, fmt.Errorf("config, logger and database are required")
	}

	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.results = sqlite.NewResultStore(db, logger)

	// Finished sessions are recorded on a worker, off the request path.
	app.taskRunner = task.NewTaskRunner(task.TaskRunnerConfigFromConfig(cfg.Task), logger)
	app.taskRunner.Start()

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(task.NewAsyncEventHandler(
		app.taskRunner,
		practice.NewResultRecorder(app.results, logger),
		logger,
		events.TypeSessionCompleted,
	))

	app.scheduler = pacing.NewScheduler(logger)

	settings := practice.SettingsFromConfig(cfg.Practice)
	app.practiceService = practice.NewService(
		arith.NewDefaultGenerator(),
		app.scheduler,
		app.eventEmitter,
		settings,
		logger,
	)

	logger.Info("Application initialized successfully",
		"min_count", settings.MinCount,
		"max_count", settings.MaxCount,
		"advance_delay", settings.AdvanceDelay.String())
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	// Pending auto-advances must not fire into a closed database.
	if app.scheduler != nil {
		app.scheduler.Stop()
	}

	// Drain queued result recordings before the database goes away.
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
