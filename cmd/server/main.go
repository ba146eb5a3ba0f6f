// Package main implements the entry point for the flashmath server, which
// runs arithmetic flash-card practice sessions over a JSON HTTP API.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/flashmath/internal/config"
	"github.com/phrazzld/flashmath/internal/platform/logger"
	"github.com/phrazzld/flashmath/internal/platform/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("flashmath: %v", err)
		stop()
		os.Exit(1)
	}
}

// run loads configuration, sets up logging and storage, and serves until ctx
// is cancelled.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"advance_delay_ms", cfg.Practice.AdvanceDelayMS,
		"max_sessions", cfg.Practice.MaxSessions)

	db, err := sqlite.OpenAndMigrate(ctx, cfg.Database.DSN, l)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	app, err := newApplication(cfg, l, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
