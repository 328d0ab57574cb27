package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskbin/internal/config"
	"github.com/phrazzld/taskbin/internal/platform/memory"
	"github.com/phrazzld/taskbin/internal/platform/postgres"
	"github.com/phrazzld/taskbin/internal/service"
	"github.com/phrazzld/taskbin/internal/store"
)

// application holds the backend's shared dependencies and releases them on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil when running on the in-memory store.
	db *sql.DB

	taskStore   store.TaskStore
	taskService service.TaskService
}

// newApplication selects the store from the configuration and builds the services.
// A configured database is migrated before use.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	if cfg.Database.URL == "" {
		logger.Warn("no database configured, tasks are kept in memory")
		app.taskStore = memory.NewTaskStore(logger)
	} else {
		db, err := setupAppDatabase(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		app.db = db

		if err := postgres.Migrate(ctx, db, logger); err != nil {
			app.cleanup()
			return nil, err
		}
		app.taskStore = postgres.NewPostgresTaskStore(db, logger)
	}

	taskService, err := service.NewTaskService(app.taskStore, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}
	app.taskService = taskService

	return app, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db == nil {
		return
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database connection", slog.String("error", err.Error()))
		return
	}
	app.logger.Info("database connection closed")
}
