// Package main implements the entry point for the taskbin tasks backend,
// which serves active tasks and the deleted tasks collection over JSON.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/phrazzld/taskbin/internal/config"
	"github.com/phrazzld/taskbin/internal/platform/httpserver"
	"github.com/phrazzld/taskbin/internal/platform/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate", false, "Apply database migrations and exit")
	flag.Parse()

	if err := run(context.Background(), *migrateOnly); err != nil {
		fmt.Fprintf(os.Stderr, "taskbin server: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, migrateOnly bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.Bool("database_configured", cfg.Database.URL != ""))

	if migrateOnly {
		return runMigrations(ctx, cfg, l)
	}

	app, err := newApplication(ctx, cfg, l)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.cleanup()

	srv := httpserver.New(cfg.Server.Port, app.setupRouter())
	return httpserver.Run(ctx, srv, l)
}
