// Package main implements the entry point for the deleted tasks web view.
// It renders the deleted tasks held by the tasks backend and lets users
// restore them.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/phrazzld/taskbin/internal/config"
	"github.com/phrazzld/taskbin/internal/platform/httpserver"
	"github.com/phrazzld/taskbin/internal/platform/logger"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "taskbin web: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("web configuration loaded",
		slog.Int("port", cfg.Web.Port),
		slog.String("backend_url", cfg.Backend.BaseURL),
		slog.String("locale", cfg.View.Locale),
		slog.String("time_zone", cfg.View.TimeZone))

	app, err := newApplication(cfg, l)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go app.sessions.Run(ctx)

	srv := httpserver.New(cfg.Web.Port, app.handler.Router())
	return httpserver.Run(ctx, srv, l)
}
