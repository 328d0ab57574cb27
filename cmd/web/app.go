package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskbin/internal/client"
	"github.com/phrazzld/taskbin/internal/config"
	"github.com/phrazzld/taskbin/internal/view"
	"github.com/phrazzld/taskbin/internal/web"
)

// application holds the web view's dependencies.
type application struct {
	sessions *view.Sessions
	handler  *web.Handler
}

func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	backend, err := client.New(cfg.Backend, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create backend client: %w", err)
	}

	renderer, err := view.NewRenderer(cfg.View)
	if err != nil {
		return nil, err
	}

	deletedTasks, err := view.NewDeletedTasksView(backend, renderer, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create deleted tasks view: %w", err)
	}

	sessions := view.NewSessions(cfg.View, logger)
	return &application{
		sessions: sessions,
		handler:  web.NewHandler(deletedTasks, renderer, sessions, cfg.View.ActiveTasksURL, logger),
	}, nil
}
