package view

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/phrazzld/taskbin/internal/domain"
	"github.com/phrazzld/taskbin/internal/platform/logger"
)

// User-facing messages.
const (
	MessageLoadFailed    = "Error al cargar las tareas eliminadas"
	MessageRestoreFailed = "Error al restaurar la tarea"
	messageRestored      = "Tarea \"%s\" restaurada exitosamente!"
)

// DeletedTasksAPI is the part of the tasks backend the view depends on.
type DeletedTasksAPI interface {
	ListDeleted(ctx context.Context) ([]domain.DeletedTask, error)
	Restore(ctx context.Context, id int64) (*domain.Task, error)
}

// DeletedTasksView drives a Screen: it loads the deleted tasks into the list
// container and runs the confirm-then-restore flow. Failures become screen
// state; the returned errors are for logging.
type DeletedTasksView struct {
	api      DeletedTasksAPI
	renderer *Renderer
	logger   *slog.Logger
}

// NewDeletedTasksView creates a view over api.
func NewDeletedTasksView(api DeletedTasksAPI, renderer *Renderer, logger *slog.Logger) (*DeletedTasksView, error) {
	if api == nil {
		return nil, errors.New("deleted tasks API cannot be nil")
	}
	if renderer == nil {
		return nil, errors.New("renderer cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DeletedTasksView{
		api:      api,
		renderer: renderer,
		logger:   logger.With(slog.String("component", "deleted_tasks_view")),
	}, nil
}

// LoadDeletedTasks fetches the deleted tasks and swaps the list container in
// one step once the call completes. On failure the container shows the load
// error banner and an error notice is displayed.
func (v *DeletedTasksView) LoadDeletedTasks(ctx context.Context, s *Screen) error {
	tasks, err := v.api.ListDeleted(ctx)
	if err != nil {
		v.showLoadError(ctx, s)
		return err
	}

	html, err := v.RenderDeletedTasks(tasks)
	if err != nil {
		v.showLoadError(ctx, s)
		return err
	}

	s.SetList(html)
	v.log(ctx).Debug("deleted tasks rendered", slog.Int("count", len(tasks)))
	return nil
}

// RenderDeletedTasks renders tasks as cards, or the empty-state message.
func (v *DeletedTasksView) RenderDeletedTasks(tasks []domain.DeletedTask) (template.HTML, error) {
	return v.renderer.RenderDeletedTasks(tasks)
}

// RequestRestore asks the user to confirm restoring task id. Nothing is sent
// to the backend.
func (v *DeletedTasksView) RequestRestore(s *Screen, id int64) error {
	if err := domain.ValidateID(id); err != nil {
		return err
	}
	s.RequestConfirmation(id)
	return nil
}

// ResolveRestore applies the user's answer to a pending confirmation. A
// declined confirmation changes nothing else; a confirmed one runs RestoreTask.
func (v *DeletedTasksView) ResolveRestore(ctx context.Context, s *Screen, id int64, confirmed bool) error {
	if err := s.ResolveConfirmation(id, confirmed); err != nil {
		return err
	}
	if !confirmed {
		v.log(ctx).Debug("restore cancelled", slog.Int64("task_id", id))
		return nil
	}
	return v.RestoreTask(ctx, s, id)
}

// RestoreTask restores task id. On success it shows a confirmation notice and
// reloads the list exactly once. On failure it shows an error notice and
// leaves the list untouched.
func (v *DeletedTasksView) RestoreTask(ctx context.Context, s *Screen, id int64) error {
	task, err := v.api.Restore(ctx, id)
	if err != nil {
		s.ShowMessage(MessageRestoreFailed, NoticeError)
		return fmt.Errorf("restore task %d: %w", id, err)
	}

	s.ShowMessage(fmt.Sprintf(messageRestored, task.Title), NoticeSuccess)
	v.log(ctx).Info("task restored", slog.Int64("task_id", task.ID))

	if err := v.LoadDeletedTasks(ctx, s); err != nil {
		return fmt.Errorf("reload after restoring task %d: %w", id, err)
	}
	return nil
}

func (v *DeletedTasksView) showLoadError(ctx context.Context, s *Screen) {
	banner, err := v.renderer.RenderLoadError()
	if err != nil {
		v.log(ctx).Error("failed to render load error banner", slog.String("error", err.Error()))
	}
	s.SetList(banner)
	s.ShowMessage(MessageLoadFailed, NoticeError)
}

func (v *DeletedTasksView) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, v.logger)
}
