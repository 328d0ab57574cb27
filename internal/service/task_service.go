package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/taskbin/internal/domain"
	"github.com/phrazzld/taskbin/internal/platform/logger"
	"github.com/phrazzld/taskbin/internal/store"
)

// TaskService provides task-related operations over both collections.
type TaskService interface {
	// ListTasks returns active tasks in ID order.
	ListTasks(ctx context.Context) ([]domain.Task, error)

	// GetTask returns an active task. Returns a *TaskGoneError (matching ErrTaskGone) if the task was deleted
	// and store.ErrTaskNotFound if it never existed.
	GetTask(ctx context.Context, id int64) (*domain.Task, error)

	// CreateTask validates input and stores it under a newly allocated ID.
	CreateTask(ctx context.Context, input domain.Task) (*domain.Task, error)

	// ReplaceTask overwrites every editable field of an active task.
	ReplaceTask(ctx context.Context, id int64, input domain.Task) (*domain.Task, error)

	// PatchTask applies the non-nil fields of patch to an active task.
	PatchTask(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)

	// DeleteTask moves an active task to the deleted collection, stamped with the current time.
	DeleteTask(ctx context.Context, id int64) (*domain.DeletedTask, error)

	// ListDeletedTasks returns deleted tasks in ID order.
	ListDeletedTasks(ctx context.Context) ([]domain.DeletedTask, error)

	// GetDeletedTask returns one deleted task.
	GetDeletedTask(ctx context.Context, id int64) (*domain.DeletedTask, error)

	// RestoreTask moves a deleted task back to the active collection.
	RestoreTask(ctx context.Context, id int64) (*domain.Task, error)

	// PurgeTask permanently removes a deleted task.
	PurgeTask(ctx context.Context, id int64) (*domain.DeletedTask, error)
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	store  store.TaskStore
	now    func() time.Time
	logger *slog.Logger
}

// Option customizes a TaskService.
type Option func(*taskServiceImpl)

// WithClock replaces time.Now as the source of deletion timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *taskServiceImpl) {
		s.now = now
	}
}

// NewTaskService creates a new TaskService.
// It returns an error if the store is nil.
func NewTaskService(taskStore store.TaskStore, logger *slog.Logger, opts ...Option) (TaskService, error) {
	if taskStore == nil {
		return nil, domain.NewValidationError("taskStore", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &taskServiceImpl{
		store:  taskStore,
		now:    time.Now,
		logger: logger.With(slog.String("component", "task_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.store.ListActive(ctx)
	if err != nil {
		return nil, NewTaskServiceError("list", "failed to list tasks", err)
	}
	s.log(ctx).Info("active tasks loaded", slog.Int("count", len(tasks)))
	return tasks, nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}

	task, err := s.store.GetActive(ctx, id)
	if err == nil {
		return task, nil
	}
	if !errors.Is(err, store.ErrTaskNotFound) {
		return nil, NewTaskServiceError("get", "failed to get task", err)
	}

	// Tell a deleted task apart from one that never existed.
	if deleted, delErr := s.store.GetDeleted(ctx, id); delErr == nil {
		s.log(ctx).Info("requested task is in the deleted collection", slog.Int64("task_id", id))
		return nil, &TaskGoneError{ID: id, DeletedAt: deleted.DeletedAt}
	} else if !errors.Is(delErr, store.ErrDeletedTaskNotFound) {
		return nil, NewTaskServiceError("get", "failed to check deleted tasks", delErr)
	}

	s.log(ctx).Warn("task not found", slog.Int64("task_id", id))
	return nil, err
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(ctx context.Context, input domain.Task) (*domain.Task, error) {
	input.ID = 0
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, &input); err != nil {
		return nil, NewTaskServiceError("create", "failed to store task", err)
	}

	s.log(ctx).Info("task created", slog.Int64("task_id", input.ID))
	return &input, nil
}

// ReplaceTask implements TaskService.ReplaceTask
func (s *taskServiceImpl) ReplaceTask(ctx context.Context, id int64, input domain.Task) (*domain.Task, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}
	input.ID = id
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, &input); err != nil {
		return nil, s.passNotFound("replace", err)
	}

	s.log(ctx).Info("task replaced", slog.Int64("task_id", id))
	return &input, nil
}

// PatchTask implements TaskService.PatchTask
func (s *taskServiceImpl) PatchTask(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	current, err := s.store.GetActive(ctx, id)
	if err != nil {
		return nil, s.passNotFound("patch", err)
	}

	updated := patch.Apply(*current)
	if err := s.store.Update(ctx, &updated); err != nil {
		return nil, s.passNotFound("patch", err)
	}

	s.log(ctx).Info("task patched", slog.Int64("task_id", id))
	return &updated, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int64) (*domain.DeletedTask, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}

	deleted, err := s.store.SoftDelete(ctx, id, s.now())
	if err != nil {
		return nil, s.passNotFound("delete", err)
	}

	s.log(ctx).Info("task moved to deleted collection",
		slog.Int64("task_id", id),
		slog.String("deleted_at", deleted.DeletedAt))
	return deleted, nil
}

// ListDeletedTasks implements TaskService.ListDeletedTasks
func (s *taskServiceImpl) ListDeletedTasks(ctx context.Context) ([]domain.DeletedTask, error) {
	tasks, err := s.store.ListDeleted(ctx)
	if err != nil {
		return nil, NewTaskServiceError("list deleted", "failed to list deleted tasks", err)
	}
	s.log(ctx).Info("deleted tasks loaded", slog.Int("count", len(tasks)))
	return tasks, nil
}

// GetDeletedTask implements TaskService.GetDeletedTask
func (s *taskServiceImpl) GetDeletedTask(ctx context.Context, id int64) (*domain.DeletedTask, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}

	task, err := s.store.GetDeleted(ctx, id)
	if err != nil {
		return nil, s.passNotFound("get deleted", err)
	}
	return task, nil
}

// RestoreTask implements TaskService.RestoreTask
func (s *taskServiceImpl) RestoreTask(ctx context.Context, id int64) (*domain.Task, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}

	task, err := s.store.Restore(ctx, id)
	if err != nil {
		return nil, s.passNotFound("restore", err)
	}

	s.log(ctx).Info("task restored", slog.Int64("task_id", id))
	return task, nil
}

// PurgeTask implements TaskService.PurgeTask
func (s *taskServiceImpl) PurgeTask(ctx context.Context, id int64) (*domain.DeletedTask, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}

	task, err := s.store.Purge(ctx, id)
	if err != nil {
		return nil, s.passNotFound("purge", err)
	}

	s.log(ctx).Warn("task permanently removed", slog.Int64("task_id", id))
	return task, nil
}

// passNotFound returns store not-found errors unchanged and wraps anything else.
func (s *taskServiceImpl) passNotFound(op string, err error) error {
	if store.IsNotFoundError(err) {
		return err
	}
	return NewTaskServiceError(op, "store operation failed", err)
}

func (s *taskServiceImpl) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}
