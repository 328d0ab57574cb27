package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/taskbin/internal/domain"
	"github.com/phrazzld/taskbin/internal/platform/logger"
	"github.com/phrazzld/taskbin/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// The connection is initialized and closed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db *sql.DB, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

const taskColumns = "id, title, description, completed"

// ListActive implements store.TaskStore.ListActive
func (s *PostgresTaskStore) ListActive(ctx context.Context) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE deleted_at IS NULL
		ORDER BY id
	`)
	if err != nil {
		log.Error("failed to list active tasks", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "list", "query failed", MapError(err, nil))
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Completed); err != nil {
			return nil, store.NewStoreError("task", "list", "scan failed", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("task", "list", "iteration failed", err)
	}

	log.Debug("active tasks listed", slog.Int("count", len(tasks)))
	return tasks, nil
}

// GetActive implements store.TaskStore.GetActive
// Returns store.ErrTaskNotFound if no active task has the ID.
func (s *PostgresTaskStore) GetActive(ctx context.Context, id int64) (*domain.Task, error) {
	var t domain.Task
	err := s.db.QueryRowContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = $1 AND deleted_at IS NULL
	`, id).Scan(&t.ID, &t.Title, &t.Description, &t.Completed)
	if err != nil {
		return nil, s.wrap("get", id, err, store.ErrTaskNotFound)
	}
	return &t, nil
}

// Create implements store.TaskStore.Create
// The table is locked for the duration of the allocation so two concurrent
// creates cannot compute the same next ID.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `LOCK TABLE tasks IN SHARE ROW EXCLUSIVE MODE`); err != nil {
			return fmt.Errorf("lock tasks: %w", err)
		}

		var nextID int64
		if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) + 1 FROM tasks`).Scan(&nextID); err != nil {
			return fmt.Errorf("allocate id: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO tasks (id, title, description, completed)
			VALUES ($1, $2, $3, $4)
		`, nextID, task.Title, task.Description, task.Completed); err != nil {
			return MapError(err, nil)
		}

		task.ID = nextID
		return nil
	})
	if err != nil {
		log.Error("failed to create task", slog.String("error", err.Error()))
		return store.NewStoreError("task", "create", "insert failed", err)
	}

	log.Info("task created", slog.Int64("task_id", task.ID))
	return nil
}

// Update implements store.TaskStore.Update
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = $2, description = $3, completed = $4
		WHERE id = $1 AND deleted_at IS NULL
	`, task.ID, task.Title, task.Description, task.Completed)
	if err != nil {
		return s.wrap("update", task.ID, err, store.ErrTaskNotFound)
	}
	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

// SoftDelete implements store.TaskStore.SoftDelete
func (s *PostgresTaskStore) SoftDelete(
	ctx context.Context,
	id int64,
	deletedAt time.Time,
) (*domain.DeletedTask, error) {
	var t domain.Task
	var at time.Time
	err := s.db.QueryRowContext(ctx, `
		UPDATE tasks
		SET deleted_at = $2
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING `+taskColumns+`, deleted_at
	`, id, deletedAt.UTC()).Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &at)
	if err != nil {
		return nil, s.wrap("soft delete", id, err, store.ErrTaskNotFound)
	}

	deleted := domain.NewDeletedTask(t, at)
	return &deleted, nil
}

// ListDeleted implements store.TaskStore.ListDeleted
func (s *PostgresTaskStore) ListDeleted(ctx context.Context) ([]domain.DeletedTask, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+taskColumns+`, deleted_at
		FROM tasks
		WHERE deleted_at IS NOT NULL
		ORDER BY id
	`)
	if err != nil {
		return nil, store.NewStoreError("deleted task", "list", "query failed", MapError(err, nil))
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]domain.DeletedTask, 0)
	for rows.Next() {
		var t domain.Task
		var at time.Time
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &at); err != nil {
			return nil, store.NewStoreError("deleted task", "list", "scan failed", err)
		}
		tasks = append(tasks, domain.NewDeletedTask(t, at))
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("deleted task", "list", "iteration failed", err)
	}
	return tasks, nil
}

// GetDeleted implements store.TaskStore.GetDeleted
func (s *PostgresTaskStore) GetDeleted(ctx context.Context, id int64) (*domain.DeletedTask, error) {
	var t domain.Task
	var at time.Time
	err := s.db.QueryRowContext(ctx, `
		SELECT `+taskColumns+`, deleted_at
		FROM tasks
		WHERE id = $1 AND deleted_at IS NOT NULL
	`, id).Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &at)
	if err != nil {
		return nil, s.wrap("get", id, err, store.ErrDeletedTaskNotFound)
	}

	deleted := domain.NewDeletedTask(t, at)
	return &deleted, nil
}

// Restore implements store.TaskStore.Restore
func (s *PostgresTaskStore) Restore(ctx context.Context, id int64) (*domain.Task, error) {
	var t domain.Task
	err := s.db.QueryRowContext(ctx, `
		UPDATE tasks
		SET deleted_at = NULL
		WHERE id = $1 AND deleted_at IS NOT NULL
		RETURNING `+taskColumns+`
	`, id).Scan(&t.ID, &t.Title, &t.Description, &t.Completed)
	if err != nil {
		return nil, s.wrap("restore", id, err, store.ErrDeletedTaskNotFound)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task restored", slog.Int64("task_id", id))
	return &t, nil
}

// Purge implements store.TaskStore.Purge
func (s *PostgresTaskStore) Purge(ctx context.Context, id int64) (*domain.DeletedTask, error) {
	var t domain.Task
	var at time.Time
	err := s.db.QueryRowContext(ctx, `
		DELETE FROM tasks
		WHERE id = $1 AND deleted_at IS NOT NULL
		RETURNING `+taskColumns+`, deleted_at
	`, id).Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &at)
	if err != nil {
		return nil, s.wrap("purge", id, err, store.ErrDeletedTaskNotFound)
	}

	deleted := domain.NewDeletedTask(t, at)
	return &deleted, nil
}

// wrap maps err and logs it. Not-found results are returned bare so
// errors.Is against the collection sentinel works at every layer.
func (s *PostgresTaskStore) wrap(op string, id int64, err error, notFound error) error {
	mapped := MapError(err, notFound)
	if errors.Is(mapped, store.ErrNotFound) {
		s.logger.Debug("task not found",
			slog.String("operation", op),
			slog.Int64("task_id", id))
		return mapped
	}

	s.logger.Error("task store operation failed",
		slog.String("operation", op),
		slog.Int64("task_id", id),
		slog.String("error", err.Error()))
	return store.NewStoreError("task", op, "query failed", mapped)
}
