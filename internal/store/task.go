package store

import (
	"context"
	"time"

	"github.com/phrazzld/taskbin/internal/domain"
)

// TaskStore persists tasks in two collections: active and deleted.
// A task ID belongs to at most one collection at a time, and IDs are never
// reused while a task with that ID exists in either collection.
// Listing methods return tasks in ascending ID order.
type TaskStore interface {
	// ListActive returns every active task.
	ListActive(ctx context.Context) ([]domain.Task, error)

	// GetActive retrieves an active task.
	// Returns ErrTaskNotFound if no active task has the ID.
	GetActive(ctx context.Context, id int64) (*domain.Task, error)

	// Create assigns task.ID = max(ID over both collections) + 1 and saves the
	// task as active. The allocation and the insert are atomic.
	Create(ctx context.Context, task *domain.Task) error

	// Update overwrites title, description and completion of an active task.
	// Returns ErrTaskNotFound if no active task has the ID.
	Update(ctx context.Context, task *domain.Task) error

	// SoftDelete moves an active task to the deleted collection, stamped with deletedAt.
	// Returns ErrTaskNotFound if no active task has the ID.
	SoftDelete(ctx context.Context, id int64, deletedAt time.Time) (*domain.DeletedTask, error)

	// ListDeleted returns every deleted task.
	ListDeleted(ctx context.Context) ([]domain.DeletedTask, error)

	// GetDeleted retrieves a deleted task.
	// Returns ErrDeletedTaskNotFound if no deleted task has the ID.
	GetDeleted(ctx context.Context, id int64) (*domain.DeletedTask, error)

	// Restore moves a deleted task back to the active collection, dropping its
	// deletion timestamp. Returns ErrDeletedTaskNotFound if no deleted task has the ID.
	Restore(ctx context.Context, id int64) (*domain.Task, error)

	// Purge permanently removes a deleted task.
	// Returns ErrDeletedTaskNotFound if no deleted task has the ID.
	Purge(ctx context.Context, id int64) (*domain.DeletedTask, error)
}
