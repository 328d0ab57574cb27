package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/phrazzld/taskbin/internal/domain"
	"github.com/phrazzld/taskbin/internal/store"
)

type record struct {
	task      domain.Task
	deletedAt *time.Time
}

// TaskStore implements store.TaskStore with a mutex-guarded map.
type TaskStore struct {
	mu      sync.RWMutex
	records map[int64]*record
	logger  *slog.Logger
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates an empty store. If logger is nil, a default logger will be used.
func NewTaskStore(logger *slog.Logger) *TaskStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{
		records: make(map[int64]*record),
		logger:  logger.With(slog.String("component", "memory_task_store")),
	}
}

// ListActive implements store.TaskStore.ListActive.
func (s *TaskStore) ListActive(ctx context.Context) ([]domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]domain.Task, 0, len(s.records))
	for _, id := range s.sortedIDs() {
		if r := s.records[id]; r.deletedAt == nil {
			tasks = append(tasks, r.task)
		}
	}
	return tasks, nil
}

// GetActive implements store.TaskStore.GetActive.
func (s *TaskStore) GetActive(ctx context.Context, id int64) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[id]
	if !ok || r.deletedAt != nil {
		return nil, store.ErrTaskNotFound
	}
	task := r.task
	return &task, nil
}

// Create implements store.TaskStore.Create.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var maxID int64
	for id := range s.records {
		if id > maxID {
			maxID = id
		}
	}
	task.ID = maxID + 1
	s.records[task.ID] = &record{task: *task}

	s.logger.Debug("task created", slog.Int64("task_id", task.ID))
	return nil
}

// Update implements store.TaskStore.Update.
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[task.ID]
	if !ok || r.deletedAt != nil {
		return store.ErrTaskNotFound
	}
	r.task = *task
	return nil
}

// SoftDelete implements store.TaskStore.SoftDelete.
func (s *TaskStore) SoftDelete(ctx context.Context, id int64, deletedAt time.Time) (*domain.DeletedTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[id]
	if !ok || r.deletedAt != nil {
		return nil, store.ErrTaskNotFound
	}
	at := deletedAt.UTC()
	r.deletedAt = &at

	deleted := domain.NewDeletedTask(r.task, at)
	return &deleted, nil
}

// ListDeleted implements store.TaskStore.ListDeleted.
func (s *TaskStore) ListDeleted(ctx context.Context) ([]domain.DeletedTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]domain.DeletedTask, 0)
	for _, id := range s.sortedIDs() {
		if r := s.records[id]; r.deletedAt != nil {
			tasks = append(tasks, domain.NewDeletedTask(r.task, *r.deletedAt))
		}
	}
	return tasks, nil
}

// GetDeleted implements store.TaskStore.GetDeleted.
func (s *TaskStore) GetDeleted(ctx context.Context, id int64) (*domain.DeletedTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[id]
	if !ok || r.deletedAt == nil {
		return nil, store.ErrDeletedTaskNotFound
	}
	deleted := domain.NewDeletedTask(r.task, *r.deletedAt)
	return &deleted, nil
}

// Restore implements store.TaskStore.Restore.
func (s *TaskStore) Restore(ctx context.Context, id int64) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[id]
	if !ok || r.deletedAt == nil {
		return nil, store.ErrDeletedTaskNotFound
	}
	r.deletedAt = nil
	task := r.task
	return &task, nil
}

// Purge implements store.TaskStore.Purge.
func (s *TaskStore) Purge(ctx context.Context, id int64) (*domain.DeletedTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[id]
	if !ok || r.deletedAt == nil {
		return nil, store.ErrDeletedTaskNotFound
	}
	delete(s.records, id)
	deleted := domain.NewDeletedTask(r.task, *r.deletedAt)
	return &deleted, nil
}

// sortedIDs must be called with s.mu held.
func (s *TaskStore) sortedIDs() []int64 {
	ids := make([]int64, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
