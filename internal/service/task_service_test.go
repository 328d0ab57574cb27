package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/phrazzld/taskbin/internal/domain"
	"github.com/phrazzld/taskbin/internal/platform/memory"
	"github.com/phrazzld/taskbin/internal/service"
	"github.com/phrazzld/taskbin/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

func newService(t *testing.T) service.TaskService {
	t.Helper()
	svc, err := service.NewTaskService(memory.NewTaskStore(nil), nil,
		service.WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	return svc
}

func create(t *testing.T, svc service.TaskService, title string) *domain.Task {
	t.Helper()
	task, err := svc.CreateTask(context.Background(), domain.Task{Title: title, Description: "desc"})
	require.NoError(t, err)
	return task
}

func TestNewTaskService_NilStore(t *testing.T) {
	svc, err := service.NewTaskService(nil, nil)
	assert.Nil(t, svc)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateTask(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	t.Run("assigns sequential ids and ignores client id", func(t *testing.T) {
		first, err := svc.CreateTask(ctx, domain.Task{ID: 99, Title: "a", Description: "b"})
		require.NoError(t, err)
		second := create(t, svc, "c")

		assert.Equal(t, int64(1), first.ID)
		assert.Equal(t, int64(2), second.ID)
	})

	t.Run("rejects invalid payloads", func(t *testing.T) {
		_, err := svc.CreateTask(ctx, domain.Task{Title: "", Description: "x"})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrValidation)

		var vErr *domain.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "titulo", vErr.Field)
	})
}

func TestCreateTask_IDsSkipDeleted(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	create(t, svc, "one")
	two := create(t, svc, "two")
	_, err := svc.DeleteTask(ctx, two.ID)
	require.NoError(t, err)

	three := create(t, svc, "three")
	assert.Equal(t, int64(3), three.ID)
}

func TestGetTask(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	task := create(t, svc, "one")

	got, err := svc.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, *task, *got)

	_, err = svc.GetTask(ctx, 42)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	_, err = svc.GetTask(ctx, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.DeleteTask(ctx, task.ID)
	require.NoError(t, err)
	_, err = svc.GetTask(ctx, task.ID)
	assert.ErrorIs(t, err, service.ErrTaskGone)

	var gone *service.TaskGoneError
	require.ErrorAs(t, err, &gone)
	assert.Equal(t, task.ID, gone.ID)
	assert.Equal(t, "2024-01-01T10:00:00Z", gone.DeletedAt)
	assert.Equal(t, "2024-01-01", gone.DeletedOn())
}

func TestReplaceAndPatchTask(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	task := create(t, svc, "one")

	replaced, err := svc.ReplaceTask(ctx, task.ID, domain.Task{Title: "new", Description: "new desc", Completed: true})
	require.NoError(t, err)
	assert.Equal(t, task.ID, replaced.ID)
	assert.True(t, replaced.Completed)

	title := "patched"
	patched, err := svc.PatchTask(ctx, task.ID, domain.TaskPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "patched", patched.Title)
	assert.Equal(t, "new desc", patched.Description)
	assert.True(t, patched.Completed)

	empty := ""
	_, err = svc.PatchTask(ctx, task.ID, domain.TaskPatch{Description: &empty})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.PatchTask(ctx, 77, domain.TaskPatch{Title: &title})
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	_, err = svc.ReplaceTask(ctx, 77, domain.Task{Title: "x", Description: "y"})
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestDeleteRestorePurge(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	task := create(t, svc, "one")

	deleted, err := svc.DeleteTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01T10:00:00Z", deleted.DeletedAt)

	active, err := svc.ListTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	trash, err := svc.ListDeletedTasks(ctx)
	require.NoError(t, err)
	require.Len(t, trash, 1)
	assert.Equal(t, task.ID, trash[0].ID)

	got, err := svc.GetDeletedTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, deleted.DeletedAt, got.DeletedAt)

	restored, err := svc.RestoreTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, *task, *restored)

	_, err = svc.RestoreTask(ctx, task.ID)
	assert.ErrorIs(t, err, store.ErrDeletedTaskNotFound)

	_, err = svc.DeleteTask(ctx, task.ID)
	require.NoError(t, err)
	purged, err := svc.PurgeTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, purged.ID)

	_, err = svc.GetDeletedTask(ctx, task.ID)
	assert.ErrorIs(t, err, store.ErrDeletedTaskNotFound)
	_, err = svc.GetTask(ctx, task.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestDeleteTask_NotFound(t *testing.T) {
	svc := newService(t)

	_, err := svc.DeleteTask(context.Background(), 5)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	_, err = svc.PurgeTask(context.Background(), -1)
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestTaskServiceError(t *testing.T) {
	inner := errors.New("boom")
	err := service.NewTaskServiceError("list", "failed", inner)
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "task service list failed: failed: boom", err.Error())
	assert.Equal(t, "task service list failed: failed", service.NewTaskServiceError("list", "failed", nil).Error())
}
