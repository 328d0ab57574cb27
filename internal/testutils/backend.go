package testutils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskbin/internal/api"
	"github.com/phrazzld/taskbin/internal/domain"
	"github.com/phrazzld/taskbin/internal/platform/memory"
	"github.com/phrazzld/taskbin/internal/service"
	"github.com/stretchr/testify/require"
)

// TaskBackend is the tasks API over a memory store, served by httptest.
// It counts GET and POST requests and can be switched to fail every request.
type TaskBackend struct {
	URL     string
	Service service.TaskService

	gets    atomic.Int32
	posts   atomic.Int32
	failing atomic.Bool
}

// NewTaskBackend starts a backend that is closed when the test ends.
func NewTaskBackend(t *testing.T) *TaskBackend {
	t.Helper()
	log := DiscardLogger()

	svc, err := service.NewTaskService(memory.NewTaskStore(log), log)
	require.NoError(t, err)

	b := &TaskBackend{Service: svc}
	r := chi.NewRouter()
	r.Use(b.count)
	api.NewTaskHandler(svc, log).Routes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	b.URL = srv.URL
	return b
}

// SeedDeleted creates one task per title, moves each to the deleted
// collection and resets the request counters.
func (b *TaskBackend) SeedDeleted(t *testing.T, titles ...string) {
	t.Helper()
	ctx := context.Background()
	for _, title := range titles {
		task, err := b.Service.CreateTask(ctx, domain.Task{Title: title, Description: "desc " + title})
		require.NoError(t, err)
		_, err = b.Service.DeleteTask(ctx, task.ID)
		require.NoError(t, err)
	}
	b.ResetCounts()
}

// SetFailing makes every request answer 500 without reaching the API.
func (b *TaskBackend) SetFailing(failing bool) {
	b.failing.Store(failing)
}

// Gets returns how many GET requests reached the API.
func (b *TaskBackend) Gets() int32 { return b.gets.Load() }

// Posts returns how many POST requests reached the API.
func (b *TaskBackend) Posts() int32 { return b.posts.Load() }

// ResetCounts zeroes the request counters.
func (b *TaskBackend) ResetCounts() {
	b.gets.Store(0)
	b.posts.Store(0)
}

func (b *TaskBackend) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if b.failing.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		switch r.Method {
		case http.MethodGet:
			b.gets.Add(1)
		case http.MethodPost:
			b.posts.Add(1)
		}
		next.ServeHTTP(w, r)
	})
}
