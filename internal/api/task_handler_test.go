package api_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskbin/internal/api"
	"github.com/phrazzld/taskbin/internal/api/shared"
	"github.com/phrazzld/taskbin/internal/domain"
	"github.com/phrazzld/taskbin/internal/platform/memory"
	"github.com/phrazzld/taskbin/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := service.NewTaskService(memory.NewTaskStore(log), log,
		service.WithClock(func() time.Time { return time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC) }))
	require.NoError(t, err)

	r := chi.NewRouter()
	api.NewTaskHandler(svc, log).Routes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(data, &v))
	return v
}

func TestTaskLifecycle(t *testing.T) {
	srv := newTestServer(t)

	status, body := do(t, srv, http.MethodPost, "/tareas", `{"titulo":"Comprar pan","descripcion":"Integral"}`)
	require.Equal(t, http.StatusOK, status)
	created := decode[domain.Task](t, body)
	assert.Equal(t, int64(1), created.ID)
	assert.False(t, created.Completed)

	status, body = do(t, srv, http.MethodGet, "/tareas", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]domain.Task](t, body), 1)

	status, body = do(t, srv, http.MethodDelete, "/tareas/1", "")
	require.Equal(t, http.StatusOK, status)
	deletion := decode[api.DeletionResponse](t, body)
	assert.Equal(t, api.MessageTaskDeleted, deletion.Message)
	assert.Equal(t, "2024-01-01T10:00:00Z", deletion.Task.DeletedAt)

	status, body = do(t, srv, http.MethodGet, "/tareas/1", "")
	assert.Equal(t, http.StatusGone, status)
	assert.Equal(t, "La tarea con ID 1 fue eliminada el 2024-01-01", decode[shared.ErrorResponse](t, body).Error)

	status, body = do(t, srv, http.MethodGet, "/eliminadas", "")
	require.Equal(t, http.StatusOK, status)
	deleted := decode[[]domain.DeletedTask](t, body)
	require.Len(t, deleted, 1)
	assert.Equal(t, "Comprar pan", deleted[0].Title)

	status, body = do(t, srv, http.MethodGet, "/eliminadas/1", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"fecha_eliminacion":"2024-01-01T10:00:00Z"`)

	status, body = do(t, srv, http.MethodPost, "/eliminadas/1", "")
	require.Equal(t, http.StatusOK, status)
	assert.NotContains(t, string(body), "fecha_eliminacion")
	assert.Equal(t, created, decode[domain.Task](t, body))

	status, body = do(t, srv, http.MethodGet, "/eliminadas", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))
}

func TestUpdateEndpoints(t *testing.T) {
	srv := newTestServer(t)
	do(t, srv, http.MethodPost, "/tareas", `{"titulo":"a","descripcion":"b"}`)

	status, body := do(t, srv, http.MethodPut, "/tareas/1", `{"titulo":"c","descripcion":"d","completada":true}`)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"id":1,"titulo":"c","descripcion":"d","completada":true}`, string(body))

	status, body = do(t, srv, http.MethodPatch, "/tareas/1", `{"completada":false}`)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"id":1,"titulo":"c","descripcion":"d","completada":false}`, string(body))
}

func TestPurge(t *testing.T) {
	srv := newTestServer(t)
	do(t, srv, http.MethodPost, "/tareas", `{"titulo":"a","descripcion":"b"}`)

	status, _ := do(t, srv, http.MethodDelete, "/eliminadas/1", "")
	assert.Equal(t, http.StatusNotFound, status)

	do(t, srv, http.MethodDelete, "/tareas/1", "")
	status, body := do(t, srv, http.MethodDelete, "/eliminadas/1", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, api.MessageTaskPurged, decode[api.DeletionResponse](t, body).Message)

	status, _ = do(t, srv, http.MethodGet, "/eliminadas/1", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestErrorResponses(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name    string
		method  string
		path    string
		body    string
		status  int
		message string
	}{
		{"unknown task", http.MethodGet, "/tareas/9", "", http.StatusNotFound, "Tarea no encontrada"},
		{"unknown deleted task", http.MethodPost, "/eliminadas/9", "", http.StatusNotFound, "Tarea eliminada no encontrada"},
		{"zero id", http.MethodGet, "/tareas/0", "", http.StatusUnprocessableEntity, "ID de tarea inválido"},
		{"non numeric id", http.MethodPost, "/eliminadas/abc", "", http.StatusUnprocessableEntity, "ID de tarea inválido"},
		{"empty title", http.MethodPost, "/tareas", `{"titulo":"","descripcion":"x"}`, http.StatusUnprocessableEntity, "Campo inválido 'titulo': cannot be empty"},
		{"title too long", http.MethodPost, "/tareas", `{"titulo":"` + strings.Repeat("a", 101) + `","descripcion":"x"}`, http.StatusUnprocessableEntity, "Campo inválido 'titulo': must be at most 100 characters"},
		{"empty body", http.MethodPost, "/tareas", "", http.StatusUnprocessableEntity, "El cuerpo de la solicitud está vacío"},
		{"malformed body", http.MethodPost, "/tareas", `{"titulo":`, http.StatusUnprocessableEntity, "El cuerpo de la solicitud no es JSON válido"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, body := do(t, srv, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.message, decode[shared.ErrorResponse](t, body).Error)
		})
	}
}

func TestNewTaskHandler_PanicsOnNilDependencies(t *testing.T) {
	assert.Panics(t, func() { api.NewTaskHandler(nil, slog.Default()) })
}
