package client_test

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/phrazzld/taskbin/internal/client"
	"github.com/phrazzld/taskbin/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, baseURL string) *client.Client {
	t.Helper()
	c, err := client.New(config.BackendConfig{BaseURL: baseURL, Timeout: 2 * time.Second}, nil)
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{name: "http", baseURL: "http://localhost:8000"},
		{name: "https with path", baseURL: "https://tasks.example.com/api"},
		{name: "missing scheme", baseURL: "localhost:8000", wantErr: true},
		{name: "missing host", baseURL: "http://", wantErr: true},
		{name: "unparseable", baseURL: "http://[::1", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := client.New(config.BackendConfig{BaseURL: tc.baseURL}, nil)
			if tc.wantErr {
				assert.Error(t, err)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.baseURL, c.BaseURL())
		})
	}
}

func TestListDeleted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/eliminadas", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":2,"titulo":"B","descripcion":"b","completada":false,"fecha_eliminacion":"2024-01-01T10:00:00"},
			{"id":7,"titulo":"C","descripcion":"c","completada":true,"fecha_eliminacion":"2024-02-03T08:30:00Z"}
		]`))
	}))
	defer srv.Close()

	tasks, err := newClient(t, srv.URL+"/api").ListDeleted(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, int64(2), tasks[0].ID)
	assert.Equal(t, "2024-01-01T10:00:00", tasks[0].DeletedAt)
	assert.Equal(t, int64(7), tasks[1].ID)
	assert.True(t, tasks[1].Completed)
}

func TestListDeleted_Errors(t *testing.T) {
	t.Run("non-2xx", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := newClient(t, srv.URL).ListDeleted(context.Background())
		var fetchErr *client.FetchError
		require.True(t, errors.As(err, &fetchErr))
		assert.Equal(t, http.StatusServiceUnavailable, fetchErr.StatusCode)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		}))
		defer srv.Close()

		_, err := newClient(t, srv.URL).ListDeleted(context.Background())
		var decodeErr *client.DecodeError
		assert.True(t, errors.As(err, &decodeErr))
	})

	t.Run("unreachable", func(t *testing.T) {
		_, err := newClient(t, unreachableURL(t)).ListDeleted(context.Background())
		var netErr *client.NetworkError
		require.True(t, errors.As(err, &netErr))
		assert.Equal(t, "fetch deleted tasks", netErr.Op)
		assert.NotNil(t, errors.Unwrap(err))
	})
}

func TestRestore(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		switch r.URL.Path {
		case "/eliminadas/3":
			_, _ = w.Write([]byte(`{"id":3,"titulo":"Comprar pan","descripcion":"x","completada":false}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Tarea eliminada no encontrada"}`))
		}
	}))
	defer srv.Close()
	c := newClient(t, srv.URL)

	task, err := c.Restore(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Comprar pan", task.Title)

	_, err = c.Restore(context.Background(), 4)
	var restoreErr *client.RestoreError
	require.True(t, errors.As(err, &restoreErr))
	assert.Equal(t, int64(4), restoreErr.ID)
	assert.Equal(t, http.StatusNotFound, restoreErr.StatusCode)

	assert.Equal(t, int32(2), calls.Load())
}

func TestRestore_Unreachable(t *testing.T) {
	_, err := newClient(t, unreachableURL(t)).Restore(context.Background(), 1)
	var netErr *client.NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, "restore task 1", netErr.Op)
}

func TestRestore_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the server")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newClient(t, srv.URL).Restore(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

// unreachableURL returns the address of a listener that has already been closed.
func unreachableURL(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return "http://" + addr
}
