package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/phrazzld/taskbin/internal/config"
	"github.com/phrazzld/taskbin/internal/domain"
	"github.com/phrazzld/taskbin/internal/platform/logger"
)

const deletedPath = "eliminadas"

// Client calls the tasks backend. It is safe for concurrent use and never
// changes after New returns.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *slog.Logger
}

// New parses the backend base URL once and builds a pooled HTTP client.
// A zero timeout keeps the transport without a client-level deadline.
func New(cfg config.BackendConfig, logger *slog.Logger) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid backend base URL %q: scheme must be http or https", cfg.BaseURL)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("invalid backend base URL %q: missing host", cfg.BaseURL)
	}
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := cleanhttp.DefaultPooledClient()
	if cfg.Timeout > 0 {
		httpClient.Timeout = cfg.Timeout
	}

	return &Client{
		baseURL: base,
		http:    httpClient,
		logger:  logger.With(slog.String("component", "backend_client")),
	}, nil
}

// BaseURL returns the backend base URL the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// ListDeleted fetches every task in the deleted collection, in backend order.
func (c *Client) ListDeleted(ctx context.Context) ([]domain.DeletedTask, error) {
	const op = "fetch deleted tasks"

	resp, err := c.do(ctx, http.MethodGet, op, deletedPath)
	if err != nil {
		return nil, err
	}
	defer drain(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log(ctx).Warn("backend rejected deleted tasks listing", slog.Int("status_code", resp.StatusCode))
		return nil, &FetchError{StatusCode: resp.StatusCode}
	}

	var tasks []domain.DeletedTask
	if err := json.NewDecoder(resp.Body).Decode(&tasks); err != nil {
		return nil, &DecodeError{Op: op, Err: err}
	}

	c.log(ctx).Debug("deleted tasks fetched", slog.Int("count", len(tasks)))
	return tasks, nil
}

// Restore asks the backend to move task id back to the active collection and
// returns the restored task.
func (c *Client) Restore(ctx context.Context, id int64) (*domain.Task, error) {
	op := fmt.Sprintf("restore task %d", id)

	resp, err := c.do(ctx, http.MethodPost, op, deletedPath, strconv.FormatInt(id, 10))
	if err != nil {
		return nil, err
	}
	defer drain(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log(ctx).Warn("backend rejected restore",
			slog.Int64("task_id", id),
			slog.Int("status_code", resp.StatusCode))
		return nil, &RestoreError{ID: id, StatusCode: resp.StatusCode}
	}

	var task domain.Task
	if err := json.NewDecoder(resp.Body).Decode(&task); err != nil {
		return nil, &DecodeError{Op: op, Err: err}
	}

	c.log(ctx).Info("task restored", slog.Int64("task_id", task.ID))
	return &task, nil
}

// do sends a request to the base URL joined with elem. Transport failures
// come back as *NetworkError.
func (c *Client) do(ctx context.Context, method, op string, elem ...string) (*http.Response, error) {
	target := c.baseURL.JoinPath(elem...)

	req, err := http.NewRequestWithContext(ctx, method, target.String(), nil)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log(ctx).Warn("backend unreachable",
			slog.String("op", op),
			slog.String("url", target.String()),
			slog.String("error", err.Error()))
		return nil, &NetworkError{Op: op, Err: err}
	}
	return resp, nil
}

func (c *Client) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, c.logger)
}

// drain discards the rest of the body so the connection can be reused.
func drain(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
