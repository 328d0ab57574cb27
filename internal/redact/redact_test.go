package redact_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/taskbin/internal/redact"
	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "no sensitive data",
			input:    "failed to update task: entity not found: task",
			expected: "failed to update task: entity not found: task",
		},
		{
			name:     "database URL credentials",
			input:    "failed to connect to postgres://app:s3cret@db:5432/tasks",
			expected: "failed to connect to postgres://[REDACTED_CREDENTIAL]@db:5432/tasks",
		},
		{
			name:     "key value password",
			input:    "cannot parse host=db password=hunter2 dbname=tasks",
			expected: "cannot parse host=db password=[REDACTED_CREDENTIAL] dbname=tasks",
		},
		{
			name:     "SQL statement",
			input:    "query failed: SELECT id, title FROM tasks WHERE id = $1",
			expected: "query failed: [REDACTED_SQL]",
		},
		{
			name:     "SQL statement stops at semicolon",
			input:    "exec UPDATE tasks SET title = 'x'; retry later",
			expected: "exec [REDACTED_SQL]; retry later",
		},
		{
			name:     "filesystem path",
			input:    "open /etc/taskbin/config.yaml: permission denied",
			expected: "open [REDACTED_PATH]: permission denied",
		},
		{
			name:     "URL path is kept",
			input:    `Get "http://localhost:8000/eliminadas": connection refused`,
			expected: `Get "http://localhost:8000/eliminadas": connection refused`,
		},
		{
			name:     "stack trace",
			input:    "recovered: panic: runtime error\ngoroutine 1 [running]:\nmain.main()",
			expected: "recovered: [STACK_TRACE_REDACTED]",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, redact.String(tc.input))
		})
	}
}

func TestError(t *testing.T) {
	assert.Equal(t, "", redact.Error(nil))

	err := fmt.Errorf("store: %w", errors.New("dial postgres://u:p@db/tasks"))
	assert.Equal(t, "store: dial postgres://[REDACTED_CREDENTIAL]@db/tasks", redact.Error(err))
}
