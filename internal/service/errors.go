package service

import (
	"errors"
	"fmt"
)

// Common service errors. The API layer maps them to HTTP status codes.
var (
	// ErrTaskGone indicates the requested active task exists only in the deleted
	// collection. API layer should map this to HTTP 410 Gone.
	ErrTaskGone = errors.New("task has been deleted")
)

// TaskGoneError reports that an active-task lookup hit a deleted task.
// It matches ErrTaskGone with errors.Is.
type TaskGoneError struct {
	ID        int64
	DeletedAt string
}

func (e *TaskGoneError) Error() string {
	return fmt.Sprintf("task %d has been deleted at %s", e.ID, e.DeletedAt)
}

// Unwrap returns ErrTaskGone.
func (e *TaskGoneError) Unwrap() error {
	return ErrTaskGone
}

// DeletedOn returns the date part of DeletedAt.
func (e *TaskGoneError) DeletedOn() string {
	if len(e.DeletedAt) < 10 {
		return e.DeletedAt
	}
	return e.DeletedAt[:10]
}

// TaskServiceError is a custom error type for unexpected task service failures.
type TaskServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a new TaskServiceError.
func NewTaskServiceError(operation, message string, err error) *TaskServiceError {
	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
