package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Field length limits enforced on titles and descriptions.
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
)

// DeletedAtLayout is the wire format the backend writes into fecha_eliminacion.
const DeletedAtLayout = time.RFC3339

var validate = validator.New()

// Task is a to-do item. IDs are assigned by the backend and never change.
type Task struct {
	ID          int64  `json:"id"`
	Title       string `json:"titulo" validate:"required,max=100"`
	Description string `json:"descripcion" validate:"required,max=500"`
	Completed   bool   `json:"completada"`
}

// DeletedTask is a Task in the soft-deleted collection. DeletedAt keeps the
// timestamp exactly as the backend sent it; consumers parse it best-effort.
type DeletedTask struct {
	Task
	DeletedAt string `json:"fecha_eliminacion"`
}

// TaskPatch carries a partial update. Nil fields are left unchanged.
type TaskPatch struct {
	Title       *string `json:"titulo,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"descripcion,omitempty" validate:"omitempty,min=1,max=500"`
	Completed   *bool   `json:"completada,omitempty"`
}

// NewDeletedTask stamps t with the deletion time at.
func NewDeletedTask(t Task, at time.Time) DeletedTask {
	return DeletedTask{Task: t, DeletedAt: at.UTC().Format(DeletedAtLayout)}
}

// Validate checks title and description. The ID is not checked because new
// tasks have none until the store assigns it.
func (t *Task) Validate() error {
	return translateValidation(validate.Struct(t))
}

// Validate checks the fields present in the patch.
func (p *TaskPatch) Validate() error {
	return translateValidation(validate.Struct(p))
}

// Apply returns a copy of t with the patch's non-nil fields applied.
func (p *TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	return t
}

// ValidateID rejects non-positive task IDs.
func ValidateID(id int64) error {
	if id < 1 {
		return NewValidationError("id", "must be greater than or equal to 1", ErrInvalidID)
	}
	return nil
}

// translateValidation turns the first validator failure into a ValidationError.
func translateValidation(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	fe := fieldErrs[0]
	field := jsonFieldNames[fe.Field()]
	if field == "" {
		field = fe.Field()
	}

	switch fe.Tag() {
	case "required", "min":
		return NewValidationError(field, "cannot be empty", ErrValidation)
	case "max":
		return NewValidationError(field, fmt.Sprintf("must be at most %s characters", fe.Param()), ErrValidation)
	default:
		return NewValidationError(field, "is invalid", ErrValidation)
	}
}

var jsonFieldNames = map[string]string{
	"Title":       "titulo",
	"Description": "descripcion",
}
