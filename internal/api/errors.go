package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/phrazzld/taskbin/internal/api/shared"
	"github.com/phrazzld/taskbin/internal/domain"
	"github.com/phrazzld/taskbin/internal/service"
	"github.com/phrazzld/taskbin/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, service.ErrTaskGone):
		return http.StatusGone

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Payload and path parameter problems.
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, shared.ErrEmptyBody),
		errors.Is(err, errMalformedBody),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusUnprocessableEntity

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "Error interno del servidor"
	}

	var vErr *domain.ValidationError
	var goneErr *service.TaskGoneError
	switch {
	case errors.As(err, &goneErr):
		return fmt.Sprintf("La tarea con ID %d fue eliminada el %s", goneErr.ID, goneErr.DeletedOn())
	case errors.Is(err, service.ErrTaskGone):
		return "La tarea fue eliminada"
	case errors.Is(err, store.ErrDeletedTaskNotFound):
		return "Tarea eliminada no encontrada"
	case errors.Is(err, store.ErrTaskNotFound):
		return "Tarea no encontrada"
	case errors.Is(err, store.ErrDuplicate):
		return "La tarea ya existe"
	case errors.Is(err, domain.ErrInvalidID):
		return "ID de tarea inválido"
	case errors.As(err, &vErr):
		return SanitizeValidationError(vErr)
	case errors.Is(err, shared.ErrEmptyBody):
		return "El cuerpo de la solicitud está vacío"
	case errors.Is(err, errMalformedBody):
		return "El cuerpo de la solicitud no es JSON válido"
	case errors.Is(err, store.ErrInvalidEntity), errors.Is(err, domain.ErrValidation):
		return "Datos de la tarea inválidos"
	default:
		return "Error interno del servidor"
	}
}

// SanitizeValidationError renders a ValidationError as a client-facing message.
func SanitizeValidationError(err *domain.ValidationError) string {
	return fmt.Sprintf("Campo inválido '%s': %s", err.Field, err.Message)
}

// HandleAPIError writes the status and safe message for err. A non-empty
// message overrides the safe message for 5xx responses.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	safeMessage := GetSafeErrorMessage(err)
	if message != "" && status >= http.StatusInternalServerError {
		safeMessage = message
	}

	var opts []shared.ResponseOption
	if status == http.StatusGone {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, safeMessage, err, opts...)
}
