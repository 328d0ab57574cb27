package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskbin/internal/api/shared"
	"github.com/phrazzld/taskbin/internal/domain"
	"github.com/phrazzld/taskbin/internal/platform/logger"
)

var errMalformedBody = errors.New("malformed request body")

// getPathID extracts a positive task ID from the URL path parameter paramName.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrInvalidID)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil {
		return 0, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}
	if err := domain.ValidateID(id); err != nil {
		return 0, err
	}
	return id, nil
}

// handlePathID extracts the task ID and writes an error response if it is
// missing or invalid. The bool result reports whether the handler may proceed.
func handlePathID(w http.ResponseWriter, r *http.Request, log *slog.Logger) (int64, bool) {
	if log == nil {
		log = logger.FromContext(r.Context())
	}

	id, err := getPathID(r, "id")
	if err != nil {
		log.Warn("invalid task id", slog.String("value", chi.URLParam(r, "id")))
		HandleAPIError(w, r, err, "")
		return 0, false
	}
	return id, true
}

// decodeBody decodes the JSON request body into v, writing a 422 response on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		if !errors.Is(err, shared.ErrEmptyBody) {
			err = fmt.Errorf("%w: %v", errMalformedBody, err)
		}
		HandleAPIError(w, r, err, "")
		return false
	}
	return true
}
