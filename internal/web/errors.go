package web

import (
	"errors"

	"github.com/phrazzld/taskbin/internal/client"
)

// errorType names the failure class of a view error for logs.
func errorType(err error) string {
	var (
		fetchErr   *client.FetchError
		restoreErr *client.RestoreError
		netErr     *client.NetworkError
		decodeErr  *client.DecodeError
	)
	switch {
	case errors.As(err, &fetchErr):
		return "fetch"
	case errors.As(err, &restoreErr):
		return "restore"
	case errors.As(err, &netErr):
		return "network"
	case errors.As(err, &decodeErr):
		return "decode"
	default:
		return "internal"
	}
}
