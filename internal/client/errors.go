package client

import "fmt"

// FetchError reports a non-2xx response to the deleted tasks listing.
type FetchError struct {
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch deleted tasks: unexpected status %d", e.StatusCode)
}

// RestoreError reports a non-2xx response to a restore request.
type RestoreError struct {
	ID         int64
	StatusCode int
}

func (e *RestoreError) Error() string {
	return fmt.Sprintf("restore task %d: unexpected status %d", e.ID, e.StatusCode)
}

// NetworkError reports a request that never produced an HTTP response.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DecodeError reports a 2xx response whose body is not the expected JSON.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decode response: %v", e.Op, e.Err)
}

// Unwrap returns the JSON decoding error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}
