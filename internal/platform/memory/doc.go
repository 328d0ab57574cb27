// Package memory provides an in-process implementation of store.TaskStore.
// It is used by tests and when the backend runs without a database URL.
package memory
