// Package service implements the tasks backend's application rules: payload
// validation, the deletion timestamp, and the distinction between a task that
// never existed and one that now lives in the deleted collection.
package service
