// Package api exposes the tasks backend over HTTP. Handlers translate JSON
// requests into TaskService calls and map service errors to status codes and
// Spanish client-facing messages.
package api
