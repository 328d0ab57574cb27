// Package testutils provides helpers shared by tests across packages: a
// capturing slog handler, task fixtures and a tasks backend served over
// httptest with request counters.
package testutils
