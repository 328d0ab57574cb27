// Package postgres provides the PostgreSQL implementation of store.TaskStore.
// It owns the schema migrations (embedded and applied with goose), maps
// driver errors onto the store error taxonomy, and keeps the active and
// deleted collections in one table distinguished by deleted_at.
package postgres
