// Package testdb provides PostgreSQL helpers for integration tests. Tests that
// use it are skipped unless DATABASE_URL or TASKBIN_TEST_DB_URL is set.
package testdb
