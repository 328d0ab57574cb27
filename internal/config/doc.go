// Package config handles configuration loading, parsing, and validation
// from environment variables, an optional config file and an optional .env
// file. It provides type-safe access to the settings needed by the tasks
// backend and the deleted-tasks web view while keeping configuration details
// separate from business logic.
package config
