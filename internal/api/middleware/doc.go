// Package middleware holds the HTTP middleware shared by the tasks API router.
package middleware
