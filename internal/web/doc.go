// Package web serves the deleted tasks page. Every response renders the
// caller's Screen after the requested view operation has run.
package web
