// Package logging provides structured logging with context propagation for
// flow execution. It wraps the standard library's log/slog package rather
// than hand-rolling a text formatter.
package logging
