// Package logger constructs the application slog logger and provides
// typed attribute helpers for consistent structured log keys across the
// pipeline.
package logger
