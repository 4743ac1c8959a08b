// Package server wraps http.Server with environment-driven configuration,
// optional TLS, and graceful shutdown.
package server
