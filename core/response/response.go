package response

import (
	"fmt"
	"net/http"

	"github.com/tuicr/scaffold/core/handler"
)

// Error returns a handler response that propagates the given error.
// The error is handled by the pipeline's error handler.
func Error(err error) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		return err
	}
}

// String writes a plain-text response with the given status code.
func String(status int, format string, args ...any) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		_, err := fmt.Fprintf(w, format, args...)
		return err
	}
}

// HTML writes an HTML response with the given status code.
func HTML(status int, body string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, err := w.Write([]byte(body))
		return err
	}
}

// Status writes a bare status code with the default status text as body.
func Status(status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		http.Error(w, http.StatusText(status), status)
		return nil
	}
}
