package handler

import "net/http"

// Response is a function that renders HTTP responses.
// It sets headers, status code, and writes the response body.
// Rendering errors are handled by the pipeline's error handler.
type Response func(w http.ResponseWriter, r *http.Request) error

// HandlerFunc handles a request through the pipeline context.
type HandlerFunc func(ctx Context) Response

// ErrorHandler handles errors during request processing.
type ErrorHandler func(ctx Context, err error)

// Middleware wraps handlers to add cross-cutting functionality.
// Filters in the request pipeline are expressed as Middleware.
type Middleware func(next HandlerFunc) HandlerFunc

// Chain builds a single handler from a middleware stack and endpoint.
// The first middleware in the slice runs first.
func Chain(middlewares []Middleware, endpoint HandlerFunc) HandlerFunc {
	h := endpoint
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
