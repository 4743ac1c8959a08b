package handler

import (
	"context"
	"net/http"
	"time"
)

// Context defines the contract for request contexts in the pipeline.
// It carries the request and response writer and allows filters to attach
// request-scoped values (such as the current session) for later filters.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	SetValue(key, val any)
}

// requestContext is the default Context implementation that delegates to
// the request's context.
type requestContext struct {
	w http.ResponseWriter
	r *http.Request
}

// NewContext creates a Context for the given response writer and request.
func NewContext(w http.ResponseWriter, r *http.Request) Context {
	return &requestContext{w: w, r: r}
}

func (c *requestContext) Deadline() (deadline time.Time, ok bool) {
	return c.r.Context().Deadline()
}

func (c *requestContext) Done() <-chan struct{} {
	return c.r.Context().Done()
}

func (c *requestContext) Err() error {
	return c.r.Context().Err()
}

func (c *requestContext) Value(key any) any {
	return c.r.Context().Value(key)
}

// SetValue stores a value in the request's context.
// The value can be retrieved using the Value method.
func (c *requestContext) SetValue(key, val any) {
	ctx := context.WithValue(c.r.Context(), key, val)
	c.r = c.r.WithContext(ctx)
}

func (c *requestContext) Request() *http.Request {
	return c.r
}

func (c *requestContext) ResponseWriter() http.ResponseWriter {
	return c.w
}
