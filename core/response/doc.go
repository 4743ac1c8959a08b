// Package response provides constructors for the handler.Response values
// produced by filters and endpoints: redirects (including reason-coded
// failure redirects), plain-text and HTML bodies, and error propagation.
package response
