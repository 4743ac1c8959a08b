// Package handler defines the request-processing primitives the security
// pipeline is built from: a request Context, a Response renderer, and the
// Middleware type used to express filters.
//
// A filter may pass the request through unchanged, short-circuit with a
// redirect or error response, or attach request-scoped state (such as the
// current session) via Context.SetValue before delegating to the next
// filter:
//
//	func Audit(log *slog.Logger) handler.Middleware {
//		return func(next handler.HandlerFunc) handler.HandlerFunc {
//			return func(ctx handler.Context) handler.Response {
//				log.InfoContext(ctx, "request", "path", ctx.Request().URL.Path)
//				return next(ctx)
//			}
//		}
//	}
//
// Chain composes an ordered filter stack into a single handler, and HTTP
// adapts the result to a standard http.Handler.
package handler
