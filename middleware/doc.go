// Package middleware provides the HTTP filter chain for request
// authentication and access control: session resolution, CSRF protection,
// CAPTCHA verification, form login, logout, access decisions, request IDs
// and request logging.
//
// All middleware follow a consistent pattern:
//   - Configuration structs for customization
//   - Default constructors for common use cases
//   - WithConfig constructors for advanced configuration
//   - Context helpers for retrieving stored values
//
// # Filter Ordering
//
// The filters are designed to run in a fixed order; each one assumes its
// predecessors have run:
//
//	chain := handler.Chain([]handler.Middleware{
//		middleware.RequestID(),
//		middleware.ClientIP(),
//		middleware.LoggingWithLogger(log),
//		middleware.Session(transport, "/login"),
//		middleware.CSRF(),
//		middleware.Captcha(captchaRegistry, "/login/process", "/login"),
//		middleware.Login(processor, registry, "/login/process", "/login", "/"),
//		middleware.Logout(registry, "/logout", "/login"),
//		middleware.Access(engine, "/login", "/access-denied"),
//	}, endpoint)
//
// Session must precede every filter that calls MustGetSession. CSRF runs
// before Captcha so a forged POST cannot consume the one-shot challenge,
// and Captcha runs before Login so a failed challenge never reaches
// credential processing. Access runs last so login and logout endpoints
// stay reachable.
//
// # Failure Reasons
//
// Filters report login failures by redirecting to the login page with a
// machine-readable reason in the query string (default parameter
// "param.error"): bad_credentials, bad_captcha, expired or session_limit.
// The login page can translate the reason into a user-facing message
// without the filters knowing anything about rendering.
//
// # Session Access In Handlers
//
//	func profile(ctx handler.Context) handler.Response {
//		sess := middleware.MustGetSession(ctx)
//		return response.String(http.StatusOK, "hello %s", sess.Principal.Username)
//	}
//
// Handlers that mutate the session call middleware.SetSession so the
// session middleware persists the change after the request.
package middleware
