package middleware

// DefaultReasonParam is the query parameter carrying the failure reason on
// redirects to the login page.
const DefaultReasonParam = "param.error"

// Failure reason codes appended to redirect URLs so the login page can
// render an appropriate message.
const (
	ReasonBadCredentials = "bad_credentials"
	ReasonBadCaptcha     = "bad_captcha"
	ReasonExpired        = "expired"
	ReasonSessionLimit   = "session_limit"
)
