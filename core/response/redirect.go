package response

import (
	"net/http"
	"net/url"

	"github.com/tuicr/scaffold/core/handler"
)

// Redirect creates a 302 Found (temporary redirect) response.
func Redirect(target string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		http.Redirect(w, r, target, http.StatusFound)
		return nil
	}
}

// RedirectSeeOther creates a 303 See Other response.
// Use after a POST request to redirect the client to a GET request.
func RedirectSeeOther(target string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		http.Redirect(w, r, target, http.StatusSeeOther)
		return nil
	}
}

// RedirectWithReason creates a 302 redirect to target with a reason code
// appended as a query parameter. The login page uses the reason to render
// an appropriate message (bad_credentials, bad_captcha, expired, ...).
func RedirectWithReason(target, param, reason string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		u, err := url.Parse(target)
		if err != nil {
			return err
		}
		q := u.Query()
		q.Set(param, reason)
		u.RawQuery = q.Encode()
		http.Redirect(w, r, u.String(), http.StatusFound)
		return nil
	}
}
