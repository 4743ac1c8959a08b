// Package cookie provides an HTTP cookie manager with HMAC-SHA256 signing
// and key rotation support.
//
// The session transport stores session tokens in signed cookies so that a
// tampered cookie value is rejected before any store lookup happens:
//
//	mgr, err := cookie.New([]string{secret})
//	if err != nil {
//		return err
//	}
//
//	mgr.SetSigned(w, "sid", token)
//	token, err := mgr.GetSigned(r, "sid")
//
// Multiple secrets may be supplied; the first signs new cookies and the
// rest are accepted during verification, which allows rotating the signing
// key without invalidating live sessions.
package cookie
