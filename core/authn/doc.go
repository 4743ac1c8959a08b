// Package authn validates login submissions. The Processor consumes an
// Attempt (username, password, captcha answer), verifies the CAPTCHA
// strictly before touching the credential store, compares bcrypt password
// hashes, and produces the session.Principal to bind to the session.
//
// Password hashes may be stored encrypted at rest; configure a Decrypter
// (see core/keystore) to transparently decrypt them before comparison.
package authn
