// Package captcha binds CAPTCHA challenges to sessions and verifies
// submitted answers. It implements the verifier interface consumed by the
// authentication processor; the actual challenge rendering is an external
// concern.
package captcha
