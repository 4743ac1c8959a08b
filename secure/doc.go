// Package secure assembles the request security pipeline: session
// resolution, CSRF protection, CAPTCHA-gated form login with optional
// remember-me, logout, per-user session limits and URL access rules,
// wired together in a fixed filter order behind a single configuration
// surface.
//
// # Usage
//
//	var cfg secure.Config
//	config.MustLoad(&cfg)
//
//	h, err := secure.New(cfg, secure.Deps{
//		Transport:   transport,
//		Captcha:     captchaRegistry,
//		Credentials: credentialStore,
//		Registry:    sessionRegistry,
//		Logger:      log,
//	}, endpoint)
//	if err != nil {
//		return err
//	}
//	srv.Run(ctx, h)()
//
// The default rule set makes the login and access-denied pages public,
// restricts the admin subtree to the configured admin role, and requires
// authentication everywhere else. Pass Deps.Rules to replace it entirely;
// rule order matters because the first matching pattern wins.
package secure
