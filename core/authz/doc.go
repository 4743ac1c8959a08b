// Package authz implements the access-decision engine: ordered URL rules,
// pluggable voters with tri-state results (grant, deny, abstain), and
// affirmative combining where a single grant allows the request and
// anything less denies it.
//
//	engine := authz.NewEngine([]authz.Rule{
//		authz.Public("/login"),
//		authz.RolesAny("/admin/**", "ADMIN"),
//		authz.Authenticated("/dashboard"),
//	})
//
//	if !engine.Decide(principal, r).Allowed() {
//		// redirect to login or access-denied page
//	}
//
// Rules are checked in declaration order, first match wins. Public rules
// bypass the voters entirely; unmatched paths fall through to an implicit
// authenticated-only catch-all, so the engine fails closed for anonymous
// requests.
package authz
