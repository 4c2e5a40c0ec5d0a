// Package session provides cookie- or header-transported server sessions
// with tenant binding.
//
// The Manager creates a session at login (Authenticate), looks it up on
// each request (Middleware), and destroys it at logout. On multi-tenant
// deployments the binder (BindTenantMiddleware) pins each authenticated
// session to the tenant it was created under: replaying the session against
// a different tenant invalidates it and forces re-authentication. See
// binder.go for the binding state machine.
package session
