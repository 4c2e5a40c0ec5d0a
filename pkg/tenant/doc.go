// Package tenant resolves the acting organization for each HTTP request and
// carries it through the request context.
//
// A Resolver extracts a tenant identifier from the request (subdomain, URL
// path segment, or header), a Provider loads the matching active tenant, and
// the Middleware wires both together with caching. Downstream code reads the
// resolved tenant with FromContext and never touches resolution details.
//
//	resolver := tenant.NewCompositeResolver(
//	    tenant.NewSubdomainResolver(".rosterkit.app"),
//	    tenant.NewPathResolver(),
//	)
//	r.Use(tenant.Middleware(resolver, provider))
//
// Reserved labels (www, api, admin, app, mail, localhost, numeric segments)
// never resolve, and a configurable set of paths (health checks, static
// assets, onboarding, pre-tenant auth endpoints) skips resolution entirely.
//
// The context value is request-scoped by construction: handing the tenant to
// a goroutine that outlives the request requires deliberately detaching the
// context, so stale tenants cannot leak into pooled workers.
package tenant
