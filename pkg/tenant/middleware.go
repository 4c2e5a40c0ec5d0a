package tenant

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

// defaultSkipPaths never attempt resolution: health checks, static assets,
// tenant registration/onboarding, and the auth endpoints that must work
// before a tenant is known (session probing).
var defaultSkipPaths = []string{
	"/health",
	"/metrics",
	"/favicon.ico",
	"/static/",
	"/register",
	"/signup",
	"/onboard",
	"/api/tenants/",
	"/api/auth/me",
}

// Middleware resolves the acting tenant from each request and stores it in
// the request context. Resolution is cached per identifier, so repeat lookups
// within the cache TTL don't hit the provider.
func Middleware(resolver Resolver, provider Provider, opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{
		cache:         NewInMemoryCache(),
		errorHandler:  defaultErrorHandler,
		skipPaths:     defaultSkipPaths,
		requireActive: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	cacheTTL := 5 * time.Minute

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, skip := range cfg.skipPaths {
				if strings.HasPrefix(r.URL.Path, skip) {
					next.ServeHTTP(w, r)
					return
				}
			}

			identifier, err := resolver(r)
			if err != nil {
				cfg.errorHandler(w, r, err)
				return
			}

			// No identifier means no tenant context; tenant-required routes
			// reject later via RequireTenant.
			if identifier == "" {
				next.ServeHTTP(w, r)
				return
			}

			if cached, ok := cfg.cache.Get(r.Context(), identifier); ok {
				if cfg.requireActive && !cached.Active {
					cfg.errorHandler(w, r, ErrInactiveTenant)
					return
				}
				next.ServeHTTP(w, r.WithContext(WithTenant(r.Context(), cached)))
				return
			}

			t, err := provider.GetByIdentifier(r.Context(), identifier)
			if err != nil {
				cfg.errorHandler(w, r, err)
				return
			}

			if cfg.requireActive && !t.Active {
				cfg.errorHandler(w, r, ErrInactiveTenant)
				return
			}

			cfg.cache.Set(r.Context(), identifier, t, cacheTTL)

			next.ServeHTTP(w, r.WithContext(WithTenant(r.Context(), t)))
		})
	}
}

// RequireTenant rejects requests that reach a tenant-required route without
// a resolved tenant in context.
func RequireTenant(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
			if errors.Is(err, ErrNoTenantInContext) {
				http.Error(w, "Tenant not found", http.StatusNotFound)
				return
			}
			defaultErrorHandler(w, r, err)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if t, ok := FromContext(r.Context()); !ok || t == nil {
				errorHandler(w, r, ErrNoTenantInContext)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
