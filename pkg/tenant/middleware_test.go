package tenant_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rosterkit/pkg/tenant"
)

type stubProvider struct {
	tenants map[string]*tenant.Tenant
	calls   atomic.Int64
}

func (p *stubProvider) GetByIdentifier(ctx context.Context, identifier string) (*tenant.Tenant, error) {
	p.calls.Add(1)
	if t, ok := p.tenants[identifier]; ok {
		return t, nil
	}
	return nil, tenant.ErrTenantNotFound
}

func newStubProvider(tenants ...*tenant.Tenant) *stubProvider {
	p := &stubProvider{tenants: make(map[string]*tenant.Tenant)}
	for _, t := range tenants {
		if t.Subdomain != "" {
			p.tenants[t.Subdomain] = t
		}
		p.tenants[t.Slug] = t
	}
	return p
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	riverside := &tenant.Tenant{ID: uuid.New(), Slug: "riverside", Subdomain: "riverside", Active: true}

	t.Run("resolves tenant into context", func(t *testing.T) {
		t.Parallel()

		provider := newStubProvider(riverside)
		mw := tenant.Middleware(tenant.NewSubdomainResolver(".rosterkit.app"), provider)

		var seen *tenant.Tenant
		h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen, _ = tenant.FromContext(r.Context())
		}))

		req := httptest.NewRequest("GET", "https://riverside.rosterkit.app/players", nil)
		req.Host = "riverside.rosterkit.app"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, seen)
		assert.Equal(t, riverside.ID, seen.ID)
	})

	t.Run("unknown tenant is a client error", func(t *testing.T) {
		t.Parallel()

		provider := newStubProvider(riverside)
		mw := tenant.Middleware(tenant.NewSubdomainResolver(".rosterkit.app"), provider)

		h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run")
		}))

		req := httptest.NewRequest("GET", "https://ghost.rosterkit.app/", nil)
		req.Host = "ghost.rosterkit.app"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("inactive tenant rejected", func(t *testing.T) {
		t.Parallel()

		inactive := &tenant.Tenant{ID: uuid.New(), Slug: "closed", Subdomain: "closed", Active: false}
		provider := newStubProvider(inactive)
		mw := tenant.Middleware(tenant.NewSubdomainResolver(".rosterkit.app"), provider)

		h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest("GET", "https://closed.rosterkit.app/", nil)
		req.Host = "closed.rosterkit.app"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("skip paths bypass resolution", func(t *testing.T) {
		t.Parallel()

		provider := newStubProvider(riverside)
		mw := tenant.Middleware(tenant.NewSubdomainResolver(".rosterkit.app"), provider)

		var ran bool
		h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ran = true
			_, ok := tenant.FromContext(r.Context())
			assert.False(t, ok)
		}))

		req := httptest.NewRequest("GET", "https://ghost.rosterkit.app/health", nil)
		req.Host = "ghost.rosterkit.app"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.True(t, ran)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Zero(t, provider.calls.Load())
	})

	t.Run("onboarding endpoints bypass resolution on the apex", func(t *testing.T) {
		t.Parallel()

		provider := newStubProvider(riverside)
		mw := tenant.Middleware(tenant.NewSubdomainResolver(".rosterkit.app"), provider)

		for _, path := range []string{"/api/tenants/register", "/api/tenants/availability"} {
			var ran bool
			h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ran = true
			}))

			req := httptest.NewRequest("GET", "https://rosterkit.app"+path, nil)
			req.Host = "rosterkit.app"
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.True(t, ran, "path %q must reach the handler", path)
			assert.Equal(t, http.StatusOK, rec.Code)
		}
		assert.Zero(t, provider.calls.Load())
	})

	t.Run("resolution cached within TTL", func(t *testing.T) {
		t.Parallel()

		provider := newStubProvider(riverside)
		mw := tenant.Middleware(tenant.NewSubdomainResolver(".rosterkit.app"), provider)

		h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		for i := 0; i < 3; i++ {
			req := httptest.NewRequest("GET", "https://riverside.rosterkit.app/", nil)
			req.Host = "riverside.rosterkit.app"
			h.ServeHTTP(httptest.NewRecorder(), req)
		}

		assert.Equal(t, int64(1), provider.calls.Load())
	})

	t.Run("no identifier continues without tenant", func(t *testing.T) {
		t.Parallel()

		provider := newStubProvider(riverside)
		mw := tenant.Middleware(tenant.NewSubdomainResolver(".rosterkit.app"), provider)

		var ran bool
		h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { ran = true }))

		req := httptest.NewRequest("GET", "https://rosterkit.app/", nil)
		req.Host = "rosterkit.app"
		h.ServeHTTP(httptest.NewRecorder(), req)

		assert.True(t, ran)
	})
}

func TestRequireTenant(t *testing.T) {
	t.Parallel()

	t.Run("rejects without tenant", func(t *testing.T) {
		t.Parallel()

		h := tenant.RequireTenant(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run")
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "/players", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("passes with tenant", func(t *testing.T) {
		t.Parallel()

		var ran bool
		h := tenant.RequireTenant(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { ran = true }))

		req := httptest.NewRequest("GET", "/players", nil)
		ctx := tenant.WithTenant(req.Context(), &tenant.Tenant{ID: uuid.New(), Active: true})
		h.ServeHTTP(httptest.NewRecorder(), req.WithContext(ctx))

		assert.True(t, ran)
	})
}
