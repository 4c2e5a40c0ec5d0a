package tenant_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rosterkit/pkg/tenant"
)

func TestSubdomainResolver(t *testing.T) {
	t.Parallel()

	t.Run("extracts subdomain from host", func(t *testing.T) {
		t.Parallel()

		resolve := tenant.NewSubdomainResolver("")
		req := httptest.NewRequest("GET", "https://riverside.rosterkit.app/players", nil)
		req.Host = "riverside.rosterkit.app"

		id, err := resolve(req)
		require.NoError(t, err)
		assert.Equal(t, "riverside", id)
	})

	t.Run("strips configured suffix", func(t *testing.T) {
		t.Parallel()

		resolve := tenant.NewSubdomainResolver(".rosterkit.app")
		req := httptest.NewRequest("GET", "https://lakeside.rosterkit.app/", nil)
		req.Host = "lakeside.rosterkit.app"

		id, err := resolve(req)
		require.NoError(t, err)
		assert.Equal(t, "lakeside", id)
	})

	t.Run("handles host with port", func(t *testing.T) {
		t.Parallel()

		resolve := tenant.NewSubdomainResolver("")
		req := httptest.NewRequest("GET", "http://riverside.app.localhost:8080/", nil)
		req.Host = "riverside.app.localhost:8080"

		id, err := resolve(req)
		require.NoError(t, err)
		assert.Equal(t, "riverside", id)
	})

	t.Run("reserved labels never resolve", func(t *testing.T) {
		t.Parallel()

		resolve := tenant.NewSubdomainResolver("")
		for _, label := range []string{"www", "api", "admin", "app", "mail"} {
			req := httptest.NewRequest("GET", "https://example.com/", nil)
			req.Host = label + ".rosterkit.app"

			id, err := resolve(req)
			require.NoError(t, err)
			assert.Empty(t, id, "label %q must not resolve", label)
		}
	})

	t.Run("numeric labels never resolve", func(t *testing.T) {
		t.Parallel()

		resolve := tenant.NewSubdomainResolver("")
		req := httptest.NewRequest("GET", "http://127.0.0.1/", nil)
		req.Host = "127.0.0.1"

		id, err := resolve(req)
		require.NoError(t, err)
		assert.Empty(t, id)
	})

	t.Run("returns empty for base domain", func(t *testing.T) {
		t.Parallel()

		resolve := tenant.NewSubdomainResolver("")
		req := httptest.NewRequest("GET", "https://rosterkit.app/", nil)
		req.Host = "rosterkit.app"

		id, err := resolve(req)
		require.NoError(t, err)
		assert.Empty(t, id)
	})

	t.Run("base domain never resolves when suffix is configured", func(t *testing.T) {
		t.Parallel()

		resolve := tenant.NewSubdomainResolver(".rosterkit.app")
		req := httptest.NewRequest("GET", "https://rosterkit.app/", nil)
		req.Host = "rosterkit.app"

		id, err := resolve(req)
		require.NoError(t, err)
		assert.Empty(t, id, "apex host must not resolve to a tenant identifier")
	})

	t.Run("foreign host never resolves when suffix is configured", func(t *testing.T) {
		t.Parallel()

		resolve := tenant.NewSubdomainResolver(".rosterkit.app")
		req := httptest.NewRequest("GET", "https://riverside.example.com/", nil)
		req.Host = "riverside.example.com"

		id, err := resolve(req)
		require.NoError(t, err)
		assert.Empty(t, id)
	})

	t.Run("returns empty for bare localhost", func(t *testing.T) {
		t.Parallel()

		resolve := tenant.NewSubdomainResolver("")
		req := httptest.NewRequest("GET", "http://localhost:3000/", nil)
		req.Host = "localhost:3000"

		id, err := resolve(req)
		require.NoError(t, err)
		assert.Empty(t, id)
	})
}

func TestPathResolver(t *testing.T) {
	t.Parallel()

	t.Run("extracts first path segment", func(t *testing.T) {
		t.Parallel()

		resolve := tenant.NewPathResolver()
		req := httptest.NewRequest("GET", "https://rosterkit.app/riverside/games", nil)

		id, err := resolve(req)
		require.NoError(t, err)
		assert.Equal(t, "riverside", id)
	})

	t.Run("skips reserved prefixes", func(t *testing.T) {
		t.Parallel()

		resolve := tenant.NewPathResolver()
		for _, prefix := range []string{"api", "admin"} {
			req := httptest.NewRequest("GET", "https://rosterkit.app/"+prefix+"/players", nil)

			id, err := resolve(req)
			require.NoError(t, err)
			assert.Empty(t, id, "prefix %q must not resolve", prefix)
		}
	})

	t.Run("returns empty for root path", func(t *testing.T) {
		t.Parallel()

		resolve := tenant.NewPathResolver()
		req := httptest.NewRequest("GET", "https://rosterkit.app/", nil)

		id, err := resolve(req)
		require.NoError(t, err)
		assert.Empty(t, id)
	})

	t.Run("rejects malformed segment", func(t *testing.T) {
		t.Parallel()

		resolve := tenant.NewPathResolver()
		req := httptest.NewRequest("GET", "https://rosterkit.app/%2e%2e/etc", nil)
		req.URL.Path = "/../etc"

		_, err := resolve(req)
		assert.ErrorIs(t, err, tenant.ErrInvalidIdentifier)
	})
}

func TestHeaderResolver(t *testing.T) {
	t.Parallel()

	t.Run("reads configured header", func(t *testing.T) {
		t.Parallel()

		resolve := tenant.NewHeaderResolver("X-Org")
		req := httptest.NewRequest("GET", "https://rosterkit.app/", nil)
		req.Header.Set("X-Org", "riverside")

		id, err := resolve(req)
		require.NoError(t, err)
		assert.Equal(t, "riverside", id)
	})

	t.Run("defaults header name", func(t *testing.T) {
		t.Parallel()

		resolve := tenant.NewHeaderResolver("")
		req := httptest.NewRequest("GET", "https://rosterkit.app/", nil)
		req.Header.Set("X-Tenant-ID", "lakeside")

		id, err := resolve(req)
		require.NoError(t, err)
		assert.Equal(t, "lakeside", id)
	})
}

func TestCompositeResolver(t *testing.T) {
	t.Parallel()

	t.Run("subdomain wins over path", func(t *testing.T) {
		t.Parallel()

		resolve := tenant.NewCompositeResolver(
			tenant.NewSubdomainResolver(".rosterkit.app"),
			tenant.NewPathResolver(),
		)
		req := httptest.NewRequest("GET", "https://riverside.rosterkit.app/lakeside/games", nil)
		req.Host = "riverside.rosterkit.app"

		id, err := resolve(req)
		require.NoError(t, err)
		assert.Equal(t, "riverside", id)
	})

	t.Run("falls back to path", func(t *testing.T) {
		t.Parallel()

		resolve := tenant.NewCompositeResolver(
			tenant.NewSubdomainResolver(".rosterkit.app"),
			tenant.NewPathResolver(),
		)
		req := httptest.NewRequest("GET", "https://rosterkit.app/lakeside/games", nil)
		req.Host = "rosterkit.app"

		id, err := resolve(req)
		require.NoError(t, err)
		assert.Equal(t, "lakeside", id)
	})

	t.Run("empty when nothing matches", func(t *testing.T) {
		t.Parallel()

		resolve := tenant.NewCompositeResolver(
			tenant.NewSubdomainResolver(".rosterkit.app"),
			tenant.NewPathResolver(),
		)
		req := httptest.NewRequest("GET", "https://rosterkit.app/", nil)
		req.Host = "rosterkit.app"

		id, err := resolve(req)
		require.NoError(t, err)
		assert.Empty(t, id)
	})
}
