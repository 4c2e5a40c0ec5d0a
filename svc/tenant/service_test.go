package tenant_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tenantpkg "github.com/dmitrymomot/rosterkit/pkg/tenant"
	"github.com/dmitrymomot/rosterkit/svc/tenant"
)

func newService(t *testing.T) *tenant.Service {
	t.Helper()
	return tenant.NewService(tenant.NewMemoryStorage())
}

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("derives slug from name", func(t *testing.T) {
		t.Parallel()

		svc := newService(t)
		created, err := svc.Register(context.Background(), tenant.RegisterParams{
			Name: "Riverside Hockey Club",
		})
		require.NoError(t, err)

		assert.Equal(t, "riverside-hockey-club", created.Slug)
		assert.Equal(t, "Riverside Hockey Club", created.Name)
		assert.True(t, created.Active)
		assert.Equal(t, tenantpkg.ThreePosition, created.PositionMode)
		assert.Equal(t, "Team 1", created.TeamName1)
		assert.Equal(t, "Team 2", created.TeamName2)
		assert.Equal(t, 2, created.GoaltendersNeeded)
	})

	t.Run("claims subdomain lowercased", func(t *testing.T) {
		t.Parallel()

		svc := newService(t)
		created, err := svc.Register(context.Background(), tenant.RegisterParams{
			Name:      "Lakeside League",
			Subdomain: "Lakeside",
		})
		require.NoError(t, err)
		assert.Equal(t, "lakeside", created.Subdomain)
	})

	t.Run("rejects duplicate slug", func(t *testing.T) {
		t.Parallel()

		svc := newService(t)
		_, err := svc.Register(context.Background(), tenant.RegisterParams{Name: "Riverside"})
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), tenant.RegisterParams{Name: "Riverside"})
		require.ErrorIs(t, err, tenant.ErrIdentifierTaken)
	})

	t.Run("rejects subdomain already claimed as slug", func(t *testing.T) {
		t.Parallel()

		svc := newService(t)
		_, err := svc.Register(context.Background(), tenant.RegisterParams{Name: "Riverside"})
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), tenant.RegisterParams{
			Name:      "Other League",
			Subdomain: "riverside",
		})
		require.ErrorIs(t, err, tenant.ErrIdentifierTaken)
	})

	t.Run("rejects reserved subdomain", func(t *testing.T) {
		t.Parallel()

		svc := newService(t)
		_, err := svc.Register(context.Background(), tenant.RegisterParams{
			Name:      "Riverside",
			Subdomain: "api",
		})
		require.ErrorIs(t, err, tenant.ErrIdentifierReserved)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		t.Parallel()

		svc := newService(t)
		_, err := svc.Register(context.Background(), tenant.RegisterParams{Name: "   "})
		require.ErrorIs(t, err, tenant.ErrInvalidName)
	})

	t.Run("rejects unknown position mode", func(t *testing.T) {
		t.Parallel()

		svc := newService(t)
		_, err := svc.Register(context.Background(), tenant.RegisterParams{
			Name:         "Riverside",
			PositionMode: "five_position",
		})
		require.ErrorIs(t, err, tenant.ErrInvalidPositionMode)
	})
}

func TestRename(t *testing.T) {
	t.Parallel()

	t.Run("regenerates slug while auto-derived", func(t *testing.T) {
		t.Parallel()

		svc := newService(t)
		created, err := svc.Register(context.Background(), tenant.RegisterParams{Name: "Riverside"})
		require.NoError(t, err)

		renamed, err := svc.Rename(context.Background(), created.ID, "Riverside Hockey Club")
		require.NoError(t, err)
		assert.Equal(t, "riverside-hockey-club", renamed.Slug)
	})

	t.Run("keeps a custom slug", func(t *testing.T) {
		t.Parallel()

		svc := newService(t)
		created, err := svc.Register(context.Background(), tenant.RegisterParams{
			Name: "Riverside Hockey Club",
			Slug: "rhc",
		})
		require.NoError(t, err)
		require.Equal(t, "rhc", created.Slug)

		renamed, err := svc.Rename(context.Background(), created.ID, "Riverside HC")
		require.NoError(t, err)
		assert.Equal(t, "rhc", renamed.Slug, "custom slug must survive renames")
		assert.Equal(t, "Riverside HC", renamed.Name)
	})

	t.Run("refuses slug collision on rename", func(t *testing.T) {
		t.Parallel()

		svc := newService(t)
		_, err := svc.Register(context.Background(), tenant.RegisterParams{Name: "Lakeside"})
		require.NoError(t, err)
		created, err := svc.Register(context.Background(), tenant.RegisterParams{Name: "Riverside"})
		require.NoError(t, err)

		_, err = svc.Rename(context.Background(), created.ID, "Lakeside")
		require.ErrorIs(t, err, tenant.ErrIdentifierTaken)
	})
}

func TestCheckAvailability(t *testing.T) {
	t.Parallel()

	svc := newService(t)
	_, err := svc.Register(context.Background(), tenant.RegisterParams{
		Name:      "Riverside",
		Subdomain: "riverside-hc",
	})
	require.NoError(t, err)

	t.Run("taken name", func(t *testing.T) {
		t.Parallel()

		result, err := svc.CheckAvailability(context.Background(), "Riverside", "")
		require.NoError(t, err)
		assert.Equal(t, "riverside", result.GeneratedSlug)
		assert.False(t, result.NameAvailable)
	})

	t.Run("free name and subdomain", func(t *testing.T) {
		t.Parallel()

		result, err := svc.CheckAvailability(context.Background(), "Lakeside", "lakeside")
		require.NoError(t, err)
		assert.Equal(t, "lakeside", result.GeneratedSlug)
		assert.True(t, result.NameAvailable)
		assert.True(t, result.SubdomainValid)
		assert.True(t, result.SubdomainAvailable)
	})

	t.Run("invalid subdomain", func(t *testing.T) {
		t.Parallel()

		result, err := svc.CheckAvailability(context.Background(), "", "bad subdomain!")
		require.NoError(t, err)
		assert.False(t, result.SubdomainValid)
		assert.False(t, result.SubdomainAvailable)
	})

	t.Run("taken subdomain", func(t *testing.T) {
		t.Parallel()

		result, err := svc.CheckAvailability(context.Background(), "", "riverside-hc")
		require.NoError(t, err)
		assert.True(t, result.SubdomainValid)
		assert.False(t, result.SubdomainAvailable)
	})
}

func TestDeactivate(t *testing.T) {
	t.Parallel()

	t.Run("stops resolution but keeps the claim", func(t *testing.T) {
		t.Parallel()

		svc := newService(t)
		created, err := svc.Register(context.Background(), tenant.RegisterParams{Name: "Riverside"})
		require.NoError(t, err)

		require.NoError(t, svc.Deactivate(context.Background(), created.ID))

		_, err = svc.GetByIdentifier(context.Background(), "riverside")
		require.ErrorIs(t, err, tenantpkg.ErrTenantNotFound)

		// The slug stays claimed so nobody can take over old URLs.
		_, err = svc.Register(context.Background(), tenant.RegisterParams{Name: "Riverside"})
		require.ErrorIs(t, err, tenant.ErrIdentifierTaken)
	})

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()

		svc := newService(t)
		created, err := svc.Register(context.Background(), tenant.RegisterParams{Name: "Riverside"})
		require.NoError(t, err)

		require.NoError(t, svc.Deactivate(context.Background(), created.ID))
		require.NoError(t, svc.Deactivate(context.Background(), created.ID))
	})
}

func TestUpdateSettings(t *testing.T) {
	t.Parallel()

	t.Run("partial update", func(t *testing.T) {
		t.Parallel()

		svc := newService(t)
		created, err := svc.Register(context.Background(), tenant.RegisterParams{Name: "Riverside"})
		require.NoError(t, err)

		mode := tenantpkg.TwoPosition
		name1 := "Whites"
		updated, err := svc.UpdateSettings(context.Background(), created.ID, tenant.SettingsParams{
			PositionMode: &mode,
			TeamName1:    &name1,
		})
		require.NoError(t, err)

		assert.Equal(t, tenantpkg.TwoPosition, updated.PositionMode)
		assert.Equal(t, "Whites", updated.TeamName1)
		assert.Equal(t, "Team 2", updated.TeamName2)
		assert.Equal(t, "blue", updated.TeamColor1)
	})

	t.Run("rejects invalid position mode", func(t *testing.T) {
		t.Parallel()

		svc := newService(t)
		created, err := svc.Register(context.Background(), tenant.RegisterParams{Name: "Riverside"})
		require.NoError(t, err)

		bad := tenantpkg.PositionMode("four_position")
		_, err = svc.UpdateSettings(context.Background(), created.ID, tenant.SettingsParams{
			PositionMode: &bad,
		})
		require.ErrorIs(t, err, tenant.ErrInvalidPositionMode)
	})
}
