package scope

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmitrymomot/rosterkit/pkg/tenant"
)

// Scoped is the capability every tenant-owned entity implements. The
// repository layer operates purely over this interface, never over concrete
// entity types.
type Scoped interface {
	TenantID() uuid.UUID
	SetTenantID(id uuid.UUID)
}

// Stamp assigns the resolved tenant to an entity that does not carry one
// yet. Entities that already carry a tenant are left untouched; stamping
// without a resolved tenant fails.
func Stamp(ctx context.Context, e Scoped) error {
	if e.TenantID() != uuid.Nil {
		return nil
	}
	id, ok := tenant.IDFromContext(ctx)
	if !ok {
		return ErrNoTenant
	}
	e.SetTenantID(id)
	return nil
}

// Authorize reports whether the current tenant context may use an
// already-loaded entity. It fails closed: no resolved tenant denies access,
// and a tenant mismatch denies access. Call it before mutating or reading
// anything fetched by primary key through a tenant-unaware path.
func Authorize(ctx context.Context, e Scoped) error {
	id, ok := tenant.IDFromContext(ctx)
	if !ok {
		return ErrNoTenant
	}
	if e.TenantID() != id {
		return ErrAccessDenied
	}
	return nil
}
