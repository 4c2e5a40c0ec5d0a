package scope

import (
	"context"

	"github.com/google/uuid"
)

// Store is the persistence contract for one tenant-scoped entity type.
// Every query takes the tenant ID as a mandatory argument: there is no code
// path where the filter could be silently skipped. Implementations must
// treat rows of other tenants as nonexistent, returning ErrNotFound rather
// than any error that would reveal them.
type Store[T Scoped] interface {
	// Get fetches one entity by primary key within the tenant partition.
	Get(ctx context.Context, tenantID, id uuid.UUID) (T, error)

	// List fetches all entities in the tenant partition.
	List(ctx context.Context, tenantID uuid.UUID) ([]T, error)

	// Insert persists a new entity. The entity must already carry its
	// tenant reference (see Stamp).
	Insert(ctx context.Context, e T) error

	// Update persists changes to an entity within the tenant partition.
	Update(ctx context.Context, tenantID uuid.UUID, e T) error

	// Delete removes one entity by primary key within the tenant partition.
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// UpdateMatching applies a change to every entity in the tenant
	// partition the predicate matches, returning how many rows changed.
	UpdateMatching(ctx context.Context, tenantID uuid.UUID, match func(T) bool, apply func(T)) (int, error)

	// DeleteMatching removes every entity in the tenant partition the
	// predicate matches, returning how many rows were removed.
	DeleteMatching(ctx context.Context, tenantID uuid.UUID, match func(T) bool) (int, error)
}
