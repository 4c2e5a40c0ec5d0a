package scope

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmitrymomot/rosterkit/pkg/tenant"
)

// Repository wraps a Store and derives the tenant partition from the request
// context, so callers can never forget the filter. New entities are stamped
// with the resolved tenant before insert, and every read is restricted to
// the resolved tenant's rows.
type Repository[T Scoped] struct {
	store Store[T]
}

// NewRepository creates a context-scoped repository over the given store.
func NewRepository[T Scoped](store Store[T]) *Repository[T] {
	return &Repository[T]{store: store}
}

func (r *Repository[T]) tenantID(ctx context.Context) (uuid.UUID, error) {
	id, ok := tenant.IDFromContext(ctx)
	if !ok {
		return uuid.Nil, ErrNoTenant
	}
	return id, nil
}

// Get fetches one entity by primary key. Rows owned by other tenants answer
// ErrNotFound, identical to rows that do not exist.
func (r *Repository[T]) Get(ctx context.Context, id uuid.UUID) (T, error) {
	var zero T
	tid, err := r.tenantID(ctx)
	if err != nil {
		return zero, err
	}
	return r.store.Get(ctx, tid, id)
}

// List fetches all entities of the resolved tenant.
func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	tid, err := r.tenantID(ctx)
	if err != nil {
		return nil, err
	}
	return r.store.List(ctx, tid)
}

// Create stamps the resolved tenant onto the entity (unless it already
// carries one) and persists it. An entity pre-stamped with a different
// tenant is rejected before anything is written.
func (r *Repository[T]) Create(ctx context.Context, e T) error {
	if err := Stamp(ctx, e); err != nil {
		return err
	}
	if err := Authorize(ctx, e); err != nil {
		return err
	}
	return r.store.Insert(ctx, e)
}

// Update persists changes to an entity after verifying it belongs to the
// resolved tenant.
func (r *Repository[T]) Update(ctx context.Context, e T) error {
	if err := Authorize(ctx, e); err != nil {
		return err
	}
	return r.store.Update(ctx, e.TenantID(), e)
}

// Delete removes one entity by primary key within the resolved tenant.
func (r *Repository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	tid, err := r.tenantID(ctx)
	if err != nil {
		return err
	}
	return r.store.Delete(ctx, tid, id)
}

// UpdateMatching applies a bulk change restricted to the resolved tenant's
// rows. Rows of other tenants are untouched by construction.
func (r *Repository[T]) UpdateMatching(ctx context.Context, match func(T) bool, apply func(T)) (int, error) {
	tid, err := r.tenantID(ctx)
	if err != nil {
		return 0, err
	}
	return r.store.UpdateMatching(ctx, tid, match, apply)
}

// DeleteMatching removes matching rows restricted to the resolved tenant.
func (r *Repository[T]) DeleteMatching(ctx context.Context, match func(T) bool) (int, error) {
	tid, err := r.tenantID(ctx)
	if err != nil {
		return 0, err
	}
	return r.store.DeleteMatching(ctx, tid, match)
}
