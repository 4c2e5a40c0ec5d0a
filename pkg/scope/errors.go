package scope

import "errors"

var (
	// ErrNotFound is returned when no row matches within the current
	// tenant's partition. Rows owned by other tenants answer identically,
	// so their existence is never revealed.
	ErrNotFound = errors.New("not found")

	// ErrAccessDenied is returned by the explicit access check when an
	// entity belongs to a different tenant than the resolved one.
	ErrAccessDenied = errors.New("access denied")

	// ErrNoTenant is returned when a tenant-scoped operation runs without
	// a resolved tenant. Scoped access always fails closed.
	ErrNoTenant = errors.New("no tenant resolved")
)
