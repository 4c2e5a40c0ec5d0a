package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when no active tenant matches the
	// identifier extracted from the request.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrInvalidIdentifier is returned when the extracted identifier is not
	// a valid slug or subdomain.
	ErrInvalidIdentifier = errors.New("invalid tenant identifier")

	// ErrNoTenantInContext is returned when tenant-scoped work is attempted
	// without a resolved tenant.
	ErrNoTenantInContext = errors.New("no tenant in context")

	// ErrInactiveTenant is returned when the matched tenant is soft-disabled.
	ErrInactiveTenant = errors.New("tenant is inactive")
)
