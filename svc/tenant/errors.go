package tenant

import "errors"

var (
	// ErrIdentifierTaken is returned when the requested slug or subdomain
	// already belongs to another tenant.
	ErrIdentifierTaken = errors.New("tenant identifier already taken")

	// ErrIdentifierReserved is returned when the requested slug or subdomain
	// collides with a reserved label or is malformed.
	ErrIdentifierReserved = errors.New("tenant identifier is reserved or invalid")

	// ErrInvalidName is returned when the tenant name is empty or yields an
	// empty slug.
	ErrInvalidName = errors.New("invalid tenant name")

	// ErrInvalidPositionMode is returned for position modes other than
	// three_position and two_position.
	ErrInvalidPositionMode = errors.New("invalid position mode")
)
