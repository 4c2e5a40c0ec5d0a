package session

import "errors"

var (
	// ErrSessionNotFound indicates no session was found for the request.
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrSessionExpired indicates the session has expired.
	ErrSessionExpired = errors.New("session.expired")

	// ErrTenantMismatch indicates the session's bound tenant disagrees with
	// the resolved tenant. The session is invalidated and the user must
	// re-authenticate under the correct tenant.
	ErrTenantMismatch = errors.New("session.tenant_mismatch")

	// ErrTokenGeneration indicates token generation failed.
	ErrTokenGeneration = errors.New("session.token_generation_failed")
)
