package auth

import "errors"

var (
	// ErrInvalidCredentials is returned for any authentication failure.
	// The cause is deliberately not distinguished to prevent enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound is returned when no user matches within the tenant.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when the email is taken within the
	// same tenant. The same email under another tenant does not conflict.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidEmail is returned for malformed email addresses.
	ErrInvalidEmail = errors.New("invalid email")

	// ErrWeakPassword is returned when the password fails minimum
	// requirements.
	ErrWeakPassword = errors.New("password too weak")

	// ErrAdminRequired is returned when a non-admin attempts a management
	// operation.
	ErrAdminRequired = errors.New("admin privileges required")

	// ErrInvalidRole is returned for roles outside user/admin.
	ErrInvalidRole = errors.New("invalid role")

	// ErrInvitationNotFound is returned when no invitation matches within
	// the tenant, including already-accepted ones.
	ErrInvitationNotFound = errors.New("invitation not found")

	// ErrInvitationPending is returned when the email already has an active
	// invitation under the tenant.
	ErrInvitationPending = errors.New("an active invitation for this email already exists")

	// ErrInvitationExpired is returned when the invitation token is past
	// its expiry.
	ErrInvitationExpired = errors.New("invitation expired")

	// ErrLastAdmin guards the tenant's last admin from demotion,
	// deactivation and deletion.
	ErrLastAdmin = errors.New("cannot remove the last admin of this tenant")

	// ErrOwnAccount is returned when a user tries to deactivate or delete
	// their own account.
	ErrOwnAccount = errors.New("cannot modify your own account status")
)
