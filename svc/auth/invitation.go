package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/rosterkit/pkg/scope"
)

// InvitationStatus is the lifecycle state of an admin invitation.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationExpired  InvitationStatus = "expired"
)

// Roles assignable through invitations and role updates.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const invitationTTL = 7 * 24 * time.Hour

// AdminInvitation is a tokened invitation for a new manager account under a
// tenant. The token travels by email; accepting it creates the user.
type AdminInvitation struct {
	scope.TenantRef

	ID        uuid.UUID        `json:"id" db:"id"`
	Email     string           `json:"email" db:"email"`
	Role      string           `json:"role" db:"role"`
	Token     string           `json:"-" db:"token"`
	Status    InvitationStatus `json:"status" db:"status"`
	InvitedBy uuid.UUID        `json:"invited_by" db:"invited_by"`
	ExpiresAt time.Time        `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

// Valid reports whether the invitation can still be accepted.
func (i *AdminInvitation) Valid(now time.Time) bool {
	return i.Status == InvitationPending && now.Before(i.ExpiresAt)
}

func newInvitationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate invitation token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
