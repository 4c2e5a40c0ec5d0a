// Package auth provides tenant-scoped user accounts with password
// authentication. Every user belongs to exactly one tenant; the same email
// may exist independently under different tenants.
package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/rosterkit/pkg/scope"
)

// User is a tenant-scoped account.
type User struct {
	scope.TenantRef

	ID        uuid.UUID `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	IsAdmin   bool      `json:"is_admin" db:"is_admin"`
	Active    bool      `json:"is_active" db:"is_active"`
	Language  string    `json:"language" db:"language"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
