package session

import (
	"context"
	"time"
)

// Store defines session persistence.
type Store interface {
	// Create stores a new session.
	Create(ctx context.Context, session *Session) error

	// Get retrieves a session by token.
	Get(ctx context.Context, token string) (*Session, error)

	// Update updates an existing session.
	Update(ctx context.Context, session *Session) error

	// Delete removes a session by token.
	Delete(ctx context.Context, token string) error

	// DeleteExpired removes all expired sessions.
	DeleteExpired(ctx context.Context) error
}

// defaultCleanupInterval is how often the memory store sweeps expired rows.
const defaultCleanupInterval = 5 * time.Minute
