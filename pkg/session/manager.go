package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/google/uuid"
)

// Manager handles session lifecycle: creation at login, lookup on each
// request, tenant binding, and destruction at logout or mismatch.
type Manager struct {
	store     Store
	transport Transport
	config    Config
}

// New creates a session manager with the given options. Defaults to a
// memory store and cookie transport.
func New(opts ...Option) *Manager {
	m := &Manager{config: DefaultConfig()}
	for _, opt := range opts {
		opt(m)
	}
	if m.store == nil {
		m.store = NewMemoryStore(m.config.CleanupInterval)
	}
	if m.transport == nil {
		m.transport = NewCookieTransport(m.config.CookieName, m.config.SecureCookies)
	}
	return m
}

// Get retrieves the request's session.
func (m *Manager) Get(ctx context.Context, r *http.Request) (*Session, error) {
	token, err := m.transport.GetToken(r)
	if err != nil {
		return nil, err
	}
	session, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if session.IsExpired() {
		return nil, ErrSessionExpired
	}
	return session, nil
}

// Authenticate creates an authenticated session for the user, bound to the
// given tenant. Any prior session for the request is rotated out: a fresh
// token prevents session fixation across login.
func (m *Manager) Authenticate(ctx context.Context, w http.ResponseWriter, r *http.Request, userID, tenantID uuid.UUID) (*Session, error) {
	if old, err := m.Get(ctx, r); err == nil {
		_ = m.store.Delete(ctx, old.Token)
	}

	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	session := NewSession(token, &userID, m.config.ttl(true))
	session.TenantID = &tenantID

	if err := m.store.Create(ctx, session); err != nil {
		return nil, err
	}
	if err := m.transport.SetToken(w, token, int(m.config.ttl(true).Seconds())); err != nil {
		_ = m.store.Delete(ctx, token)
		return nil, err
	}
	return session, nil
}

// Destroy deletes the request's session and clears the client token.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if token, err := m.transport.GetToken(r); err == nil && token != "" {
		_ = m.store.Delete(ctx, token)
	}
	return m.transport.ClearToken(w)
}

// Update persists session changes.
func (m *Manager) Update(ctx context.Context, session *Session) error {
	return m.store.Update(ctx, session)
}

// Middleware attaches the request's session to the context when one exists.
// Requests without a valid session pass through untouched.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.Get(r.Context(), r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

// RequireAuth rejects requests without an authenticated session.
func (m *Manager) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := FromContext(r.Context())
		if !ok || !session.IsAuthenticated() {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// generateToken creates a cryptographically secure session token.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
