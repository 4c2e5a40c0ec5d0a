package session

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/rosterkit/pkg/tenant"
)

// Session-tenant binding states:
//
//	unbound --------> bound(T) --------> invalidated
//	(backfill on first     (mismatch or
//	 authenticated request) explicit logout)
//
// bound(T) -> bound(T) is a no-op; every other transition is illegal. A
// session issued under one tenant's subdomain can therefore never be
// replayed against another tenant, even by a user sharing credentials.

// BindTenant validates an authenticated session against the resolved tenant
// and advances the binding state machine. Unbound sessions (created before
// binding existed) are backfilled to the current tenant. A mismatch returns
// ErrTenantMismatch after invalidating the session in the store; the caller
// must clear the client token and answer authentication-required.
func (m *Manager) BindTenant(ctx context.Context, session *Session, tenantID uuid.UUID) error {
	if !session.IsAuthenticated() {
		return nil
	}

	switch {
	case !session.IsBound():
		// unbound -> bound(T)
		session.TenantID = &tenantID
		return m.store.Update(ctx, session)
	case session.BoundTo(tenantID):
		// bound(T) -> bound(T): same tenant, request proceeds.
		return nil
	default:
		// bound(T) -> invalidated
		_ = m.store.Delete(ctx, session.Token)
		return ErrTenantMismatch
	}
}

// BindTenantMiddleware runs after the tenant and session middlewares. It
// enforces the session-tenant binding before any tenant-scoped work: on
// mismatch the session is destroyed client-side too and the request is
// answered 401.
func (m *Manager) BindTenantMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := FromContext(r.Context())
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		t, ok := tenant.FromContext(r.Context())
		if !ok {
			// No resolved tenant, so nothing to validate against;
			// tenant-required routes reject independently.
			next.ServeHTTP(w, r)
			return
		}

		if err := m.BindTenant(r.Context(), session, t.ID); err != nil {
			_ = m.transport.ClearToken(w)
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
