package tenant

import (
	"context"
	"sync"

	"github.com/google/uuid"

	tenantpkg "github.com/dmitrymomot/rosterkit/pkg/tenant"
)

// MemoryStorage is an in-memory Storage implementation for tests and local
// development.
type MemoryStorage struct {
	mu      sync.RWMutex
	tenants map[uuid.UUID]tenantpkg.Tenant
}

// NewMemoryStorage creates an empty in-memory tenant storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{tenants: make(map[uuid.UUID]tenantpkg.Tenant)}
}

func (m *MemoryStorage) Create(ctx context.Context, t *tenantpkg.Tenant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tenants[t.ID] = *t
	return nil
}

func (m *MemoryStorage) GetByID(ctx context.Context, id uuid.UUID) (*tenantpkg.Tenant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tenants[id]
	if !ok {
		return nil, tenantpkg.ErrTenantNotFound
	}
	return &t, nil
}

func (m *MemoryStorage) GetByIdentifier(ctx context.Context, identifier string) (*tenantpkg.Tenant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.tenants {
		if !t.Active {
			continue
		}
		if t.Slug == identifier || (t.Subdomain != "" && t.Subdomain == identifier) {
			t := t
			return &t, nil
		}
	}
	return nil, tenantpkg.ErrTenantNotFound
}

func (m *MemoryStorage) IdentifierExists(ctx context.Context, identifier string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.tenants {
		if t.Slug == identifier || (t.Subdomain != "" && t.Subdomain == identifier) {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStorage) Update(ctx context.Context, t *tenantpkg.Tenant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tenants[t.ID]; !ok {
		return tenantpkg.ErrTenantNotFound
	}
	m.tenants[t.ID] = *t
	return nil
}

var _ Storage = (*MemoryStorage)(nil)
