package auth

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStorage is an in-memory Storage implementation for tests and local
// development.
type MemoryStorage struct {
	mu          sync.RWMutex
	users       map[uuid.UUID]User
	hashes      map[uuid.UUID][]byte
	invitations map[uuid.UUID]AdminInvitation
}

// NewMemoryStorage creates an empty in-memory auth storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users:       make(map[uuid.UUID]User),
		hashes:      make(map[uuid.UUID][]byte),
		invitations: make(map[uuid.UUID]AdminInvitation),
	}
}

func (m *MemoryStorage) CreateUser(ctx context.Context, user *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.TenantID() == user.TenantID() && u.Email == user.Email {
			return ErrEmailAlreadyExists
		}
	}
	m.users[user.ID] = *user
	return nil
}

func (m *MemoryStorage) GetUserByID(ctx context.Context, tenantID, id uuid.UUID) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok || u.TenantID() != tenantID {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

func (m *MemoryStorage) GetUserByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.TenantID() == tenantID && u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *MemoryStorage) ListUsers(ctx context.Context, tenantID uuid.UUID) ([]*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var users []*User
	for _, u := range m.users {
		if u.TenantID() == tenantID {
			u := u
			users = append(users, &u)
		}
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

func (m *MemoryStorage) CountUsers(ctx context.Context, tenantID uuid.UUID) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, u := range m.users {
		if u.TenantID() == tenantID {
			count++
		}
	}
	return count, nil
}

func (m *MemoryStorage) CountAdmins(ctx context.Context, tenantID uuid.UUID) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, u := range m.users {
		if u.TenantID() == tenantID && u.IsAdmin && u.Active {
			count++
		}
	}
	return count, nil
}

func (m *MemoryStorage) UpdateUser(ctx context.Context, user *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.users[user.ID]
	if !ok || existing.TenantID() != user.TenantID() {
		return ErrUserNotFound
	}
	m.users[user.ID] = *user
	return nil
}

func (m *MemoryStorage) DeleteUser(ctx context.Context, tenantID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok || u.TenantID() != tenantID {
		return ErrUserNotFound
	}
	delete(m.users, id)
	delete(m.hashes, id)
	return nil
}

func (m *MemoryStorage) StorePasswordHash(ctx context.Context, tenantID, userID uuid.UUID, hash []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok || u.TenantID() != tenantID {
		return ErrUserNotFound
	}
	m.hashes[userID] = append([]byte(nil), hash...)
	return nil
}

func (m *MemoryStorage) GetPasswordHash(ctx context.Context, tenantID, userID uuid.UUID) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[userID]
	if !ok || u.TenantID() != tenantID {
		return nil, ErrUserNotFound
	}
	hash, ok := m.hashes[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	return append([]byte(nil), hash...), nil
}

func (m *MemoryStorage) CreateInvitation(ctx context.Context, inv *AdminInvitation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invitations[inv.ID] = *inv
	return nil
}

func (m *MemoryStorage) GetInvitationByToken(ctx context.Context, tenantID uuid.UUID, token string) (*AdminInvitation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, inv := range m.invitations {
		if inv.TenantID() == tenantID && inv.Token == token {
			inv := inv
			return &inv, nil
		}
	}
	return nil, ErrInvitationNotFound
}

func (m *MemoryStorage) GetPendingInvitation(ctx context.Context, tenantID uuid.UUID, email string) (*AdminInvitation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, inv := range m.invitations {
		if inv.TenantID() == tenantID && inv.Email == email && inv.Status == InvitationPending {
			inv := inv
			return &inv, nil
		}
	}
	return nil, ErrInvitationNotFound
}

func (m *MemoryStorage) UpdateInvitation(ctx context.Context, inv *AdminInvitation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.invitations[inv.ID]
	if !ok || existing.TenantID() != inv.TenantID() {
		return ErrInvitationNotFound
	}
	m.invitations[inv.ID] = *inv
	return nil
}

var _ Storage = (*MemoryStorage)(nil)
