package scope

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store implementation for tests and local
// development. Rows live in a single map across all tenants, which makes it
// a faithful stand-in for a shared table: only the mandatory tenant argument
// keeps partitions apart.
type MemoryStore[T Scoped] struct {
	mu   sync.RWMutex
	rows map[uuid.UUID]T
	key  func(T) uuid.UUID
}

// NewMemoryStore creates an in-memory store. The key function extracts the
// entity's primary key.
func NewMemoryStore[T Scoped](key func(T) uuid.UUID) *MemoryStore[T] {
	return &MemoryStore[T]{
		rows: make(map[uuid.UUID]T),
		key:  key,
	}
}

func (s *MemoryStore[T]) Get(ctx context.Context, tenantID, id uuid.UUID) (T, error) {
	var zero T
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.rows[id]
	if !ok || e.TenantID() != tenantID {
		// A row under another tenant answers exactly like a missing row.
		return zero, ErrNotFound
	}
	return e, nil
}

func (s *MemoryStore[T]) List(ctx context.Context, tenantID uuid.UUID) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []T
	for _, e := range s.rows {
		if e.TenantID() == tenantID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *MemoryStore[T]) Insert(ctx context.Context, e T) error {
	if e.TenantID() == uuid.Nil {
		return ErrNoTenant
	}
	s.mu.Lock()
	s.rows[s.key(e)] = e
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore[T]) Update(ctx context.Context, tenantID uuid.UUID, e T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.rows[s.key(e)]
	if !ok || current.TenantID() != tenantID {
		return ErrNotFound
	}
	s.rows[s.key(e)] = e
	return nil
}

func (s *MemoryStore[T]) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.rows[id]
	if !ok || e.TenantID() != tenantID {
		return ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

func (s *MemoryStore[T]) UpdateMatching(ctx context.Context, tenantID uuid.UUID, match func(T) bool, apply func(T)) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, e := range s.rows {
		if e.TenantID() == tenantID && match(e) {
			apply(e)
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore[T]) DeleteMatching(ctx context.Context, tenantID uuid.UUID, match func(T) bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, e := range s.rows {
		if e.TenantID() == tenantID && match(e) {
			delete(s.rows, id)
			n++
		}
	}
	return n, nil
}

var _ Store[Scoped] = (*MemoryStore[Scoped])(nil)
