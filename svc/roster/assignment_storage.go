package roster

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// AssignmentStorage persists team assignments. It is separate from the
// generic scoped stores because replace and swap must be atomic: an
// interrupted rebalance must never leave a game with a partial roster.
type AssignmentStorage interface {
	// ListForGame returns a game's assignments within the tenant partition.
	ListForGame(ctx context.Context, tenantID, gameID uuid.UUID) ([]*Assignment, error)

	// GetForPlayer returns the player's assignment for the game, or
	// ErrNotAssigned.
	GetForPlayer(ctx context.Context, tenantID, gameID, playerID uuid.UUID) (*Assignment, error)

	// ReplaceForGame atomically deletes the game's existing assignments and
	// inserts the new set. Either everything is applied or nothing is.
	ReplaceForGame(ctx context.Context, tenantID, gameID uuid.UUID, assignments []*Assignment) error

	// Update persists a single assignment change.
	Update(ctx context.Context, tenantID uuid.UUID, a *Assignment) error

	// SwapTeams atomically exchanges the team numbers of two assignments.
	SwapTeams(ctx context.Context, tenantID, firstID, secondID uuid.UUID) error

	// ListForPlayer returns all of a player's assignments across games.
	ListForPlayer(ctx context.Context, tenantID, playerID uuid.UUID) ([]*Assignment, error)

	// DeleteForGame removes all assignments of a game.
	DeleteForGame(ctx context.Context, tenantID, gameID uuid.UUID) (int, error)

	// DeleteForPlayer removes all assignments of a player.
	DeleteForPlayer(ctx context.Context, tenantID, playerID uuid.UUID) (int, error)
}

// MemoryAssignmentStorage is an in-memory AssignmentStorage for tests and
// local development. All operations are atomic under one mutex.
type MemoryAssignmentStorage struct {
	mu   sync.RWMutex
	rows map[uuid.UUID]Assignment
}

// NewMemoryAssignmentStorage creates an empty in-memory assignment storage.
func NewMemoryAssignmentStorage() *MemoryAssignmentStorage {
	return &MemoryAssignmentStorage{rows: make(map[uuid.UUID]Assignment)}
}

func (m *MemoryAssignmentStorage) ListForGame(ctx context.Context, tenantID, gameID uuid.UUID) ([]*Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*Assignment
	for _, a := range m.rows {
		if a.TenantID() == tenantID && a.GameID == gameID {
			a := a
			out = append(out, &a)
		}
	}
	return out, nil
}

func (m *MemoryAssignmentStorage) GetForPlayer(ctx context.Context, tenantID, gameID, playerID uuid.UUID) (*Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.rows {
		if a.TenantID() == tenantID && a.GameID == gameID && a.PlayerID == playerID {
			a := a
			return &a, nil
		}
	}
	return nil, ErrNotAssigned
}

func (m *MemoryAssignmentStorage) ReplaceForGame(ctx context.Context, tenantID, gameID uuid.UUID, assignments []*Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, a := range m.rows {
		if a.TenantID() == tenantID && a.GameID == gameID {
			delete(m.rows, id)
		}
	}
	for _, a := range assignments {
		m.rows[a.ID] = *a
	}
	return nil
}

func (m *MemoryAssignmentStorage) Update(ctx context.Context, tenantID uuid.UUID, a *Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.rows[a.ID]
	if !ok || existing.TenantID() != tenantID {
		return ErrNotAssigned
	}
	m.rows[a.ID] = *a
	return nil
}

func (m *MemoryAssignmentStorage) SwapTeams(ctx context.Context, tenantID, firstID, secondID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	first, ok := m.rows[firstID]
	if !ok || first.TenantID() != tenantID {
		return ErrNotAssigned
	}
	second, ok := m.rows[secondID]
	if !ok || second.TenantID() != tenantID {
		return ErrNotAssigned
	}
	first.TeamNumber, second.TeamNumber = second.TeamNumber, first.TeamNumber
	m.rows[firstID] = first
	m.rows[secondID] = second
	return nil
}

func (m *MemoryAssignmentStorage) ListForPlayer(ctx context.Context, tenantID, playerID uuid.UUID) ([]*Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*Assignment
	for _, a := range m.rows {
		if a.TenantID() == tenantID && a.PlayerID == playerID {
			a := a
			out = append(out, &a)
		}
	}
	return out, nil
}

func (m *MemoryAssignmentStorage) DeleteForGame(ctx context.Context, tenantID, gameID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, a := range m.rows {
		if a.TenantID() == tenantID && a.GameID == gameID {
			delete(m.rows, id)
			n++
		}
	}
	return n, nil
}

func (m *MemoryAssignmentStorage) DeleteForPlayer(ctx context.Context, tenantID, playerID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, a := range m.rows {
		if a.TenantID() == tenantID && a.PlayerID == playerID {
			delete(m.rows, id)
			n++
		}
	}
	return n, nil
}

var _ AssignmentStorage = (*MemoryAssignmentStorage)(nil)
