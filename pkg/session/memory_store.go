package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory session store for tests and single-process
// deployments.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	stop     chan struct{}
	once     sync.Once
}

// NewMemoryStore creates a memory store sweeping expired sessions at the
// given interval (a default interval when zero).
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	if cleanupInterval <= 0 {
		cleanupInterval = defaultCleanupInterval
	}
	s := &MemoryStore{
		sessions: make(map[string]*Session),
		stop:     make(chan struct{}),
	}
	go s.sweep(cleanupInterval)
	return s
}

func (s *MemoryStore) Create(ctx context.Context, session *Session) error {
	s.mu.Lock()
	s.sessions[session.Token] = cloneSession(session)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.IsExpired() {
		_ = s.Delete(ctx, token)
		return nil, ErrSessionExpired
	}
	return cloneSession(session), nil
}

func (s *MemoryStore) Update(ctx context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[session.Token]; !ok {
		return ErrSessionNotFound
	}
	s.sessions[session.Token] = cloneSession(session)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) DeleteExpired(ctx context.Context) error {
	now := time.Now()
	s.mu.Lock()
	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
	s.mu.Unlock()
	return nil
}

// Close stops the background sweeper.
func (s *MemoryStore) Close() error {
	s.once.Do(func() { close(s.stop) })
	return nil
}

func (s *MemoryStore) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			_ = s.DeleteExpired(context.Background())
		case <-s.stop:
			return
		}
	}
}

// cloneSession copies a session so callers cannot mutate stored state
// without going through Update.
func cloneSession(in *Session) *Session {
	out := *in
	if in.Data != nil {
		out.Data = make(map[string]any, len(in.Data))
		for k, v := range in.Data {
			out.Data[k] = v
		}
	}
	if in.UserID != nil {
		id := *in.UserID
		out.UserID = &id
	}
	if in.TenantID != nil {
		id := *in.TenantID
		out.TenantID = &id
	}
	return &out
}
