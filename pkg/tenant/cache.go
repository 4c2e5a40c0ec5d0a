package tenant

import (
	"context"
	"sync"
	"time"
)

// Cache stores resolved tenants keyed by the identifier they were resolved
// from, so repeated requests skip the provider lookup.
type Cache interface {
	Get(ctx context.Context, key string) (*Tenant, bool)
	Set(ctx context.Context, key string, t *Tenant, ttl time.Duration)
	Delete(ctx context.Context, key string)
	Close() error
}

// DefaultCacheSize bounds the in-memory cache.
const DefaultCacheSize = 1000

type memCacheEntry struct {
	tenant    *Tenant
	expiresAt time.Time
}

type memCache struct {
	mu      sync.RWMutex
	entries map[string]memCacheEntry
	maxSize int
	stop    chan struct{}
	once    sync.Once
}

// NewInMemoryCache creates an in-memory tenant cache with background expiry.
func NewInMemoryCache() Cache {
	return NewInMemoryCacheWithSize(DefaultCacheSize)
}

// NewInMemoryCacheWithSize creates an in-memory tenant cache holding at most
// maxSize entries. When full, the entry closest to expiry is evicted.
func NewInMemoryCacheWithSize(maxSize int) Cache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	c := &memCache{
		entries: make(map[string]memCacheEntry),
		maxSize: maxSize,
		stop:    make(chan struct{}),
	}
	go c.expireLoop()
	return c
}

func (c *memCache) Get(ctx context.Context, key string) (*Tenant, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		c.Delete(ctx, key)
		return nil, false
	}
	return entry.tenant, true
}

func (c *memCache) Set(ctx context.Context, key string, t *Tenant, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		c.evictSoonest()
	}
	c.entries[key] = memCacheEntry{tenant: t, expiresAt: time.Now().Add(ttl)}
}

func (c *memCache) Delete(ctx context.Context, key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

func (c *memCache) Close() error {
	c.once.Do(func() { close(c.stop) })
	return nil
}

// evictSoonest removes the entry closest to expiry. Caller holds the lock.
func (c *memCache) evictSoonest() {
	var victim string
	var soonest time.Time
	for key, entry := range c.entries {
		if victim == "" || entry.expiresAt.Before(soonest) {
			victim = key
			soonest = entry.expiresAt
		}
	}
	if victim != "" {
		delete(c.entries, victim)
	}
}

func (c *memCache) expireLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for key, entry := range c.entries {
				if now.After(entry.expiresAt) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		case <-c.stop:
			return
		}
	}
}

// noopCache disables caching; every request hits the provider.
type noopCache struct{}

// NewNoopCache returns a cache that never stores anything. Useful in tests
// and when tenant records must always be fresh.
func NewNoopCache() Cache { return noopCache{} }

func (noopCache) Get(ctx context.Context, key string) (*Tenant, bool)               { return nil, false }
func (noopCache) Set(ctx context.Context, key string, t *Tenant, ttl time.Duration) {}
func (noopCache) Delete(ctx context.Context, key string)                            {}
func (noopCache) Close() error                                                      { return nil }
