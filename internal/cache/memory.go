package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache keeps stamps for the lifetime of the process.
type MemoryCache struct {
	mu    sync.RWMutex
	items map[string]entry
}

// NewMemoryCache creates an empty in-memory stamp cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		items: make(map[string]entry),
	}
}

// Get retrieves a stamp. Expired stamps report a miss.
func (m *MemoryCache) Get(ctx context.Context, key string) (Stamp, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.items[key]
	if !ok || e.expired() {
		return Stamp{}, false
	}

	return e.Stamp, true
}

// Set stores a stamp with the given TTL.
func (m *MemoryCache) Set(ctx context.Context, key string, stamp Stamp, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[key] = entry{
		Stamp:     stamp,
		ExpiresAt: time.Now().Add(ttl),
	}
}

// Delete removes a stamp.
func (m *MemoryCache) Delete(ctx context.Context, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, key)
}

// Clear removes all stamps.
func (m *MemoryCache) Clear(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = make(map[string]entry)
}

// Len returns the number of stored stamps (including expired).
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.items)
}

// Cleanup removes expired stamps.
func (m *MemoryCache) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for key, e := range m.items {
		if now.After(e.ExpiresAt) {
			delete(m.items, key)
		}
	}
}

var _ Cache = (*MemoryCache)(nil)
