package cache

import (
	"context"
	"sync"
)

// MemoryCache is the in-process fallback used when no redis address is
// configured.
type MemoryCache struct {
	mu       sync.RWMutex
	snapshot *Snapshot
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

func (m *MemoryCache) Get(context.Context) (*Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.snapshot == nil {
		return nil, ErrCacheMiss
	}
	copied := *m.snapshot
	return &copied, nil
}

func (m *MemoryCache) Set(_ context.Context, snapshot *Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *snapshot
	m.snapshot = &copied
	return nil
}

func (m *MemoryCache) Delete(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot = nil
	return nil
}
