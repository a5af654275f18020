package cache

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"pkp_monitor_backend/internals/features/penilaian/indicators/model"
)

// MemoryCatalogCache: pengganti Redis di unit test.
type MemoryCatalogCache struct {
	mu    sync.RWMutex
	items map[uuid.UUID][]model.CatalogItem
}

func NewMemoryCatalogCache() *MemoryCatalogCache {
	return &MemoryCatalogCache{items: make(map[uuid.UUID][]model.CatalogItem)}
}

func (c *MemoryCatalogCache) Get(_ context.Context, bundleID uuid.UUID) ([]model.CatalogItem, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	items, ok := c.items[bundleID]
	return items, ok, nil
}

func (c *MemoryCatalogCache) Set(_ context.Context, bundleID uuid.UUID, items []model.CatalogItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[bundleID] = items
	return nil
}

func (c *MemoryCatalogCache) Invalidate(_ context.Context, bundleID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, bundleID)
	return nil
}
