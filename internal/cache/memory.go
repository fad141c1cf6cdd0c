package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jekabolt/retail-dashboard/internal/entity"
)

type memoryEntry struct {
	product  entity.Product
	cachedAt time.Time
}

// MemoryCache is an in-process product cache with a fixed TTL.
type MemoryCache struct {
	ttl   time.Duration
	now   func() time.Time
	cache map[int]memoryEntry
	mutex sync.RWMutex
}

func NewMemory(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:   ttl,
		now:   time.Now,
		cache: make(map[int]memoryEntry),
	}
}

func (c *MemoryCache) Get(_ context.Context, id int) (*entity.Product, bool, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	e, ok := c.cache[id]
	if !ok || c.now().Sub(e.cachedAt) >= c.ttl {
		return nil, false, nil
	}
	prd := e.product
	return &prd, true, nil
}

func (c *MemoryCache) Set(_ context.Context, prd entity.Product) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.cache[prd.Id] = memoryEntry{product: prd, cachedAt: c.now()}
	return nil
}

func (c *MemoryCache) Invalidate(_ context.Context, id int) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	delete(c.cache, id)
	return nil
}

func (c *MemoryCache) Flush(_ context.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.cache = make(map[int]memoryEntry)
	return nil
}
