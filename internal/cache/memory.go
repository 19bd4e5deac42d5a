package cache

import (
	"context"
	"sync"

	"github.com/i474232898/conditions/internal/weather"
)

// MemoryCache is a concurrency-safe in-process weather.Cache. The serve
// command layers it over the SQLite cache.
type MemoryCache struct {
	mu sync.RWMutex

	// key: postal code
	data map[string]weather.Location

	next weather.Cache
}

var _ weather.Cache = (*MemoryCache)(nil)

// NewMemoryCache creates an empty cache. If next is non-nil, misses fall
// through to it and writes go to both.
func NewMemoryCache(next weather.Cache) *MemoryCache {
	return &MemoryCache{
		data: make(map[string]weather.Location),
		next: next,
	}
}

func (c *MemoryCache) Get(ctx context.Context, postalCode string) (weather.Location, bool, error) {
	c.mu.RLock()
	loc, ok := c.data[postalCode]
	c.mu.RUnlock()
	if ok || c.next == nil {
		return loc, ok, nil
	}

	loc, ok, err := c.next.Get(ctx, postalCode)
	if err != nil || !ok {
		return weather.Location{}, false, err
	}

	c.mu.Lock()
	c.data[postalCode] = loc
	c.mu.Unlock()
	return loc, true, nil
}

func (c *MemoryCache) Set(ctx context.Context, loc weather.Location) error {
	if c.next != nil {
		if err := c.next.Set(ctx, loc); err != nil {
			return err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[loc.PostalCode] = loc
	return nil
}

// Len reports the number of entries held in memory.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
