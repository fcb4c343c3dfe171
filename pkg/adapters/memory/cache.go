package memory

import (
	"context"
	"sync"

	"github.com/aretw0/attlookup/pkg/domain"
)

// Cache implements ports.ResultCache in memory.
// Safe for concurrent use.
type Cache struct {
	data map[string][]domain.Result
	mu   sync.RWMutex
}

// NewCache creates a new in-memory cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]domain.Result),
	}
}

// Get returns a copy of the cached results.
func (c *Cache) Get(ctx context.Context, key string) ([]domain.Result, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	results, ok := c.data[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return cloneResults(results), nil
}

// Set stores a copy of results.
func (c *Cache) Set(ctx context.Context, key string, results []domain.Result) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = cloneResults(results)
	return nil
}

// Delete removes the entry.
func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

func cloneResults(in []domain.Result) []domain.Result {
	out := make([]domain.Result, len(in))
	for i, r := range in {
		out[i] = r
		if r.Tokens != nil {
			out[i].Tokens = append([]string(nil), r.Tokens...)
		}
	}
	return out
}
