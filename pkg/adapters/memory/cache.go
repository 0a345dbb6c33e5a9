package memory

import (
	"context"
	"sync"

	"github.com/aretw0/bpmnpath/pkg/domain"
)

// Cache implements ports.DefinitionCache in memory.
// Safe for concurrent use.
type Cache struct {
	data map[string]domain.Definition
	mu   sync.RWMutex
}

// NewCache creates a new in-memory cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]domain.Definition),
	}
}

// Get returns a copy of the cached definition.
func (c *Cache) Get(ctx context.Context, key string) (*domain.Definition, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	def, ok := c.data[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return &def, nil
}

// Put stores a copy of def.
func (c *Cache) Put(ctx context.Context, key string, def *domain.Definition) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = *def
	return nil
}

// Delete removes key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

// Len returns the number of cached definitions.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
