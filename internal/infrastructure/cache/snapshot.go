package cache

import (
	"context"
	"sync"
)

// InMemorySnapshot is a process-local read-through cache for one listing.
// It is safe for concurrent use but not coherent across processes; every
// write path of the cached entity must call Invalidate synchronously.
type InMemorySnapshot[T any] struct {
	mu    sync.RWMutex
	value T
	valid bool
}

// NewInMemorySnapshot creates an empty, invalid snapshot cache
func NewInMemorySnapshot[T any]() *InMemorySnapshot[T] {
	return &InMemorySnapshot[T]{}
}

// Get returns the cached value, loading it through the loader if the cache
// is invalid. A failed load leaves the cache invalid.
func (c *InMemorySnapshot[T]) Get(ctx context.Context, load func(ctx context.Context) (T, error)) (T, error) {
	c.mu.RLock()
	if c.valid {
		value := c.value
		c.mu.RUnlock()
		return value, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid {
		return c.value, nil
	}

	value, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	c.value = value
	c.valid = true
	return value, nil
}

// Invalidate drops the cached value
func (c *InMemorySnapshot[T]) Invalidate() {
	c.mu.Lock()
	c.valid = false
	var zero T
	c.value = zero
	c.mu.Unlock()
}
