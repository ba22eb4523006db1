package services

import (
	"context"
	"exobio-route-sorter/internal/domain"
	"exobio-route-sorter/internal/ports"
)

// RunCache memoizes resolved positions for the lifetime of one route run.
//
// Successful lookups are kept until the cache is dropped; failures are never
// stored. A RunCache belongs to a single run and is not safe for concurrent use.
type RunCache struct {
	resolver  ports.CoordinateResolver
	positions map[string]domain.Position
	lookups   int
}

func NewRunCache(resolver ports.CoordinateResolver) *RunCache {
	return &RunCache{
		resolver:  resolver,
		positions: make(map[string]domain.Position),
	}
}

// GetOrResolve returns the cached position for system, resolving it on a miss.
func (c *RunCache) GetOrResolve(ctx context.Context, system string) (domain.Position, error) {
	if p, ok := c.positions[system]; ok {
		return p, nil
	}

	c.lookups++
	p, err := c.resolver.Resolve(ctx, system)
	if err != nil {
		return domain.Position{}, err
	}

	c.positions[system] = p
	return p, nil
}

// Lookups reports how many times the underlying resolver was called.
func (c *RunCache) Lookups() int { return c.lookups }

// Len reports how many positions are cached.
func (c *RunCache) Len() int { return len(c.positions) }
