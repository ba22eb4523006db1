package ports

import (
	"context"
	"exobio-route-sorter/internal/domain"
)

// Optional persistent memo of system positions shared across runs.
type CoordinateStore interface {
	// Return cached positions for the given systems. Misses are omitted.
	GetMany(ctx context.Context, systems []string) (map[string]domain.Position, error)
	// Store system -> position mappings.
	PutMany(ctx context.Context, positions map[string]domain.Position) error
}
