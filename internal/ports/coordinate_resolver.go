package ports

import (
	"context"
	"exobio-route-sorter/internal/domain"
)

// Contract for obtaining the galactic position of a star system.
type CoordinateResolver interface {
	// Return the position of the named system. Any error is a resolution
	// failure for that system.
	Resolve(ctx context.Context, system string) (domain.Position, error)
}
