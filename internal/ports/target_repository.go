package ports

import (
	"context"
	"exobio-route-sorter/internal/domain"
)

// Port: a boundary for retrieving the systems to route through.
type TargetRepository interface {
	// Retrieve all targets in input order.
	ListTargets(ctx context.Context) ([]domain.Target, error)
}
