package cache

import (
	"context"
	"exobio-route-sorter/internal/domain"
	"exobio-route-sorter/internal/ports"

	"golang.org/x/sync/singleflight"
)

// SharedResolver coalesces concurrent lookups of the same system into one
// underlying call. It holds no results once the call returns; per-run
// memoization stays with the caller.
type SharedResolver struct {
	next  ports.CoordinateResolver
	group singleflight.Group
}

func NewSharedResolver(next ports.CoordinateResolver) *SharedResolver {
	return &SharedResolver{next: next}
}

// Resolve joins or starts the shared lookup for system. The shared call is
// detached from any single caller's cancellation; each caller stops waiting
// when its own ctx is done.
func (s *SharedResolver) Resolve(ctx context.Context, system string) (domain.Position, error) {
	ch := s.group.DoChan(system, func() (any, error) {
		return s.next.Resolve(context.WithoutCancel(ctx), system)
	})

	select {
	case <-ctx.Done():
		return domain.Position{}, &domain.ResolutionError{System: system, Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			return domain.Position{}, res.Err
		}
		return res.Val.(domain.Position), nil
	}
}
