package cache

import (
	"context"
	"exobio-route-sorter/internal/domain"
	"exobio-route-sorter/internal/ports"
	"log"
)

// StoredResolver puts a persistent CoordinateStore in front of a resolver.
//
// Star positions never change, so a stored position is as good as a fresh
// lookup and costs no external call. Store failures never turn into
// resolution failures: reads fall through to the resolver and writes are
// only logged.
type StoredResolver struct {
	next  ports.CoordinateResolver
	store ports.CoordinateStore
}

func NewStoredResolver(next ports.CoordinateResolver, store ports.CoordinateStore) *StoredResolver {
	return &StoredResolver{next: next, store: store}
}

func (s *StoredResolver) Resolve(ctx context.Context, system string) (domain.Position, error) {
	if s.store != nil {
		hits, err := s.store.GetMany(ctx, []string{system})
		if err != nil {
			log.Printf("coordinate store read failed system=%q: %v", system, err)
		} else if p, ok := hits[system]; ok {
			return p, nil
		}
	}

	p, err := s.next.Resolve(ctx, system)
	if err != nil {
		return domain.Position{}, err
	}

	if s.store != nil {
		if err := s.store.PutMany(ctx, map[string]domain.Position{system: p}); err != nil {
			log.Printf("coordinate store write failed system=%q: %v", system, err)
		}
	}

	return p, nil
}
