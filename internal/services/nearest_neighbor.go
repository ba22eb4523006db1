package services

import (
	"context"
	"errors"
	"exobio-route-sorter/internal/domain"
	"fmt"
	"log"
	"math"
)

// GreedyResult is the outcome of one greedy route construction.
type GreedyResult struct {
	Route domain.Route

	// Discarded lists targets dropped after a failed lookup, in discard order.
	Discarded []string

	// Exhausted is set when the builder stopped because a full scan found no
	// resolvable target.
	Exhausted bool
}

// Build a route through targets using a greedy nearest-neighbor algorithm.
//
// Each round scans every unvisited target, resolving positions lazily through
// the run cache, and moves to the closest one. A target whose position cannot
// be resolved is dropped on the spot and never retried. Ties go to the target
// that appears first in input order, so equal inputs always give equal routes.
// The algorithm does not attempt global route optimization.
func BuildGreedyRoute(
	ctx context.Context,
	cache *RunCache,
	start string,
	startPos domain.Position,
	targets []string,
) (*GreedyResult, error) {
	if start == "" {
		return nil, errors.New("build route: start must be non-empty")
	}
	if cache == nil {
		return nil, errors.New("build route: cache must be non-nil")
	}

	unvisited := append([]string(nil), targets...)

	currentName := start
	currentPos := startPos

	res := &GreedyResult{
		Route: domain.Route{Start: start, Hops: make([]domain.Hop, 0, len(targets))},
	}

	for len(unvisited) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("build route: %w", err)
		}

		bestIdx := -1
		bestDistance := math.Inf(1)
		var bestPos domain.Position

		// Compact unvisited in place while scanning: failed targets are dropped.
		kept := unvisited[:0]
		for _, name := range unvisited {
			pos, err := cache.GetOrResolve(ctx, name)
			if err != nil {
				log.Printf("warning: skipping system %q due to missing coordinates: %v", name, err)
				res.Discarded = append(res.Discarded, name)
				continue
			}
			kept = append(kept, name)

			// Strict comparison: the first of equally close targets wins.
			d := domain.Distance(currentPos, pos)
			if d < bestDistance {
				bestIdx = len(kept) - 1
				bestDistance = d
				bestPos = pos
			}
		}
		unvisited = kept

		if bestIdx < 0 {
			res.Exhausted = true
			log.Printf("warning: all remaining systems failed coordinate lookup; route calculation incomplete")
			break
		}

		bestName := unvisited[bestIdx]
		res.Route.Hops = append(res.Route.Hops, domain.Hop{
			From:       currentName,
			To:         bestName,
			DistanceLY: bestDistance,
		})

		currentName = bestName
		currentPos = bestPos
		unvisited = append(unvisited[:bestIdx], unvisited[bestIdx+1:]...)
	}

	return res, nil
}
