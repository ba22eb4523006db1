package services

import (
	"context"
	"errors"
	"exobio-route-sorter/internal/domain"
	"exobio-route-sorter/internal/ports"
	"fmt"
	"strings"
)

var (
	ErrEmptyStart      = errors.New("starting system cannot be empty")
	ErrNoTargets       = errors.New("no target systems available")
	ErrStartUnresolved = errors.New("could not fetch coordinates for starting system")
)

// RouteSummary is everything a report needs about one sorted run.
type RouteSummary struct {
	Start           string
	StartPosition   domain.Position
	Targets         []domain.Target
	Annotations     map[string]string
	Route           domain.Route
	Discarded       []string
	Exhausted       bool
	TotalTargets    int
	IncludedSystems int
	TotalDistance   float64

	// Lookups is the number of resolver calls made during the run.
	Lookups int
}

// SortTargets loads the targets, anchors the run at start and orders the
// targets with BuildGreedyRoute.
//
// The run aborts before any coordinate lookup when start is blank or no
// targets are available, and before routing when start cannot be resolved.
// Target lookup failures only shorten the route.
func SortTargets(
	ctx context.Context,
	repo ports.TargetRepository,
	resolver ports.CoordinateResolver,
	start string,
) (*RouteSummary, error) {
	start = strings.TrimSpace(start)
	if start == "" {
		return nil, fmt.Errorf("sort targets: %w", ErrEmptyStart)
	}

	targets, err := repo.ListTargets(ctx)
	if err != nil {
		return nil, fmt.Errorf("sort targets: %w: %w", ErrNoTargets, err)
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("sort targets: %w", ErrNoTargets)
	}

	cache := NewRunCache(resolver)

	// The start goes through the run cache too, so a start that is also a
	// target is looked up once.
	startPos, err := cache.GetOrResolve(ctx, start)
	if err != nil {
		return nil, fmt.Errorf("sort targets: %w %q: %w", ErrStartUnresolved, start, err)
	}

	names := make([]string, 0, len(targets))
	for _, t := range targets {
		names = append(names, t.System)
	}

	res, err := BuildGreedyRoute(ctx, cache, start, startPos, names)
	if err != nil {
		return nil, fmt.Errorf("sort targets: %w", err)
	}

	return &RouteSummary{
		Start:           start,
		StartPosition:   startPos,
		Targets:         targets,
		Annotations:     domain.AnnotationMap(targets),
		Route:           res.Route,
		Discarded:       res.Discarded,
		Exhausted:       res.Exhausted,
		TotalTargets:    len(targets),
		IncludedSystems: len(res.Route.Hops),
		TotalDistance:   res.Route.TotalDistance(),
		Lookups:         cache.Lookups(),
	}, nil
}
