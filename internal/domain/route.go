package domain

// Represents one leg of a route.
// DistanceLY is the straight-line distance between From and To.
type Hop struct {
	From       string
	To         string
	DistanceLY float64
}

// Represents the ordered legs produced by a routing algorithm.
// The To of each hop is the From of the next one. A Route is planning
// data only and is not modified once built.
type Route struct {
	Start string
	Hops  []Hop
}

// Systems returns the visited systems in order, excluding the start.
func (r Route) Systems() []string {
	out := make([]string, 0, len(r.Hops))
	for _, h := range r.Hops {
		out = append(out, h.To)
	}
	return out
}

// TotalDistance sums hop distances in route order.
func (r Route) TotalDistance() float64 {
	total := 0.0
	for _, h := range r.Hops {
		total += h.DistanceLY
	}
	return total
}
