package domain

import "math"

// Immutable galactic position of a star system, in light-years.
type Position struct {
	X float64
	Y float64
	Z float64
}

// Distance returns the straight-line 3D distance between two positions.
func Distance(a, b Position) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
