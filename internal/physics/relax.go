package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Relax runs one overlap-correction pass over every pair, separating each overlapping
// pair in scan order. Only positions change. Returns the penetration removed.
func Relax(bodies []*Body) float64 {
	var removed float64
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			removed += Separate(bodies[i], bodies[j])
		}
	}
	return removed
}

// TotalPenetration sums max(0, r₁+r₂-d) over all pairs.
func TotalPenetration(bodies []*Body) float64 {
	var total float64
	for i := 0; i < len(bodies); i++ {
		a := bodies[i]
		for j := i + 1; j < len(bodies); j++ {
			b := bodies[j]
			total += math.Max(0, a.Radius+b.Radius-r2.Norm(a.Displacement(b)))
		}
	}
	return total
}
