package physics

import "gonum.org/v1/gonum/spatial/r2"

// Vec is a 2-D vector in world units.
type Vec = r2.Vec

// V is shorthand for Vec{X: x, Y: y}.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Perp returns v rotated by +90°.
func Perp(v Vec) Vec {
	return Vec{X: -v.Y, Y: v.X}
}

// normalBetween returns the unit vector pointing from a to b. Below eps the direction
// is meaningless, so +X is used; callers get a deterministic push-apart axis instead of NaN.
func normalBetween(a, b *Body, distance, eps float64) Vec {
	if distance < eps || distance == 0 {
		return Vec{X: 1}
	}
	return r2.Scale(1/distance, a.Displacement(b))
}
