package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Separate pushes an overlapping pair apart along the line between their centres, each
// by half the penetration depth, leaving them exactly tangent. Velocities are untouched.
// Returns the penetration that was removed (0 if the pair did not overlap).
func Separate(a, b *Body) float64 {
	distance := r2.Norm(a.Displacement(b))
	return separateAlong(a, b, normalBetween(a, b, distance, DefaultEpsilon), distance)
}

func separateAlong(a, b *Body, n Vec, distance float64) float64 {
	depth := a.Radius + b.Radius - distance
	if depth <= 0 {
		return 0
	}
	half := r2.Scale(depth/2, n)
	a.Position = r2.Sub(a.Position, half)
	b.Position = r2.Add(b.Position, half)
	return depth
}

// ResolveElastic bounces an overlapping pair. distance is the centre distance measured in
// the gravity pass. The contact normal is taken once, before anything moves, and reused
// for the overlap correction, the normal impulse and friction.
//
// The normal impulse is the two-body elastic exchange scaled by cfg.Damping. Pairs that
// are already moving apart get no impulse, only the correction. Friction opposes the
// relative sliding along the tangent with magnitude cfg.Friction·|Jn|, never more than
// what stops the sliding outright.
func ResolveElastic(a, b *Body, distance float64, cfg Config) {
	n := normalBetween(a, b, distance, cfg.Epsilon)
	contact := a.Radius + b.Radius
	separateAlong(a, b, n, distance)

	rel := r2.Sub(b.Velocity, a.Velocity)
	vn := r2.Dot(rel, n)
	if vn > 0 {
		return
	}

	k := 1.0
	if cfg.Contact == ContactResting {
		ratio := math.Min(distance, contact) / contact
		k = ratio * ratio
	}
	total := a.Mass + b.Mass
	scale := vn * k * cfg.Damping
	dvA := r2.Scale(2*b.Mass/total*scale, n)
	dvB := r2.Scale(-2*a.Mass/total*scale, n)
	a.Velocity = r2.Add(a.Velocity, dvA)
	b.Velocity = r2.Add(b.Velocity, dvB)

	if cfg.Friction <= 0 {
		return
	}
	t := Perp(n)
	vt := r2.Dot(rel, t)
	if vt == 0 {
		return
	}
	jn := a.Mass * r2.Norm(dvA)
	reduced := a.Mass * b.Mass / total
	jt := math.Min(cfg.Friction*jn, math.Abs(vt)*reduced)
	dir := r2.Scale(math.Copysign(jt, vt), t)
	a.Velocity = r2.Add(a.Velocity, r2.Scale(1/a.Mass, dir))
	b.Velocity = r2.Sub(b.Velocity, r2.Scale(1/b.Mass, dir))
}
