package physics

import (
	"orbits/internal/orbit"

	"gonum.org/v1/gonum/spatial/r2"
)

// Merge folds src into dst: masses add, velocity conserves momentum, position moves to the
// centre of mass and the radius grows to hold both volumes at constant density. Pending
// force is carried over so the merged body still feels this frame's pull.
// src is left untouched; the caller drops it from the population.
func Merge(dst, src *Body) {
	total := dst.Mass + src.Mass
	inv := 1 / total
	dst.Velocity = r2.Scale(inv, r2.Add(r2.Scale(dst.Mass, dst.Velocity), r2.Scale(src.Mass, src.Velocity)))
	dst.Position = r2.Scale(inv, r2.Add(r2.Scale(dst.Mass, dst.Position), r2.Scale(src.Mass, src.Position)))
	dst.Radius = orbit.RadiusOfSphere(orbit.VolumeOfSphere(dst.Radius) + orbit.VolumeOfSphere(src.Radius))
	dst.Force = r2.Add(dst.Force, src.Force)
	dst.Mass = total
}
