// Package orbit holds the pure helpers used when placing bodies in a scenario:
// sphere volume/radius conversions at a fixed density and circular-orbit launch
// velocities. Nothing here is called while stepping.
package orbit

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// VolumeOfSphere returns (4/3)πr³.
func VolumeOfSphere(radius float64) float64 {
	return 4.0 / 3.0 * math.Pi * radius * radius * radius
}

// RadiusOfSphere is the inverse of VolumeOfSphere.
func RadiusOfSphere(volume float64) float64 {
	return math.Cbrt(3 * volume / (4 * math.Pi))
}

// MassOfSphere returns the mass of a sphere of the given radius at constant density.
func MassOfSphere(radius, density float64) float64 {
	return density * VolumeOfSphere(radius)
}

// CircularOrbitSpeed returns the speed a satellite needs to stay on a circular orbit
// of the given radius around a fixed host: centripetal force equals gravity, so
// v = sqrt(G·M/r).
func CircularOrbitSpeed(g, hostMass, radius float64) float64 {
	return math.Sqrt(g * hostMass / radius)
}

// Components splits a magnitude at angle (radians, counter-clockwise from +X) into X/Y.
func Components(magnitude, angle float64) r2.Vec {
	return r2.Vec{X: magnitude * math.Cos(angle), Y: magnitude * math.Sin(angle)}
}

// Satellite returns the position and velocity for a body orbiting a host at distance
// and angle. The tangential speed is added on top of the host's own velocity so the
// pair keeps moving together. clockwise flips the direction of travel.
func Satellite(hostPos, hostVel r2.Vec, g, hostMass, distance, angle float64, clockwise bool) (pos, vel r2.Vec) {
	pos = r2.Add(hostPos, Components(distance, angle))
	tangent := angle + math.Pi/2
	if clockwise {
		tangent = angle - math.Pi/2
	}
	vel = r2.Add(hostVel, Components(CircularOrbitSpeed(g, hostMass, distance), tangent))
	return pos, vel
}
