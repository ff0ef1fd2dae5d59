package physics

import (
	"errors"
	"fmt"

	"orbits/internal/orbit"

	"gonum.org/v1/gonum/spatial/r2"
)

var (
	// ErrNonPositiveMass is returned when a body would be created with mass <= 0.
	ErrNonPositiveMass = errors.New("physics: mass must be positive")
	// ErrNonPositiveRadius is returned when a body would be created with radius <= 0.
	ErrNonPositiveRadius = errors.New("physics: radius must be positive")
)

// Body is a point mass with a circular footprint. Radius is both the collision and the
// drawn extent. Force accumulates between steps and is cleared by Step.
type Body struct {
	Position Vec
	Velocity Vec
	Force    Vec
	Mass     float64
	Radius   float64
}

// NewBody returns a body whose mass is derived from its radius at the given density,
// as if it were a sphere.
func NewBody(pos, vel Vec, radius, density float64) (*Body, error) {
	if !(radius > 0) {
		return nil, fmt.Errorf("%w: got %v", ErrNonPositiveRadius, radius)
	}
	return NewBodyWithMass(pos, vel, radius, orbit.MassOfSphere(radius, density))
}

// NewBodyWithMass returns a body with an explicit mass. Non-positive mass or radius is
// rejected rather than clamped.
func NewBodyWithMass(pos, vel Vec, radius, mass float64) (*Body, error) {
	if !(radius > 0) {
		return nil, fmt.Errorf("%w: got %v", ErrNonPositiveRadius, radius)
	}
	if !(mass > 0) {
		return nil, fmt.Errorf("%w: got %v", ErrNonPositiveMass, mass)
	}
	return &Body{Position: pos, Velocity: vel, Mass: mass, Radius: radius}, nil
}

// Displacement returns the vector from b to other.
func (b *Body) Displacement(other *Body) Vec {
	return r2.Sub(other.Position, b.Position)
}

// ForceWith returns the gravitational pull of other on b and the distance between their
// centres. The distance is handed on to collision detection so it is only computed once.
// Coincident bodies get a zero force instead of an infinite one.
func (b *Body) ForceWith(other *Body, g float64) (force Vec, distance float64) {
	disp := b.Displacement(other)
	distance = r2.Norm(disp)
	if distance == 0 {
		return Vec{}, 0
	}
	return r2.Scale(g*b.Mass*other.Mass/(distance*distance*distance), disp), distance
}

// ApplyForce adds delta to the accumulated force. Keeping Newton's third law is up to the
// caller: apply +f to one body and -f to the other.
func (b *Body) ApplyForce(delta Vec) {
	b.Force = r2.Add(b.Force, delta)
}

// Step integrates with semi-implicit Euler (velocity first, then position from the new
// velocity) and clears the accumulated force. dt is not clamped.
func (b *Body) Step(dt float64) {
	b.Velocity = r2.Add(b.Velocity, r2.Scale(dt/b.Mass, b.Force))
	b.Position = r2.Add(b.Position, r2.Scale(dt, b.Velocity))
	b.Force = Vec{}
}

// Overlaps reports whether the bodies intersect, given the distance between centres.
func (b *Body) Overlaps(other *Body, distance float64) bool {
	return distance < b.Radius+other.Radius
}

// Momentum returns m·v.
func (b *Body) Momentum() Vec {
	return r2.Scale(b.Mass, b.Velocity)
}

// KineticEnergy returns ½·m·|v|².
func (b *Body) KineticEnergy() float64 {
	return 0.5 * b.Mass * r2.Norm2(b.Velocity)
}
