package physics

import (
	"fmt"

	"orbits/internal/orbit"

	"github.com/jinzhu/copier"
	"gonum.org/v1/gonum/spatial/r2"
)

// FrameStats summarises one call to World.Step.
type FrameStats struct {
	Bodies     int // population after the frame
	Collisions int // pairs accepted by the resolver
	Merges     int // bodies absorbed (inelastic policy only)

	// Penetration is the total remaining overlap after relaxation, before merging.
	Penetration float64
}

// World owns a body population and runs one frame per Step: all-pairs gravity with
// collision detection, integration, optional relaxation passes and, under the inelastic
// policy, merging and compaction.
type World struct {
	cfg      Config
	bodies   []*Body
	resolver *CollisionResolver
	saved    []*Body
	frame    uint64
}

// NewWorld returns an empty world. cfg must pass Validate.
func NewWorld(cfg Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &World{cfg: cfg, resolver: NewCollisionResolver(0)}, nil
}

// Config returns the active configuration.
func (w *World) Config() Config {
	return w.cfg
}

// SetConfig swaps the configuration; it takes effect on the next Step.
func (w *World) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	w.cfg = cfg
	return nil
}

// Bodies returns the live population. Order is stable between frames except for bodies
// removed by merging.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// Len returns the number of bodies.
func (w *World) Len() int {
	return len(w.bodies)
}

// Frame returns how many frames have been stepped.
func (w *World) Frame() uint64 {
	return w.frame
}

// AddBody appends a body to the world.
func (w *World) AddBody(b *Body) {
	w.AddBodies(b)
}

// AddBodies appends bodies in order.
func (w *World) AddBodies(bs ...*Body) {
	w.bodies = append(w.bodies, bs...)
	w.resolver.Resize(len(w.bodies))
}

// Spawn creates a body with density-derived mass and adds it.
func (w *World) Spawn(pos, vel Vec, radius float64) (*Body, error) {
	b, err := NewBody(pos, vel, radius, w.cfg.Density)
	if err != nil {
		return nil, err
	}
	w.AddBody(b)
	return b, nil
}

// SpawnSatellite adds a body on a circular orbit around bodies[host] at the given distance
// and angle (radians).
func (w *World) SpawnSatellite(host int, distance, angle, radius float64, clockwise bool) (*Body, error) {
	if host < 0 || host >= len(w.bodies) {
		return nil, fmt.Errorf("physics: no host body at index %d (population %d)", host, len(w.bodies))
	}
	h := w.bodies[host]
	pos, vel := orbit.Satellite(h.Position, h.Velocity, w.cfg.G, h.Mass, distance, angle, clockwise)
	return w.Spawn(pos, vel, radius)
}

// Largest returns the index of the heaviest body, or -1 when the world is empty.
func (w *World) Largest() int {
	best := -1
	for i, b := range w.bodies {
		if best < 0 || b.Mass > w.bodies[best].Mass {
			best = i
		}
	}
	return best
}

// Clear removes every body.
func (w *World) Clear() {
	w.bodies = nil
	w.resolver.Resize(0)
}

// Snapshot deep-copies the current population so Restore can return to it.
func (w *World) Snapshot() error {
	var saved []*Body
	if err := copier.CopyWithOption(&saved, &w.bodies, copier.Option{DeepCopy: true}); err != nil {
		return fmt.Errorf("physics: snapshot: %w", err)
	}
	w.saved = saved
	return nil
}

// Restore replaces the population with a fresh copy of the last snapshot.
func (w *World) Restore() error {
	var bodies []*Body
	if err := copier.CopyWithOption(&bodies, &w.saved, copier.Option{DeepCopy: true}); err != nil {
		return fmt.Errorf("physics: restore: %w", err)
	}
	w.bodies = bodies
	w.resolver.Resize(len(bodies))
	return nil
}

// Momentum returns the total momentum of the population.
func (w *World) Momentum() Vec {
	var p Vec
	for _, b := range w.bodies {
		p = r2.Add(p, b.Momentum())
	}
	return p
}

// KineticEnergy returns the total kinetic energy of the population.
func (w *World) KineticEnergy() float64 {
	var e float64
	for _, b := range w.bodies {
		e += b.KineticEnergy()
	}
	return e
}

// Step advances the world by dt.
//
// For every pair i<j the gravitational force is applied symmetrically and the distance is
// passed to the resolver. Under the elastic policy an accepted pair is bounced right away;
// under the inelastic policy it is only recorded and merged after integration, so indices
// stay valid for the whole scan. Coincident pairs (closer than Epsilon) skip the force.
func (w *World) Step(dt float64) (FrameStats, error) {
	cfg := w.cfg
	bodies := w.bodies
	var stats FrameStats

	if w.resolver.Len() != len(bodies) {
		w.resolver.Resize(len(bodies))
	}

	for i := 0; i < len(bodies); i++ {
		a := bodies[i]
		for j := i + 1; j < len(bodies); j++ {
			b := bodies[j]
			force, distance := a.ForceWith(b, cfg.G)
			if distance >= cfg.Epsilon {
				a.ApplyForce(force)
				b.ApplyForce(r2.Scale(-1, force))
			}
			if !w.resolver.ProcessPair(i, j, a, b, distance) {
				continue
			}
			stats.Collisions++
			if cfg.Policy == PolicyElastic {
				ResolveElastic(a, b, distance, cfg)
			}
		}
	}

	for _, b := range bodies {
		b.Step(dt)
		if cfg.Walls != nil {
			cfg.Walls.Contain(b)
		}
	}

	for p := 0; p < cfg.RelaxationPasses; p++ {
		if Relax(bodies) == 0 {
			break
		}
	}
	stats.Penetration = TotalPenetration(bodies)

	if cfg.Policy == PolicyInelastic {
		merged, err := w.resolver.ApplyCollisions(bodies)
		if err != nil {
			return stats, err
		}
		stats.Merges = len(bodies) - len(merged)
		w.bodies = merged
	}

	w.resolver.Clear()
	if w.resolver.Len() != len(w.bodies) {
		w.resolver.Resize(len(w.bodies))
	}
	w.frame++
	stats.Bodies = len(w.bodies)
	return stats, nil
}
