package physics

import (
	"errors"
	"fmt"
)

// ErrPopulationMismatch means the resolver was sized for a different number of bodies
// than it was handed. Resize after every spawn, clear or merge.
var ErrPopulationMismatch = errors.New("physics: resolver population mismatch")

// Pair is two body indices queued for collision resolution.
type Pair struct {
	A, B int
}

// CollisionResolver is per-frame scratch state that lets each body take part in at most one
// collision per frame. Pairs are accepted first-come-first-served in the order the driver
// scans them (ascending i, then j), so when three or more bodies overlap at once the scan
// order decides which pair is honoured.
type CollisionResolver struct {
	marked  []bool
	pending []Pair
}

// NewCollisionResolver returns a resolver for a population of n bodies.
func NewCollisionResolver(n int) *CollisionResolver {
	r := &CollisionResolver{}
	r.Resize(n)
	return r
}

// Resize re-derives the mark array for a population of n bodies and clears all state.
func (r *CollisionResolver) Resize(n int) {
	if cap(r.marked) >= n {
		r.marked = r.marked[:n]
	} else {
		r.marked = make([]bool, n)
	}
	r.Clear()
}

// Len is the population size the resolver is sized for.
func (r *CollisionResolver) Len() int {
	return len(r.marked)
}

// ProcessPair queues (i, j) if the bodies overlap and neither index is already committed
// this frame. Returns true when the pair was queued. An index outside the population is a
// programmer error and panics.
func (r *CollisionResolver) ProcessPair(i, j int, a, b *Body, distance float64) bool {
	if i < 0 || j < 0 || i >= len(r.marked) || j >= len(r.marked) {
		panic(fmt.Sprintf("physics: pair (%d, %d) outside resolver population of %d", i, j, len(r.marked)))
	}
	if i == j || r.marked[i] || r.marked[j] || !a.Overlaps(b, distance) {
		return false
	}
	r.marked[i] = true
	r.marked[j] = true
	r.pending = append(r.pending, Pair{A: i, B: j})
	return true
}

// Marked reports whether body i is already committed to a collision this frame.
func (r *CollisionResolver) Marked(i int) bool {
	return r.marked[i]
}

// Pending returns the queued pairs in insertion order. The slice is reused after Clear.
func (r *CollisionResolver) Pending() []Pair {
	return r.pending
}

// ApplyCollisions merges every pending pair and returns the compacted population.
//
// Ordering: the merged body stays in the slot of the lower index of its pair and the
// higher index is dropped. Every surviving body, merged or not, keeps its original
// relative order. When nothing is pending the input slice is returned as is; otherwise a
// fresh slice is built and bodies is only mutated through the merged survivors.
func (r *CollisionResolver) ApplyCollisions(bodies []*Body) ([]*Body, error) {
	if len(bodies) != len(r.marked) {
		return nil, fmt.Errorf("%w: sized for %d, got %d bodies", ErrPopulationMismatch, len(r.marked), len(bodies))
	}
	if len(r.pending) == 0 {
		return bodies, nil
	}
	absorbed := make([]bool, len(bodies))
	for _, p := range r.pending {
		keep, drop := p.A, p.B
		if drop < keep {
			keep, drop = drop, keep
		}
		Merge(bodies[keep], bodies[drop])
		absorbed[drop] = true
	}
	out := make([]*Body, 0, len(bodies)-len(r.pending))
	for i, b := range bodies {
		if !absorbed[i] {
			out = append(out, b)
		}
	}
	return out, nil
}

// Clear drops pending pairs and marks. Call once per frame, after ApplyCollisions and
// before the next scan; marks left over would silently suppress collisions.
func (r *CollisionResolver) Clear() {
	clear(r.marked)
	r.pending = r.pending[:0]
}
