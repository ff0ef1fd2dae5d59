package physics

import (
	"fmt"
	"math"
)

// Bounds is the rectangle used by the optional wall-bounce boundary.
type Bounds struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Validate rejects empty or inverted rectangles.
func (bd Bounds) Validate() error {
	if !(bd.MaxX > bd.MinX) || !(bd.MaxY > bd.MinY) {
		return fmt.Errorf("%w: walls must have max > min, got %+v", ErrInvalidConfig, bd)
	}
	return nil
}

// Contain keeps b inside the rectangle. Any part of the body past a wall is clamped back
// to touch it and the matching velocity component is turned to point inward.
// Returns true if a wall was hit.
func (bd Bounds) Contain(b *Body) bool {
	hit := false
	if b.Position.X-b.Radius < bd.MinX {
		b.Position.X = bd.MinX + b.Radius
		b.Velocity.X = math.Abs(b.Velocity.X)
		hit = true
	} else if b.Position.X+b.Radius > bd.MaxX {
		b.Position.X = bd.MaxX - b.Radius
		b.Velocity.X = -math.Abs(b.Velocity.X)
		hit = true
	}
	if b.Position.Y-b.Radius < bd.MinY {
		b.Position.Y = bd.MinY + b.Radius
		b.Velocity.Y = math.Abs(b.Velocity.Y)
		hit = true
	} else if b.Position.Y+b.Radius > bd.MaxY {
		b.Position.Y = bd.MaxY - b.Radius
		b.Velocity.Y = -math.Abs(b.Velocity.Y)
		hit = true
	}
	return hit
}
