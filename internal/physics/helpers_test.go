package physics

import (
	"math"
	"testing"
)

const tol = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) <= tol*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func approxVec(a, b Vec) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y)
}

func mustBody(t *testing.T, pos, vel Vec, radius, mass float64) *Body {
	t.Helper()
	b, err := NewBodyWithMass(pos, vel, radius, mass)
	if err != nil {
		t.Fatalf("NewBodyWithMass: %v", err)
	}
	return b
}

func testConfig(policy CollisionPolicy) Config {
	cfg := Default()
	cfg.Policy = policy
	return cfg
}
