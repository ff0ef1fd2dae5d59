package orbit

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

const tol = 1e-9

func near(a, b, rel float64) bool {
	return math.Abs(a-b) <= rel*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestSphereRoundTrip(t *testing.T) {
	for _, r := range []float64{1e-3, 0.5, 1, 5, 10, 100, 12345.678} {
		got := RadiusOfSphere(VolumeOfSphere(r))
		if !near(got, r, tol) {
			t.Errorf("RadiusOfSphere(VolumeOfSphere(%v)) = %v", r, got)
		}
	}
}

func TestMassOfSphere(t *testing.T) {
	got := MassOfSphere(10, 1000)
	want := 1000 * 4.0 / 3.0 * math.Pi * 1000
	if !near(got, want, tol) {
		t.Fatalf("MassOfSphere(10, 1000) = %v, want %v", got, want)
	}
}

func TestCircularOrbitSpeed(t *testing.T) {
	const g = 0.01
	tests := []struct {
		name   string
		mass   float64
		radius float64
	}{
		{"radius 100 body at 50", MassOfSphere(100, 1000), 50},
		{"unit host", 1, 1},
		{"heavy host far out", 5e9, 2500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := CircularOrbitSpeed(g, tt.mass, tt.radius)
			if !near(v*v*tt.radius, g*tt.mass, tol) {
				t.Errorf("v²·r = %v, want G·M = %v", v*v*tt.radius, g*tt.mass)
			}
		})
	}
}

func TestComponents(t *testing.T) {
	v := Components(2, math.Pi/2)
	if math.Abs(v.X) > tol || math.Abs(v.Y-2) > tol {
		t.Fatalf("Components(2, π/2) = %+v", v)
	}
	if n := r2.Norm(Components(3, 1.234)); !near(n, 3, tol) {
		t.Fatalf("|Components(3, θ)| = %v", n)
	}
}

func TestSatellite(t *testing.T) {
	const g, mass = 0.01, 1e6
	host := r2.Vec{X: 100, Y: 100}
	hostVel := r2.Vec{X: 1, Y: 0}

	pos, vel := Satellite(host, hostVel, g, mass, 50, 0, false)
	if !near(pos.X, 150, tol) || !near(pos.Y, 100, tol) {
		t.Fatalf("pos = %+v, want (150, 100)", pos)
	}
	rel := r2.Sub(vel, hostVel)
	if d := r2.Dot(rel, r2.Sub(pos, host)); math.Abs(d) > 1e-6 {
		t.Errorf("relative velocity not tangential: dot = %v", d)
	}
	if rel.Y <= 0 {
		t.Errorf("counter-clockwise satellite at angle 0 should move +Y, got %+v", rel)
	}
	if s := r2.Norm(rel); !near(s, CircularOrbitSpeed(g, mass, 50), tol) {
		t.Errorf("speed = %v", s)
	}

	_, cw := Satellite(host, hostVel, g, mass, 50, 0, true)
	if r2.Sub(cw, hostVel).Y >= 0 {
		t.Errorf("clockwise satellite at angle 0 should move -Y, got %+v", cw)
	}
}
