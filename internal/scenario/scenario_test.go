package scenario

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"orbits/internal/physics"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestBuiltinsBuild(t *testing.T) {
	want := map[string]int{
		"grid":   202,
		"orbit":  5,
		"pair":   3,
		"random": 1000,
		"three":  3,
	}
	names := Names()
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %d entries", names, len(want))
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			s, err := Builtin(name)
			if err != nil {
				t.Fatalf("Builtin: %v", err)
			}
			if s.Name != name {
				t.Errorf("Name = %q, want %q", s.Name, name)
			}
			bodies, err := s.Build(physics.Default())
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if len(bodies) != want[name] {
				t.Errorf("built %d bodies, want %d", len(bodies), want[name])
			}
		})
	}
}

func TestBuiltinUnknown(t *testing.T) {
	if _, err := Builtin("nope"); !errors.Is(err, ErrUnknownScenario) {
		t.Errorf("Builtin(nope) error = %v, want ErrUnknownScenario", err)
	}
	if _, err := Resolve("nope"); !errors.Is(err, ErrUnknownScenario) {
		t.Errorf("Resolve(nope) error = %v, want ErrUnknownScenario", err)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("name: x\nbodys:\n  - position: [0, 0]\n    radius: 1\n"))
	if err == nil {
		t.Fatal("expected error for misspelled key")
	}
}

func TestBuildExplicitBodies(t *testing.T) {
	s, err := Parse([]byte(`
name: two
bodies:
  - position: [1, 2]
    velocity: [3, 4]
    radius: 5
  - position: [10, 0]
    radius: 2
    mass: 7
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cfg := physics.Default()
	bodies, err := s.Build(cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(bodies) != 2 {
		t.Fatalf("got %d bodies", len(bodies))
	}
	a, b := bodies[0], bodies[1]
	if a.Position != physics.V(1, 2) || a.Velocity != physics.V(3, 4) || a.Radius != 5 {
		t.Errorf("first body = %+v", *a)
	}
	wantMass := 4.0 / 3.0 * math.Pi * 125 * cfg.Density
	if math.Abs(a.Mass-wantMass) > 1e-6 {
		t.Errorf("derived mass = %v, want %v", a.Mass, wantMass)
	}
	if b.Mass != 7 {
		t.Errorf("explicit mass = %v, want 7", b.Mass)
	}
}

func TestBuildGridLayout(t *testing.T) {
	s := &Scenario{Name: "g", Grids: []GridDef{{Origin: [2]float64{10, 20}, Cols: 3, Rows: 2, Gap: 5, Radius: 1}}}
	bodies, err := s.Build(physics.Default())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := []physics.Vec{
		physics.V(10, 20), physics.V(10, 25),
		physics.V(15, 20), physics.V(15, 25),
		physics.V(20, 20), physics.V(20, 25),
	}
	if len(bodies) != len(want) {
		t.Fatalf("got %d bodies, want %d", len(bodies), len(want))
	}
	for i, b := range bodies {
		if b.Position != want[i] {
			t.Errorf("body %d at %v, want %v", i, b.Position, want[i])
		}
	}
}

func TestBuildFieldSeeded(t *testing.T) {
	s := &Scenario{Name: "f", Fields: []FieldDef{{
		Origin: [2]float64{100, 200}, Size: [2]float64{50, 10}, Count: 200, Radius: 1, Seed: 42,
	}}}
	first, err := s.Build(physics.Default())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	second, err := s.Build(physics.Default())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for i := range first {
		p := first[i].Position
		if p.X < 100 || p.X > 150 || p.Y < 200 || p.Y > 210 {
			t.Fatalf("body %d at %v outside field", i, p)
		}
		if p != second[i].Position {
			t.Fatalf("body %d differs between builds with the same seed: %v vs %v", i, p, second[i].Position)
		}
	}
}

func TestBuildSatellite(t *testing.T) {
	cfg := physics.Default()
	s := &Scenario{
		Name:   "sat",
		Bodies: []BodyDef{{Position: [2]float64{0, 0}, Velocity: [2]float64{1, 0}, Radius: 20}},
		Satellites: []SatelliteDef{
			{Host: 0, Distance: 100, Angle: 90, Radius: 2},
			{Host: 0, Distance: 100, Angle: 90, Radius: 2, Clockwise: true},
		},
	}
	bodies, err := s.Build(cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	host := bodies[0]
	for i, sat := range bodies[1:] {
		if d := r2.Norm(r2.Sub(sat.Position, physics.V(0, 100))); d > 1e-9 {
			t.Errorf("satellite %d at %v, want (0, 100)", i, sat.Position)
		}
		rel := r2.Sub(sat.Velocity, host.Velocity)
		v2r := r2.Norm2(rel) * 100
		gm := cfg.G * host.Mass
		if math.Abs(v2r-gm)/gm > 1e-9 {
			t.Errorf("satellite %d: v²r = %v, want GM = %v", i, v2r, gm)
		}
	}
	// counter-clockwise travels toward -X from the top, clockwise toward +X
	if rel := r2.Sub(bodies[1].Velocity, host.Velocity); rel.X >= 0 {
		t.Errorf("counter-clockwise satellite relative velocity %v, want negative X", rel)
	}
	if rel := r2.Sub(bodies[2].Velocity, host.Velocity); rel.X <= 0 {
		t.Errorf("clockwise satellite relative velocity %v, want positive X", rel)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		s    Scenario
		want error
	}{
		{"zero radius", Scenario{Bodies: []BodyDef{{Radius: 0}}}, physics.ErrNonPositiveRadius},
		{"negative mass", Scenario{Bodies: []BodyDef{{Radius: 1, Mass: -1}}}, physics.ErrNonPositiveMass},
		{"grid radius", Scenario{Grids: []GridDef{{Cols: 1, Rows: 1}}}, physics.ErrNonPositiveRadius},
		{"missing host", Scenario{Satellites: []SatelliteDef{{Host: 0, Distance: 10, Radius: 1}}}, nil},
		{"zero distance", Scenario{
			Bodies:     []BodyDef{{Radius: 1}},
			Satellites: []SatelliteDef{{Host: 0, Radius: 1}},
		}, nil},
		{"negative count", Scenario{Fields: []FieldDef{{Count: -1, Radius: 1}}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.s.Build(physics.Default())
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSaveLoadCapturedBodies(t *testing.T) {
	cfg := physics.Default()
	src, err := Builtin("pair")
	if err != nil {
		t.Fatal(err)
	}
	bodies, err := src.Build(cfg)
	if err != nil {
		t.Fatal(err)
	}

	file := filepath.Join(t.TempDir(), "saves", "snap.yaml")
	if err := FromBodies("snap", bodies).Save(file); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Resolve(file)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if loaded.Name != "snap" {
		t.Errorf("Name = %q, want snap", loaded.Name)
	}
	again, err := loaded.Build(cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(again) != len(bodies) {
		t.Fatalf("got %d bodies, want %d", len(again), len(bodies))
	}
	for i := range bodies {
		if *again[i] != *bodies[i] {
			t.Errorf("body %d = %+v, want %+v", i, *again[i], *bodies[i])
		}
	}
}
