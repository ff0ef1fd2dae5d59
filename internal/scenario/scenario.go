// Package scenario loads initial body layouts from YAML. A scenario lists explicit
// bodies, rectangular grids, random fields and satellites placed on circular orbits
// around earlier bodies. A handful of layouts ship embedded (see Names).
package scenario

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"math"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"orbits/internal/orbit"
	"orbits/internal/physics"

	"golang.org/x/exp/rand"
	"gopkg.in/yaml.v3"
)

// ErrUnknownScenario is returned by Builtin for a name that does not ship with the binary.
var ErrUnknownScenario = errors.New("scenario: unknown scenario")

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Scenario is the YAML document. Build places bodies in this order: Bodies, Grids,
// Fields, Satellites. Satellite hosts index into what has been placed so far.
type Scenario struct {
	Name       string         `yaml:"name"`
	Bodies     []BodyDef      `yaml:"bodies,omitempty"`
	Grids      []GridDef      `yaml:"grids,omitempty"`
	Fields     []FieldDef     `yaml:"fields,omitempty"`
	Satellites []SatelliteDef `yaml:"satellites,omitempty"`
}

// BodyDef is a single body. Mass 0 means derive it from the radius and density.
type BodyDef struct {
	Position [2]float64 `yaml:"position,flow"`
	Velocity [2]float64 `yaml:"velocity,flow,omitempty"`
	Radius   float64    `yaml:"radius"`
	Mass     float64    `yaml:"mass,omitempty"`
}

// GridDef is Cols×Rows resting bodies, Gap apart, starting at Origin (top-left).
type GridDef struct {
	Origin [2]float64 `yaml:"origin,flow"`
	Cols   int        `yaml:"cols"`
	Rows   int        `yaml:"rows"`
	Gap    float64    `yaml:"gap"`
	Radius float64    `yaml:"radius"`
}

// FieldDef is Count resting bodies scattered uniformly over the rectangle Origin..Origin+Size.
// Seed 0 picks a time-based seed.
type FieldDef struct {
	Origin [2]float64 `yaml:"origin,flow"`
	Size   [2]float64 `yaml:"size,flow"`
	Count  int        `yaml:"count"`
	Radius float64    `yaml:"radius"`
	Seed   uint64     `yaml:"seed,omitempty"`
}

// SatelliteDef places a body on a circular orbit around Host. Angle is in degrees.
type SatelliteDef struct {
	Host      int     `yaml:"host"`
	Distance  float64 `yaml:"distance"`
	Angle     float64 `yaml:"angle"`
	Radius    float64 `yaml:"radius"`
	Mass      float64 `yaml:"mass,omitempty"`
	Clockwise bool    `yaml:"clockwise,omitempty"`
}

// Parse decodes a scenario document. Unknown keys are rejected so typos surface early.
func Parse(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("scenario: parse: %w", err)
	}
	return &s, nil
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Builtin returns one of the embedded scenarios by name.
func Builtin(name string) (*Scenario, error) {
	data, err := builtinFS.ReadFile(path.Join("builtin", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("%w: %q (have %s)", ErrUnknownScenario, name, strings.Join(Names(), ", "))
	}
	return Parse(data)
}

// Names lists the embedded scenarios, sorted.
func Names() []string {
	entries, _ := builtinFS.ReadDir("builtin")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// Resolve loads ref as a file if one exists at that path, otherwise as a built-in name.
func Resolve(ref string) (*Scenario, error) {
	if _, err := os.Stat(ref); err == nil {
		return Load(ref)
	}
	return Builtin(ref)
}

// Build creates the bodies described by the scenario using cfg for density and G.
func (s *Scenario) Build(cfg physics.Config) ([]*physics.Body, error) {
	var out []*physics.Body
	add := func(pos, vel physics.Vec, radius, mass float64) error {
		var b *physics.Body
		var err error
		if mass != 0 {
			b, err = physics.NewBodyWithMass(pos, vel, radius, mass)
		} else {
			b, err = physics.NewBody(pos, vel, radius, cfg.Density)
		}
		if err != nil {
			return err
		}
		out = append(out, b)
		return nil
	}

	for i, d := range s.Bodies {
		if err := add(vec(d.Position), vec(d.Velocity), d.Radius, d.Mass); err != nil {
			return nil, s.errorf("bodies[%d]: %w", i, err)
		}
	}

	for i, g := range s.Grids {
		if g.Cols < 0 || g.Rows < 0 {
			return nil, s.errorf("grids[%d]: negative size %dx%d", i, g.Cols, g.Rows)
		}
		for c := 0; c < g.Cols; c++ {
			for r := 0; r < g.Rows; r++ {
				pos := physics.V(g.Origin[0]+float64(c)*g.Gap, g.Origin[1]+float64(r)*g.Gap)
				if err := add(pos, physics.Vec{}, g.Radius, 0); err != nil {
					return nil, s.errorf("grids[%d]: %w", i, err)
				}
			}
		}
	}

	for i, f := range s.Fields {
		if f.Count < 0 {
			return nil, s.errorf("fields[%d]: negative count %d", i, f.Count)
		}
		seed := f.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		rnd := rand.New(rand.NewSource(seed))
		for n := 0; n < f.Count; n++ {
			pos := physics.V(f.Origin[0]+rnd.Float64()*f.Size[0], f.Origin[1]+rnd.Float64()*f.Size[1])
			if err := add(pos, physics.Vec{}, f.Radius, 0); err != nil {
				return nil, s.errorf("fields[%d]: %w", i, err)
			}
		}
	}

	for i, sat := range s.Satellites {
		if sat.Host < 0 || sat.Host >= len(out) {
			return nil, s.errorf("satellites[%d]: host %d out of range (%d bodies placed)", i, sat.Host, len(out))
		}
		if !(sat.Distance > 0) {
			return nil, s.errorf("satellites[%d]: distance must be positive, got %v", i, sat.Distance)
		}
		h := out[sat.Host]
		pos, vel := orbit.Satellite(h.Position, h.Velocity, cfg.G, h.Mass, sat.Distance, sat.Angle*math.Pi/180, sat.Clockwise)
		if err := add(pos, vel, sat.Radius, sat.Mass); err != nil {
			return nil, s.errorf("satellites[%d]: %w", i, err)
		}
	}
	return out, nil
}

// FromBodies captures a live population as a scenario of explicit bodies.
func FromBodies(name string, bodies []*physics.Body) *Scenario {
	s := &Scenario{Name: name, Bodies: make([]BodyDef, len(bodies))}
	for i, b := range bodies {
		s.Bodies[i] = BodyDef{
			Position: [2]float64{b.Position.X, b.Position.Y},
			Velocity: [2]float64{b.Velocity.X, b.Velocity.Y},
			Radius:   b.Radius,
			Mass:     b.Mass,
		}
	}
	return s
}

// Save writes the scenario as YAML, creating the parent directory if needed.
func (s *Scenario) Save(file string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("scenario: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return fmt.Errorf("scenario: %w", err)
	}
	return os.WriteFile(file, data, 0644)
}

func (s *Scenario) errorf(format string, args ...any) error {
	return fmt.Errorf("scenario %q: "+format, append([]any{s.Name}, args...)...)
}

func vec(a [2]float64) physics.Vec {
	return physics.V(a[0], a[1])
}
