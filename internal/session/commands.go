package session

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"orbits/internal/commands"
	"orbits/internal/physics"
	"orbits/internal/scenario"
)

// SaveDir is where "save" writes when no path is given.
const SaveDir = "saves"

func (s *Session) registerCommands() *commands.Registry {
	reg := commands.NewRegistry()

	spawn := commands.NewFlagSet("spawn")
	x := spawn.Float64("x", 0, "position x")
	y := spawn.Float64("y", 0, "position y")
	vx := spawn.Float64("vx", 0, "velocity x")
	vy := spawn.Float64("vy", 0, "velocity y")
	r := spawn.Float64("r", 5, "radius")
	reg.Register("spawn", "add a body", spawn, func() error {
		b, err := s.world.Spawn(physics.V(*x, *y), physics.V(*vx, *vy), *r)
		if err != nil {
			return err
		}
		s.log.Logf("spawned r=%g m=%.4g at (%g, %g)", b.Radius, b.Mass, *x, *y)
		return nil
	})

	orbit := commands.NewFlagSet("orbit")
	host := orbit.Int("host", -1, "host body index (-1 = heaviest)")
	dist := orbit.Float64("d", 100, "orbit radius")
	angle := orbit.Float64("a", 0, "angle in degrees")
	sr := orbit.Float64("r", 3, "satellite radius")
	cw := orbit.Bool("cw", false, "orbit clockwise")
	reg.Register("orbit", "add a body on a circular orbit", orbit, func() error {
		h := *host
		if h < 0 {
			h = s.world.Largest()
		}
		b, err := s.world.SpawnSatellite(h, *dist, *angle*math.Pi/180, *sr, *cw)
		if err != nil {
			return err
		}
		s.log.Logf("satellite of body %d at (%.1f, %.1f)", h, b.Position.X, b.Position.Y)
		return nil
	})

	reg.Register("clear", "remove every body", nil, func() error {
		s.world.Clear()
		s.log.Log("cleared")
		return nil
	})

	reg.Register("reset", "restore the loaded scenario", nil, s.Reset)

	load := commands.NewFlagSet("load")
	reg.Register("load", "load a scenario by name or path; no argument lists built-ins", load, func() error {
		if load.NArg() == 0 {
			s.log.Log("scenarios: " + strings.Join(scenario.Names(), ", "))
			return nil
		}
		return s.Load(load.Arg(0))
	})

	policy := commands.NewFlagSet("policy")
	reg.Register("policy", "show or set the collision policy (elastic|inelastic)", policy, func() error {
		return s.configure(policy.Args(), "policy", func(c *physics.Config, v string) error {
			p, err := physics.ParseCollisionPolicy(v)
			c.Policy = p
			return err
		}, func(c physics.Config) string { return c.Policy.String() })
	})

	passes := commands.NewFlagSet("passes")
	reg.Register("passes", "show or set relaxation passes per frame", passes, func() error {
		return s.configure(passes.Args(), "passes", func(c *physics.Config, v string) error {
			n, err := strconv.Atoi(v)
			c.RelaxationPasses = n
			return err
		}, func(c physics.Config) string { return strconv.Itoa(c.RelaxationPasses) })
	})

	damping := commands.NewFlagSet("damping")
	reg.Register("damping", "show or set the bounce damping in (0, 1]", damping, func() error {
		return s.configure(damping.Args(), "damping", floatField(func(c *physics.Config) *float64 { return &c.Damping }),
			func(c physics.Config) string { return strconv.FormatFloat(c.Damping, 'g', -1, 64) })
	})

	friction := commands.NewFlagSet("friction")
	reg.Register("friction", "show or set the contact friction in [0, 1]", friction, func() error {
		return s.configure(friction.Args(), "friction", floatField(func(c *physics.Config) *float64 { return &c.Friction }),
			func(c physics.Config) string { return strconv.FormatFloat(c.Friction, 'g', -1, 64) })
	})

	reg.Register("pause", "pause or resume the simulation", nil, func() error {
		s.paused = !s.paused
		if s.paused {
			s.log.Log("paused")
		} else {
			s.log.Log("resumed")
		}
		return nil
	})

	save := commands.NewFlagSet("save")
	reg.Register("save", "write the current bodies as a scenario file", save, func() error {
		path := save.Arg(0)
		if path == "" {
			path = filepath.Join(SaveDir, fmt.Sprintf("%s-%d.yaml", s.scenario, s.world.Frame()))
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if err := scenario.FromBodies(name, s.world.Bodies()).Save(path); err != nil {
			return err
		}
		s.log.Logf("saved %d bodies to %s", s.world.Len(), path)
		return nil
	})

	reg.Register("help", "list commands", nil, func() error {
		for _, line := range reg.Help() {
			s.log.Log(line)
		}
		return nil
	})

	return reg
}

// configure shows the current value when args is empty, otherwise applies set to a copy
// of the world's config and installs it if it validates.
func (s *Session) configure(args []string, name string, set func(*physics.Config, string) error, show func(physics.Config) string) error {
	cfg := s.world.Config()
	if len(args) == 0 {
		s.log.Logf("%s = %s", name, show(cfg))
		return nil
	}
	if err := set(&cfg, args[0]); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if err := s.world.SetConfig(cfg); err != nil {
		return err
	}
	s.log.Logf("%s = %s", name, show(cfg))
	return nil
}

func floatField(field func(*physics.Config) *float64) func(*physics.Config, string) error {
	return func(c *physics.Config, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		*field(c) = f
		return nil
	}
}
