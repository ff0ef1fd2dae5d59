// Package session ties a physics world to its scenario, console commands and logger.
// Both the window and the headless runner drive the simulation through a Session.
package session

import (
	"context"
	"fmt"

	"orbits/internal/commands"
	"orbits/internal/engineconfig"
	"orbits/internal/logger"
	"orbits/internal/physics"
	"orbits/internal/scenario"

	"gonum.org/v1/gonum/spatial/r2"
)

// Session owns the world being simulated.
type Session struct {
	prefs    engineconfig.Prefs
	world    *physics.World
	log      *logger.Logger
	reg      *commands.Registry
	scenario string
	paused   bool
	last     physics.FrameStats
}

// New validates prefs and returns a session with an empty world. Call Load to populate it.
func New(prefs engineconfig.Prefs, log *logger.Logger) (*Session, error) {
	if err := prefs.Validate(); err != nil {
		return nil, err
	}
	w, err := physics.NewWorld(prefs.Physics)
	if err != nil {
		return nil, err
	}
	s := &Session{prefs: prefs, world: w, log: log}
	s.reg = s.registerCommands()
	return s, nil
}

// World returns the simulated world.
func (s *Session) World() *physics.World { return s.world }

// Commands returns the console command registry.
func (s *Session) Commands() *commands.Registry { return s.reg }

// Scenario returns the name of the loaded scenario.
func (s *Session) Scenario() string { return s.scenario }

// Paused reports whether Advance is currently a no-op.
func (s *Session) Paused() bool { return s.paused }

// SetPaused pauses or resumes the simulation.
func (s *Session) SetPaused(p bool) { s.paused = p }

// Last returns the stats of the most recent Advance.
func (s *Session) Last() physics.FrameStats { return s.last }

// Load replaces the population with the scenario named by ref (a file path or a
// built-in name) and snapshots it for Reset.
func (s *Session) Load(ref string) error {
	sc, err := scenario.Resolve(ref)
	if err != nil {
		return err
	}
	bodies, err := sc.Build(s.world.Config())
	if err != nil {
		return err
	}
	s.world.Clear()
	s.world.AddBodies(bodies...)
	if err := s.world.Snapshot(); err != nil {
		return err
	}
	s.scenario = sc.Name
	s.last = physics.FrameStats{Bodies: len(bodies)}
	s.log.Logf("loaded scenario %q: %d bodies", sc.Name, len(bodies))
	return nil
}

// Reset restores the population captured by the last Load.
func (s *Session) Reset() error {
	if err := s.world.Restore(); err != nil {
		return err
	}
	s.last = physics.FrameStats{Bodies: s.world.Len()}
	s.log.Logf("reset %q: %d bodies", s.scenario, s.world.Len())
	return nil
}

// Advance steps the world by dt split into the configured number of sub-steps.
// Collisions and merges are summed over the sub-steps. A paused session does nothing.
func (s *Session) Advance(dt float64) (physics.FrameStats, error) {
	if s.paused {
		return s.last, nil
	}
	n := s.prefs.SubSteps
	var total physics.FrameStats
	for i := 0; i < n; i++ {
		st, err := s.world.Step(dt / float64(n))
		if err != nil {
			return total, err
		}
		total.Collisions += st.Collisions
		total.Merges += st.Merges
		total.Bodies = st.Bodies
		total.Penetration = st.Penetration
	}
	if total.Merges > 0 {
		s.log.Logf("frame %d: merged %d bodies, %d left", s.world.Frame(), total.Merges, total.Bodies)
	}
	s.last = total
	return total, nil
}

// RunHeadless advances the world frames times by a fixed dt, logging stats every
// statsEvery frames (0 disables). frames 0 runs until ctx is cancelled.
func (s *Session) RunHeadless(ctx context.Context, frames int, dt float64, statsEvery int) error {
	s.log.Logf("headless: %s, %d bodies, dt %g", s.scenario, s.world.Len(), dt)
	for f := 1; frames == 0 || f <= frames; f++ {
		if err := ctx.Err(); err != nil {
			s.log.Logf("stopped after %d frames: %v", f-1, err)
			return nil
		}
		if _, err := s.Advance(dt); err != nil {
			return fmt.Errorf("frame %d: %w", f, err)
		}
		if statsEvery > 0 && f%statsEvery == 0 {
			s.log.Log(s.Summary())
		}
	}
	s.log.Logf("done: %s", s.Summary())
	return nil
}

// Summary is a one-line description of the world's current state.
func (s *Session) Summary() string {
	return fmt.Sprintf("frame %d bodies %d collisions %d merges %d KE %.4g |p| %.4g overlap %.3g",
		s.world.Frame(), s.world.Len(), s.last.Collisions, s.last.Merges,
		s.world.KineticEnergy(), r2.Norm(s.world.Momentum()), s.last.Penetration)
}
