package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"orbits/internal/commands"
	"orbits/internal/engineconfig"
	"orbits/internal/logger"
	"orbits/internal/physics"
	"orbits/internal/scenario"
)

func newSession(t *testing.T, mutate func(*engineconfig.Prefs)) (*Session, *logger.Logger) {
	t.Helper()
	prefs := engineconfig.Default()
	if mutate != nil {
		mutate(&prefs)
	}
	log := logger.New("")
	s, err := New(prefs, log)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, log
}

func run(t *testing.T, s *Session, line string) {
	t.Helper()
	if err := s.Commands().Execute(commands.Parse(line)); err != nil {
		t.Fatalf("%q: %v", line, err)
	}
}

func lastLine(log *logger.Logger) string {
	lines := log.Lines()
	if len(lines) == 0 {
		return ""
	}
	return lines[len(lines)-1]
}

func TestNewRejectsInvalidPrefs(t *testing.T) {
	prefs := engineconfig.Default()
	prefs.Physics.Damping = 0
	if _, err := New(prefs, logger.New("")); !errors.Is(err, physics.ErrInvalidConfig) {
		t.Errorf("New error = %v, want ErrInvalidConfig", err)
	}
}

func TestLoadAndReset(t *testing.T) {
	s, _ := newSession(t, nil)
	if err := s.Load("three"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Scenario() != "three" || s.World().Len() != 3 {
		t.Fatalf("scenario %q with %d bodies", s.Scenario(), s.World().Len())
	}
	start := s.World().Bodies()[0].Position

	for i := 0; i < 5; i++ {
		if _, err := s.Advance(0.01); err != nil {
			t.Fatalf("Advance: %v", err)
		}
	}
	if s.World().Bodies()[0].Position == start {
		t.Fatal("bodies did not move")
	}

	run(t, s, "reset")
	if got := s.World().Bodies()[0].Position; got != start {
		t.Errorf("after reset body 0 at %v, want %v", got, start)
	}
	if err := s.Load("nope"); !errors.Is(err, scenario.ErrUnknownScenario) {
		t.Errorf("Load(nope) = %v, want ErrUnknownScenario", err)
	}
}

func TestAdvanceSubSteps(t *testing.T) {
	s, _ := newSession(t, func(p *engineconfig.Prefs) { p.SubSteps = 4 })
	if err := s.Load("pair"); err != nil {
		t.Fatal(err)
	}
	st, err := s.Advance(0.04)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if s.World().Frame() != 4 || st.Bodies != 3 {
		t.Errorf("frame %d bodies %d, want 4 and 3", s.World().Frame(), st.Bodies)
	}
}

func TestPauseStopsAdvance(t *testing.T) {
	s, log := newSession(t, nil)
	if err := s.Load("pair"); err != nil {
		t.Fatal(err)
	}
	run(t, s, "pause")
	if !s.Paused() || !strings.HasSuffix(lastLine(log), "] paused") {
		t.Fatalf("paused=%v log %q", s.Paused(), lastLine(log))
	}
	if _, err := s.Advance(0.1); err != nil {
		t.Fatal(err)
	}
	if s.World().Frame() != 0 {
		t.Errorf("paused session advanced to frame %d", s.World().Frame())
	}
	run(t, s, "pause")
	if s.Paused() {
		t.Error("second pause did not resume")
	}
}

func TestInelasticMergeIsLogged(t *testing.T) {
	s, log := newSession(t, func(p *engineconfig.Prefs) { p.Physics.Policy = physics.PolicyInelastic })
	if err := s.Load("three"); err != nil {
		t.Fatal(err)
	}
	st, err := s.Advance(0)
	if err != nil {
		t.Fatal(err)
	}
	if st.Merges != 1 || st.Bodies != 2 {
		t.Errorf("stats = %+v, want one merge leaving two bodies", st)
	}
	if !strings.Contains(lastLine(log), "merged 1 bodies, 2 left") {
		t.Errorf("log = %q", lastLine(log))
	}
}

func TestSpawnAndOrbitCommands(t *testing.T) {
	s, _ := newSession(t, nil)
	run(t, s, "spawn -x 100 -y 200 -vx -3 -r 20")
	run(t, s, "spawn -x 500")
	run(t, s, "orbit -d 50 -a 90 -r 2")

	bodies := s.World().Bodies()
	if len(bodies) != 3 {
		t.Fatalf("got %d bodies, want 3", len(bodies))
	}
	if b := bodies[0]; b.Position != physics.V(100, 200) || b.Velocity != physics.V(-3, 0) || b.Radius != 20 {
		t.Errorf("first spawn = %+v", *b)
	}
	// flags reset between invocations
	if b := bodies[1]; b.Position != physics.V(500, 0) || b.Velocity != (physics.Vec{}) || b.Radius != 5 {
		t.Errorf("second spawn = %+v", *b)
	}
	// the heaviest body is the host
	sat := bodies[2]
	if d := sat.Position.Y - 200; d < 49.999 || d > 50.001 || sat.Position.X < 99.999 || sat.Position.X > 100.001 {
		t.Errorf("satellite at %v, want (100, 250)", sat.Position)
	}

	if err := s.Commands().Execute([]string{"orbit", "-host", "9"}); err == nil {
		t.Error("orbit around missing host returned nil")
	}
	if err := s.Commands().Execute([]string{"spawn", "-r", "0"}); !errors.Is(err, physics.ErrNonPositiveRadius) {
		t.Errorf("spawn -r 0 = %v, want ErrNonPositiveRadius", err)
	}

	run(t, s, "clear")
	if s.World().Len() != 0 {
		t.Errorf("clear left %d bodies", s.World().Len())
	}
}

func TestConfigCommands(t *testing.T) {
	s, log := newSession(t, nil)

	run(t, s, "policy merge")
	run(t, s, "passes 3")
	run(t, s, "damping 0.5")
	run(t, s, "friction 0.25")
	cfg := s.World().Config()
	if cfg.Policy != physics.PolicyInelastic || cfg.RelaxationPasses != 3 || cfg.Damping != 0.5 || cfg.Friction != 0.25 {
		t.Errorf("config = %+v", cfg)
	}

	run(t, s, "friction")
	if !strings.HasSuffix(lastLine(log), "] friction = 0.25") {
		t.Errorf("show friction logged %q", lastLine(log))
	}

	for _, bad := range []string{"policy sticky", "passes x", "damping 2", "friction -0.5"} {
		if err := s.Commands().Execute(commands.Parse(bad)); err == nil {
			t.Errorf("%q returned nil", bad)
		}
	}
	if got := s.World().Config(); got != cfg {
		t.Errorf("rejected commands changed config to %+v", got)
	}
}

func TestSaveThenLoad(t *testing.T) {
	s, _ := newSession(t, nil)
	if err := s.Load("pair"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Advance(0.1); err != nil {
		t.Fatal(err)
	}
	want := s.World().Bodies()[2].Position

	file := filepath.Join(t.TempDir(), "snap.yaml")
	run(t, s, "save "+file)
	if _, err := os.Stat(file); err != nil {
		t.Fatalf("save did not write file: %v", err)
	}
	run(t, s, "load "+file)
	if s.Scenario() != "snap" || s.World().Len() != 3 {
		t.Fatalf("loaded %q with %d bodies", s.Scenario(), s.World().Len())
	}
	if got := s.World().Bodies()[2].Position; got != want {
		t.Errorf("body 2 at %v, want %v", got, want)
	}
}

func TestLoadListsBuiltins(t *testing.T) {
	s, log := newSession(t, nil)
	run(t, s, "load")
	if !strings.Contains(lastLine(log), "scenarios: grid, orbit, pair, random, three") {
		t.Errorf("load without argument logged %q", lastLine(log))
	}
}

func TestHelpListsCommands(t *testing.T) {
	s, log := newSession(t, nil)
	run(t, s, "help")
	all := strings.Join(log.Lines(), "\n")
	for _, name := range []string{"spawn", "orbit", "clear", "reset", "load", "policy", "passes", "damping", "friction", "pause", "save", "help"} {
		if !strings.Contains(all, "] "+name+" - ") {
			t.Errorf("help output missing %q", name)
		}
	}
}

func TestRunHeadless(t *testing.T) {
	s, log := newSession(t, nil)
	if err := s.Load("pair"); err != nil {
		t.Fatal(err)
	}
	if err := s.RunHeadless(context.Background(), 10, 0.01, 5); err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if s.World().Frame() != 10 {
		t.Errorf("frame = %d, want 10", s.World().Frame())
	}
	stats := 0
	for _, l := range log.Lines() {
		if strings.Contains(l, "] frame ") {
			stats++
		}
	}
	if stats != 2 {
		t.Errorf("logged %d stats lines, want 2", stats)
	}
}

func TestRunHeadlessStopsOnCancel(t *testing.T) {
	s, _ := newSession(t, nil)
	if err := s.Load("pair"); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.RunHeadless(ctx, 0, 0.01, 0); err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if s.World().Frame() != 0 {
		t.Errorf("cancelled run stepped %d frames", s.World().Frame())
	}
}
