package engineconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"orbits/internal/env"
	"orbits/internal/physics"
)

// EngineConfigPath is the default path to the engine config file, relative to the process working directory.
const EngineConfigPath = "config/engine.json"

// Window is the initial window size in pixels.
type Window struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Prefs holds everything the driver needs to start: physics tunables, the scenario to
// load and viewer settings. Persisted across runs.
type Prefs struct {
	Physics      physics.Config `json:"physics"`
	Scenario     string         `json:"scenario"`
	TargetFPS    int            `json:"target_fps"`
	SubSteps     int            `json:"sub_steps"`
	ShowFPS      bool           `json:"show_fps"`
	ShowMemAlloc bool           `json:"show_memalloc"`
	ShowStats    bool           `json:"show_stats"`
	LogPath      string         `json:"log_path,omitempty"`
	Font         string         `json:"font,omitempty"`
	Window       Window         `json:"window"`
}

// Default returns default preferences: the random field scenario at 60 FPS in a 1200x800 window.
func Default() Prefs {
	return Prefs{
		Physics:   physics.Default(),
		Scenario:  "random",
		TargetFPS: 60,
		SubSteps:  1,
		ShowStats: true,
		Window:    Window{Width: 1200, Height: 800},
	}
}

// Validate checks the physics block and the viewer settings.
func (p Prefs) Validate() error {
	if err := p.Physics.Validate(); err != nil {
		return err
	}
	if p.TargetFPS <= 0 {
		return fmt.Errorf("engineconfig: target_fps must be positive, got %d", p.TargetFPS)
	}
	if p.SubSteps <= 0 {
		return fmt.Errorf("engineconfig: sub_steps must be positive, got %d", p.SubSteps)
	}
	if p.Window.Width <= 0 || p.Window.Height <= 0 {
		return fmt.Errorf("engineconfig: window must be positive, got %dx%d", p.Window.Width, p.Window.Height)
	}
	return nil
}

// Load reads preferences from path. Fields absent from the file keep their defaults.
// A missing file returns Default() and does not create one; invalid JSON is an error.
func Load(path string) (Prefs, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("engineconfig: %w", err)
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("engineconfig: %s: %w", path, err)
	}
	return p, nil
}

// Save writes preferences to path, creating the config directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides preferences from ORBITS_* environment variables. Unset variables
// leave the value alone; malformed ones are reported.
func ApplyEnv(p *Prefs) error {
	floats := []struct {
		key string
		dst *float64
	}{
		{"ORBITS_G", &p.Physics.G},
		{"ORBITS_DENSITY", &p.Physics.Density},
		{"ORBITS_DAMPING", &p.Physics.Damping},
		{"ORBITS_FRICTION", &p.Physics.Friction},
	}
	for _, f := range floats {
		v, ok, err := env.Float(f.key)
		if err != nil {
			return fmt.Errorf("engineconfig: %w", err)
		}
		if ok {
			*f.dst = v
		}
	}

	if v, ok, err := env.Int("ORBITS_PASSES"); err != nil {
		return fmt.Errorf("engineconfig: %w", err)
	} else if ok {
		p.Physics.RelaxationPasses = v
	}

	if s, ok := env.String("ORBITS_POLICY"); ok {
		policy, err := physics.ParseCollisionPolicy(s)
		if err != nil {
			return fmt.Errorf("engineconfig: ORBITS_POLICY: %w", err)
		}
		p.Physics.Policy = policy
	}
	if s, ok := env.String("ORBITS_SCENARIO"); ok {
		p.Scenario = s
	}
	return nil
}
