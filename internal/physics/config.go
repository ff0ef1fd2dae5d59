package physics

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidConfig is wrapped by every Config.Validate failure.
var ErrInvalidConfig = errors.New("physics: invalid config")

// CollisionPolicy selects what happens when two bodies overlap.
type CollisionPolicy string

const (
	// PolicyElastic bounces the pair apart, losing energy through Damping and Friction.
	PolicyElastic CollisionPolicy = "elastic"
	// PolicyInelastic merges the pair into one body at the end of the frame.
	PolicyInelastic CollisionPolicy = "inelastic"
)

// ParseCollisionPolicy accepts "elastic" / "inelastic" (also "bounce" / "merge").
func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "elastic", "bounce":
		return PolicyElastic, nil
	case "inelastic", "merge":
		return PolicyInelastic, nil
	}
	return "", fmt.Errorf("%w: unknown collision policy %q", ErrInvalidConfig, s)
}

func (p CollisionPolicy) String() string { return string(p) }

// ContactDistance selects the squared distance used in the elastic impulse denominator.
// The separation vector is always the one measured before overlap correction.
type ContactDistance string

const (
	// ContactResting divides by (r₁+r₂)², which scales the impulse down by (d/(r₁+r₂))²
	// for interpenetrating pairs.
	ContactResting ContactDistance = "resting"
	// ContactInstantaneous divides by d², the textbook elastic response.
	ContactInstantaneous ContactDistance = "instantaneous"
)

// Config holds every tunable of the engine. It is passed in at construction instead of
// living in package-level constants, so scenarios and tests can vary it freely.
type Config struct {
	G                float64         `json:"g"`
	Density          float64         `json:"density"`
	Damping          float64         `json:"damping"`
	Friction         float64         `json:"friction"`
	RelaxationPasses int             `json:"relaxation_passes"`
	Policy           CollisionPolicy `json:"policy"`
	Contact          ContactDistance `json:"contact"`
	// Epsilon is the separation below which two bodies count as coincident: no force is
	// applied and the pair goes straight to collision handling.
	Epsilon float64 `json:"epsilon"`
	// Walls enables the wall-bounce boundary. Nil means an open domain.
	Walls *Bounds `json:"walls,omitempty"`
}

// Defaults match the constants the simulation was tuned with.
const (
	DefaultG       = 0.01
	DefaultDensity = 1000.0
	DefaultDamping = 0.925
	DefaultEpsilon = 1e-6
)

// Default returns an elastic, frictionless, open-domain configuration.
func Default() Config {
	return Config{
		G:                DefaultG,
		Density:          DefaultDensity,
		Damping:          DefaultDamping,
		Friction:         0,
		RelaxationPasses: 0,
		Policy:           PolicyElastic,
		Contact:          ContactResting,
		Epsilon:          DefaultEpsilon,
	}
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	switch {
	case !finite(c.G) || c.G < 0:
		return fmt.Errorf("%w: g must be a non-negative number, got %v", ErrInvalidConfig, c.G)
	case !finite(c.Density) || c.Density <= 0:
		return fmt.Errorf("%w: density must be positive, got %v", ErrInvalidConfig, c.Density)
	case !(c.Damping > 0 && c.Damping <= 1):
		return fmt.Errorf("%w: damping must be in (0, 1], got %v", ErrInvalidConfig, c.Damping)
	case !(c.Friction >= 0 && c.Friction <= 1):
		return fmt.Errorf("%w: friction must be in [0, 1], got %v", ErrInvalidConfig, c.Friction)
	case c.RelaxationPasses < 0:
		return fmt.Errorf("%w: relaxation passes must be >= 0, got %d", ErrInvalidConfig, c.RelaxationPasses)
	case !finite(c.Epsilon) || c.Epsilon <= 0:
		return fmt.Errorf("%w: epsilon must be positive, got %v", ErrInvalidConfig, c.Epsilon)
	}
	if c.Policy != PolicyElastic && c.Policy != PolicyInelastic {
		return fmt.Errorf("%w: unknown collision policy %q", ErrInvalidConfig, c.Policy)
	}
	if c.Contact != ContactResting && c.Contact != ContactInstantaneous {
		return fmt.Errorf("%w: unknown contact distance %q", ErrInvalidConfig, c.Contact)
	}
	if c.Walls != nil {
		if err := c.Walls.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
