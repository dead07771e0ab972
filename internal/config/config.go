// Package config holds the tunable constants of the simulation and their
// YAML-based loading. Every geometric threshold used by placement validation
// lives here; the defaults match the values the game was balanced around and
// are empirical, not physically derived.
package config

import "fmt"

// Config groups all tunables.
type Config struct {
	Physics   PhysicsConfig   `yaml:"physics"`
	Placement PlacementConfig `yaml:"placement"`
	Support   SupportConfig   `yaml:"support"`
	Ground    GroundConfig    `yaml:"ground"`
	Viewer    ViewerConfig    `yaml:"viewer"`
}

// PhysicsConfig defines the simulation step and the engine defaults applied
// to every dynamic body.
type PhysicsConfig struct {
	Gravity        float32 `yaml:"gravity"` // magnitude, applied straight down
	FixedStep      float32 `yaml:"fixed_step"`
	MaxSubSteps    int     `yaml:"max_sub_steps"`
	LinearDamping  float32 `yaml:"linear_damping"`
	AngularDamping float32 `yaml:"angular_damping"`
	Restitution    float32 `yaml:"restitution"`
}

// PlacementConfig defines grid snapping and the overlap tolerance used when
// validating a candidate position.
type PlacementConfig struct {
	GridSize            float32 `yaml:"grid_size"`
	BuildableHalfExtent float32 `yaml:"buildable_half_extent"`
	CollisionTolerance  float32 `yaml:"collision_tolerance"`
	MinUpNormal         float32 `yaml:"min_up_normal"` // normal.y above this counts as a resting surface
}

// SupportConfig defines the coverage heuristic deciding whether a candidate
// rests on enough material. Tunables, not a center-of-mass analysis.
type SupportConfig struct {
	GroundTolerance   float32 `yaml:"ground_tolerance"`   // bottom face within this of Y=0 counts as grounded
	VerticalTolerance float32 `yaml:"vertical_tolerance"` // max gap between bottom face and a supporting top face
	Coverage          float32 `yaml:"coverage"`           // required footprint overlap per axis, as a fraction of the candidate half extent
}

// GroundConfig describes the one static ground body.
type GroundConfig struct {
	HalfExtents [3]float32 `yaml:"half_extents"`
	TopY        float32    `yaml:"top_y"`
	Friction    float32    `yaml:"friction"`
}

// ViewerConfig configures the websocket viewer server.
type ViewerConfig struct {
	Addr             string `yaml:"addr"`
	TickRate         int    `yaml:"tick_rate"`
	UpdateIntervalMS int    `yaml:"update_interval_ms"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Physics: PhysicsConfig{
			Gravity:        50.0,
			FixedStep:      1.0 / 60.0,
			MaxSubSteps:    3,
			LinearDamping:  0.1,
			AngularDamping: 0.4,
			Restitution:    0.0,
		},
		Placement: PlacementConfig{
			GridSize:            5.0,
			BuildableHalfExtent: 80.0,
			CollisionTolerance:  0.5,
			MinUpNormal:         0.5,
		},
		Support: SupportConfig{
			GroundTolerance:   0.5,
			VerticalTolerance: 1.0,
			Coverage:          0.4,
		},
		Ground: GroundConfig{
			HalfExtents: [3]float32{200, 1, 200},
			TopY:        0,
			Friction:    0.9,
		},
		Viewer: ViewerConfig{
			Addr:             ":8080",
			TickRate:         60,
			UpdateIntervalMS: 50,
		},
	}
}

// Validate checks the invariants the simulation relies on.
func (c *Config) Validate() error {
	if c.Physics.Gravity <= 0 {
		return fmt.Errorf("physics.gravity must be positive, got %v", c.Physics.Gravity)
	}
	if c.Physics.FixedStep <= 0 {
		return fmt.Errorf("physics.fixed_step must be positive, got %v", c.Physics.FixedStep)
	}
	if c.Physics.MaxSubSteps < 1 {
		return fmt.Errorf("physics.max_sub_steps must be at least 1, got %d", c.Physics.MaxSubSteps)
	}
	if c.Placement.GridSize <= 0 {
		return fmt.Errorf("placement.grid_size must be positive, got %v", c.Placement.GridSize)
	}
	if c.Placement.BuildableHalfExtent <= 0 {
		return fmt.Errorf("placement.buildable_half_extent must be positive, got %v", c.Placement.BuildableHalfExtent)
	}
	if c.Support.Coverage <= 0 || c.Support.Coverage > 1 {
		return fmt.Errorf("support.coverage must be in (0, 1], got %v", c.Support.Coverage)
	}
	for _, h := range c.Ground.HalfExtents {
		if h <= 0 {
			return fmt.Errorf("ground.half_extents must be strictly positive, got %v", c.Ground.HalfExtents)
		}
	}
	if c.Viewer.TickRate < 1 {
		return fmt.Errorf("viewer.tick_rate must be at least 1, got %d", c.Viewer.TickRate)
	}
	return nil
}
