package envtap

import (
	"fmt"

	"github.com/bft-labs/envtap/pkg/steplog"
)

// DefaultFrameSkip is the number of raw simulator ticks one logical step
// represents.
const DefaultFrameSkip = 4

// DefaultRoot is the experiments root used when none is configured.
const DefaultRoot = "experiments"

// Config holds the per-run settings of an Adapter.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config struct {
	// Game is the human-readable environment name used in sink paths
	Game string

	// Discount is stored for downstream consumers and never validated here
	Discount float64

	// ConvertToString encodes observations with the frame codec
	ConvertToString bool

	// Train enables the training sink
	Train bool

	// Eval enables the evaluation sink
	Eval bool

	// EvalSuite names the evaluation sink directory (test-<suite>)
	EvalSuite string

	// Root is the experiments root directory for file sinks
	Root string

	// Project is the fixed project label below Root
	Project string

	// FrameSkip is the number of raw ticks per step; zero means DefaultFrameSkip
	FrameSkip int

	// DisableFrameCount stops the real_frame_count info enrichment
	DisableFrameCount bool
}

// DefaultConfig returns a Config with default values. Logging is off.
func DefaultConfig() Config {
	return Config{
		Discount:        0.997,
		ConvertToString: true,
		EvalSuite:       steplog.DefaultSuite,
		Root:            DefaultRoot,
		Project:         steplog.DefaultProject,
		FrameSkip:       DefaultFrameSkip,
	}
}

// SetDefaults fills unset fields with their defaults.
func (c *Config) SetDefaults() {
	if c.EvalSuite == "" {
		c.EvalSuite = steplog.DefaultSuite
	}
	if c.Root == "" {
		c.Root = DefaultRoot
	}
	if c.Project == "" {
		c.Project = steplog.DefaultProject
	}
	if c.FrameSkip == 0 {
		c.FrameSkip = DefaultFrameSkip
	}
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if c.FrameSkip < 0 {
		return fmt.Errorf("%w: frame skip must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Logging reports whether any sink is enabled.
func (c Config) Logging() bool {
	return c.Train || c.Eval
}
