package cliconfig

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Default locations and run settings for the envtap command.
const (
	DefaultRoot      = "experiments"
	DefaultProject   = "envtap"
	DefaultGame      = "catch"
	DefaultEvalSuite = "generic"
	DefaultDiscount  = 0.997
	DefaultFrameSkip = 4
	DefaultSteps     = 1000

	registryFile = "runs.db"
)

// Config holds CLI configuration for envtap.
type Config struct {
	Root    string
	Project string
	Game    string

	Discount        float64
	ConvertToString bool
	Train           bool
	Eval            bool
	EvalSuite       string
	FrameSkip       int

	// Synthetic environment
	Steps    int
	Seed     int
	Height   int
	Width    int
	Channels int
	Actions  int
	Lives    int

	RegistryPath string
	NoRegistry   bool

	LogLevel string
	LogFile  string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Root:            DefaultRoot,
		Project:         DefaultProject,
		Game:            DefaultGame,
		Discount:        DefaultDiscount,
		ConvertToString: true,
		Train:           true,
		EvalSuite:       DefaultEvalSuite,
		FrameSkip:       DefaultFrameSkip,
		Steps:           DefaultSteps,
		Seed:            1,
		Height:          16,
		Width:           12,
		Channels:        1,
		Actions:         3,
		Lives:           3,
		LogLevel:        "info",
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("root is required")
	}
	if c.Game == "" {
		return fmt.Errorf("game is required")
	}
	if strings.ContainsAny(c.Game, `/\`) {
		return fmt.Errorf("game %q must not contain path separators", c.Game)
	}
	if c.Project == "" {
		c.Project = DefaultProject
	}
	if c.Discount < 0 || c.Discount > 1 {
		return fmt.Errorf("discount must be within [0, 1], got %v", c.Discount)
	}
	if c.FrameSkip < 0 {
		return fmt.Errorf("frame skip must not be negative")
	}
	if c.Eval && c.EvalSuite == "" {
		c.EvalSuite = DefaultEvalSuite
	}
	if c.Steps <= 0 {
		return fmt.Errorf("steps must be positive")
	}

	if c.RegistryPath == "" && !c.NoRegistry {
		c.RegistryPath = filepath.Join(c.Root, c.Project, registryFile)
	}

	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setFloat sets a float64 value if positive and flag not changed.
func (s *configSetter) setFloat(flag string, value float64, dst *float64) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setFloatFromString parses a string to float64 and sets the destination if valid.
func (s *configSetter) setFloatFromString(flag, value string, dst *float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if f <= 0 {
		return nil
	}
	*dst = f
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
