package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config with optional booleans so an absent key keeps the default.
type FileConfig struct {
	Root            string  `toml:"root"`
	Project         string  `toml:"project"`
	Game            string  `toml:"game"`
	Discount        float64 `toml:"discount"`
	ConvertToString *bool   `toml:"cvt_string"`
	Train           *bool   `toml:"train"`
	Eval            *bool   `toml:"eval"`
	EvalSuite       string  `toml:"eval_suite"`
	FrameSkip       int     `toml:"frame_skip"`
	Steps           int     `toml:"steps"`
	Seed            int     `toml:"seed"`
	Height          int     `toml:"height"`
	Width           int     `toml:"width"`
	Channels        int     `toml:"channels"`
	Actions         int     `toml:"actions"`
	Lives           int     `toml:"lives"`
	RegistryPath    string  `toml:"registry"`
	NoRegistry      *bool   `toml:"no_registry"`
	LogLevel        string  `toml:"log_level"`
	LogFile         string  `toml:"log_file"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.envtap/config.toml, or "" when the home
// directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".envtap", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("root", fc.Root, &cfg.Root)
	s.setString("project", fc.Project, &cfg.Project)
	s.setString("game", fc.Game, &cfg.Game)
	s.setString("eval-suite", fc.EvalSuite, &cfg.EvalSuite)
	s.setString("registry", fc.RegistryPath, &cfg.RegistryPath)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("log-file", fc.LogFile, &cfg.LogFile)

	s.setFloat("discount", fc.Discount, &cfg.Discount)

	s.setInt("frame-skip", fc.FrameSkip, &cfg.FrameSkip)
	s.setInt("steps", fc.Steps, &cfg.Steps)
	s.setInt("seed", fc.Seed, &cfg.Seed)
	s.setInt("height", fc.Height, &cfg.Height)
	s.setInt("width", fc.Width, &cfg.Width)
	s.setInt("channels", fc.Channels, &cfg.Channels)
	s.setInt("actions", fc.Actions, &cfg.Actions)
	s.setInt("lives", fc.Lives, &cfg.Lives)

	s.setBool("cvt-string", fc.ConvertToString, &cfg.ConvertToString)
	s.setBool("train", fc.Train, &cfg.Train)
	s.setBool("eval", fc.Eval, &cfg.Eval)
	s.setBool("no-registry", fc.NoRegistry, &cfg.NoRegistry)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
