package cliconfig

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable read by ApplyEnvConfig.
const EnvPrefix = "ENVTAP_"

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment.
// Variables that are already set are left alone. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" || !FileExists(path) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyEnvConfig applies configuration from environment variables (ENVTAP_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)
	env := func(name string) string { return os.Getenv(EnvPrefix + name) }

	s.setString("root", env("ROOT"), &cfg.Root)
	s.setString("project", env("PROJECT"), &cfg.Project)
	s.setString("game", env("GAME"), &cfg.Game)
	s.setString("eval-suite", env("EVAL_SUITE"), &cfg.EvalSuite)
	s.setString("registry", env("REGISTRY"), &cfg.RegistryPath)
	s.setString("log-level", env("LOG_LEVEL"), &cfg.LogLevel)
	s.setString("log-file", env("LOG_FILE"), &cfg.LogFile)

	if err := s.setFloatFromString("discount", env("DISCOUNT"), &cfg.Discount); err != nil {
		return err
	}

	ints := []struct {
		flag, name string
		dst        *int
	}{
		{"frame-skip", "FRAME_SKIP", &cfg.FrameSkip},
		{"steps", "STEPS", &cfg.Steps},
		{"seed", "SEED", &cfg.Seed},
		{"height", "HEIGHT", &cfg.Height},
		{"width", "WIDTH", &cfg.Width},
		{"channels", "CHANNELS", &cfg.Channels},
		{"actions", "ACTIONS", &cfg.Actions},
		{"lives", "LIVES", &cfg.Lives},
	}
	for _, v := range ints {
		if err := s.setIntFromString(v.flag, env(v.name), v.dst); err != nil {
			return err
		}
	}

	s.setBoolFromString("cvt-string", env("CVT_STRING"), &cfg.ConvertToString)
	s.setBoolFromString("train", env("TRAIN"), &cfg.Train)
	s.setBoolFromString("eval", env("EVAL"), &cfg.Eval)
	s.setBoolFromString("no-registry", env("NO_REGISTRY"), &cfg.NoRegistry)

	return nil
}
