package cliconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestApplyFileConfig(t *testing.T) {
	trueVal := true
	falseVal := false

	tests := []struct {
		name       string
		fileConfig FileConfig
		changed    map[string]bool
		initial    Config
		expected   Config
	}{
		{
			name: "applies all valid config values",
			fileConfig: FileConfig{
				Root:            "/exp",
				Game:            "pong",
				Discount:        0.99,
				ConvertToString: &falseVal,
				Eval:            &trueVal,
				EvalSuite:       "atari",
				FrameSkip:       2,
				Steps:           50,
			},
			changed: map[string]bool{},
			initial: DefaultConfig(),
			expected: func() Config {
				c := DefaultConfig()
				c.Root = "/exp"
				c.Game = "pong"
				c.Discount = 0.99
				c.ConvertToString = false
				c.Eval = true
				c.EvalSuite = "atari"
				c.FrameSkip = 2
				c.Steps = 50
				return c
			}(),
		},
		{
			name: "respects changed flags",
			fileConfig: FileConfig{
				Root: "/config/root",
				Game: "breakout",
			},
			changed: map[string]bool{"root": true},
			initial: Config{
				Root: "/flag/root",
				Game: "pong",
			},
			expected: Config{
				Root: "/flag/root", // unchanged because flag was set
				Game: "breakout",
			},
		},
		{
			name: "zero values keep current settings",
			fileConfig: FileConfig{
				Steps: 0,
			},
			changed:  map[string]bool{},
			initial:  DefaultConfig(),
			expected: DefaultConfig(),
		},
		{
			name: "synthetic board and logging",
			fileConfig: FileConfig{
				Height:       8,
				Width:        6,
				Channels:     3,
				Actions:      5,
				Lives:        1,
				Seed:         42,
				RegistryPath: "/r.db",
				NoRegistry:   &trueVal,
				LogLevel:     "debug",
				LogFile:      "/tmp/envtap.log",
				Train:        &falseVal,
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				Height:       8,
				Width:        6,
				Channels:     3,
				Actions:      5,
				Lives:        1,
				Seed:         42,
				RegistryPath: "/r.db",
				NoRegistry:   true,
				LogLevel:     "debug",
				LogFile:      "/tmp/envtap.log",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			if err := ApplyFileConfig(&cfg, tt.fileConfig, tt.changed); err != nil {
				t.Fatalf("ApplyFileConfig() unexpected error: %v", err)
			}
			if cfg != tt.expected {
				t.Errorf("ApplyFileConfig() = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.toml")

	tomlContent := `
root = "/tmp/exp"
game = "pong"
discount = 0.95
cvt_string = false
frame_skip = 3
log_level = "warn"
`

	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	fc, err := LoadFileConfig(configPath)
	if err != nil {
		t.Fatalf("LoadFileConfig() error = %v", err)
	}

	if fc.Root != "/tmp/exp" {
		t.Errorf("Root = %v, want /tmp/exp", fc.Root)
	}
	if fc.Game != "pong" {
		t.Errorf("Game = %v, want pong", fc.Game)
	}
	if fc.Discount != 0.95 {
		t.Errorf("Discount = %v, want 0.95", fc.Discount)
	}
	if fc.ConvertToString == nil || *fc.ConvertToString {
		t.Errorf("ConvertToString = %v, want false", fc.ConvertToString)
	}
	if fc.FrameSkip != 3 {
		t.Errorf("FrameSkip = %v, want 3", fc.FrameSkip)
	}
	if fc.Train != nil {
		t.Errorf("Train = %v, want nil", fc.Train)
	}
	if fc.LogLevel != "warn" {
		t.Errorf("LogLevel = %v, want warn", fc.LogLevel)
	}
}

func TestLoadFileConfig_InvalidFile(t *testing.T) {
	_, err := LoadFileConfig("/nonexistent/path/config.toml")
	if err == nil {
		t.Error("LoadFileConfig() expected error for nonexistent file")
	}
}

func TestLoadFileConfig_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.toml")

	invalidContent := `
root = "/test"
this is not valid toml
`

	if err := os.WriteFile(configPath, []byte(invalidContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	_, err := LoadFileConfig(configPath)
	if err == nil {
		t.Error("LoadFileConfig() expected error for invalid TOML")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()

	if path != "" && !strings.Contains(path, ".envtap") {
		t.Errorf("DefaultConfigPath() = %v, should contain .envtap", path)
	}
}

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	existingFile := filepath.Join(tmpDir, "exists.txt")

	if err := os.WriteFile(existingFile, []byte("test"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if !FileExists(existingFile) {
		t.Error("FileExists() = false, want true for existing file")
	}

	if FileExists(filepath.Join(tmpDir, "nonexistent.txt")) {
		t.Error("FileExists() = true, want false for nonexistent file")
	}
}
