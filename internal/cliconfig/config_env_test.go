package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				"ENVTAP_ROOT":       "/env/exp",
				"ENVTAP_GAME":       "pong",
				"ENVTAP_DISCOUNT":   "0.9",
				"ENVTAP_FRAME_SKIP": "2",
				"ENVTAP_EVAL":       "true",
				"ENVTAP_CVT_STRING": "0",
			},
			changed: map[string]bool{},
			initial: Config{ConvertToString: true},
			expected: Config{
				Root:      "/env/exp",
				Game:      "pong",
				Discount:  0.9,
				FrameSkip: 2,
				Eval:      true,
			},
		},
		{
			name: "respects changed flags",
			envVars: map[string]string{
				"ENVTAP_ROOT": "/env/exp",
				"ENVTAP_GAME": "pong",
			},
			changed: map[string]bool{"root": true},
			initial: Config{Root: "/flag"},
			expected: Config{
				Root: "/flag",
				Game: "pong",
			},
		},
		{
			name: "returns error for invalid int",
			envVars: map[string]string{
				"ENVTAP_STEPS": "many",
			},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name: "returns error for invalid float",
			envVars: map[string]string{
				"ENVTAP_DISCOUNT": "not-a-float",
			},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name: "handles bool '1' as true",
			envVars: map[string]string{
				"ENVTAP_NO_REGISTRY": "1",
			},
			changed:  map[string]bool{},
			expected: Config{NoRegistry: true},
		},
		{
			name: "handles all field types correctly",
			envVars: map[string]string{
				"ENVTAP_ROOT":       "/r",
				"ENVTAP_PROJECT":    "proj",
				"ENVTAP_GAME":       "g",
				"ENVTAP_EVAL_SUITE": "suite",
				"ENVTAP_REGISTRY":   "/r/runs.db",
				"ENVTAP_LOG_LEVEL":  "debug",
				"ENVTAP_LOG_FILE":   "/r/log",
				"ENVTAP_STEPS":      "10",
				"ENVTAP_SEED":       "7",
				"ENVTAP_HEIGHT":     "4",
				"ENVTAP_WIDTH":      "5",
				"ENVTAP_CHANNELS":   "3",
				"ENVTAP_ACTIONS":    "6",
				"ENVTAP_LIVES":      "2",
				"ENVTAP_TRAIN":      "true",
			},
			changed: map[string]bool{},
			expected: Config{
				Root:         "/r",
				Project:      "proj",
				Game:         "g",
				EvalSuite:    "suite",
				RegistryPath: "/r/runs.db",
				LogLevel:     "debug",
				LogFile:      "/r/log",
				Steps:        10,
				Seed:         7,
				Height:       4,
				Width:        5,
				Channels:     3,
				Actions:      6,
				Lives:        2,
				Train:        true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)

			if tt.wantErr {
				if err == nil {
					t.Error("ApplyEnvConfig() expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyEnvConfig() unexpected error: %v", err)
			}
			if cfg != tt.expected {
				t.Errorf("ApplyEnvConfig() = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "ENVTAP_GAME=dotenv-game\nENVTAP_ROOT=/dotenv\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	// process env wins over the file
	t.Setenv("ENVTAP_ROOT", "/process")
	t.Setenv("ENVTAP_GAME", "")
	os.Unsetenv("ENVTAP_GAME")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv("ENVTAP_GAME"); got != "dotenv-game" {
		t.Errorf("ENVTAP_GAME = %q, want dotenv-game", got)
	}
	if got := os.Getenv("ENVTAP_ROOT"); got != "/process" {
		t.Errorf("ENVTAP_ROOT = %q, want /process", got)
	}
}

func TestLoadDotEnv_Missing(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("LoadDotEnv() error = %v, want nil", err)
	}
	if err := LoadDotEnv(""); err != nil {
		t.Errorf("LoadDotEnv(\"\") error = %v, want nil", err)
	}
}
