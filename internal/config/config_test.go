package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestEmbeddedYAMLMatchesDefaults(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal(GetDefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("embedded YAML = %+v\nwant %+v", cfg, DefaultConfig())
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"tiny board", func(c *Config) { c.Board.Width = 4 }},
		{"zero snake", func(c *Config) { c.Snake.InitialLength = 0 }},
		{"snake wider than board", func(c *Config) { c.Snake.InitialLength = c.Board.Width }},
		{"obstacle count range inverted", func(c *Config) { c.Obstacles.MinCount = 9; c.Obstacles.MaxCount = 2 }},
		{"zero obstacle size", func(c *Config) { c.Obstacles.MinSize = 0 }},
		{"reshape range inverted", func(c *Config) { c.Obstacles.ReshapeMinSec = 50; c.Obstacles.ReshapeMaxSec = 10 }},
		{"trap spawn range inverted", func(c *Config) { c.Traps.SpawnMinMs = 9000; c.Traps.SpawnMaxMs = 100 }},
		{"negative trap cap", func(c *Config) { c.Traps.MaxActive = -1 }},
		{"zero tick", func(c *Config) { c.Speed.InitialTickMs = 0 }},
		{"floor above initial", func(c *Config) { c.Speed.FloorMs = c.Speed.InitialTickMs + 1 }},
		{"negative step", func(c *Config) { c.Speed.StepMs = -5 }},
		{"zero autosave", func(c *Config) { c.Autosave.IntervalSec = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate accepted a broken config")
			}
		})
	}
}

func TestDurationHelpers(t *testing.T) {
	cfg := DefaultConfig()

	if got := cfg.Speed.InitialInterval(); got != 180*time.Millisecond {
		t.Errorf("InitialInterval = %v, want 180ms", got)
	}
	if got := cfg.Traps.SpawnMin(); got != 5*time.Second {
		t.Errorf("SpawnMin = %v, want 5s", got)
	}
	if got := cfg.Traps.Warning(); got != 2*time.Second {
		t.Errorf("Warning = %v, want 2s", got)
	}
	if got := cfg.Autosave.Interval(); got != 5*time.Second {
		t.Errorf("Interval = %v, want 5s", got)
	}
}

func TestApplyPreset(t *testing.T) {
	easy := DefaultConfig()
	ApplyPreset(&easy, DifficultyEasy)
	if easy.Traps.MaxActive >= DefaultConfig().Traps.MaxActive {
		t.Error("easy preset did not lower the trap cap")
	}
	if err := easy.Validate(); err != nil {
		t.Errorf("easy preset invalid: %v", err)
	}

	hard := DefaultConfig()
	ApplyPreset(&hard, DifficultyHard)
	if hard.Obstacles.MaxCount <= DefaultConfig().Obstacles.MaxCount {
		t.Error("hard preset did not raise the obstacle count")
	}
	if err := hard.Validate(); err != nil {
		t.Errorf("hard preset invalid: %v", err)
	}

	fixed := DefaultConfig()
	ApplyPreset(&fixed, DifficultyFixed)
	if fixed.Speed.StepMs != 0 {
		t.Error("fixed preset did not disable acceleration")
	}

	normal := DefaultConfig()
	ApplyPreset(&normal, DifficultyNormal)
	if normal != DefaultConfig() {
		t.Error("normal preset must leave the defaults untouched")
	}
}

func TestValidPreset(t *testing.T) {
	for _, p := range []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed, ""} {
		if !ValidPreset(p) {
			t.Errorf("ValidPreset(%q) = false", p)
		}
	}
	if ValidPreset("nightmare") {
		t.Error("ValidPreset accepted an unknown name")
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	custom := `
board:
  width: 30
  height: 12
snake:
  initial_length: 4
  safety_margin: 1
obstacles:
  min_count: 1
  max_count: 2
  min_size: 1
  max_size: 2
  reshape_min_sec: 10
  reshape_max_sec: 20
traps:
  spawn_min_ms: 2000
  spawn_max_ms: 4000
  max_active: 1
  warning_ms: 1000
speed:
  initial_tick_ms: 150
  step_ms: 10
  floor_ms: 80
autosave:
  interval_sec: 3
`
	if err := os.WriteFile(path, []byte(custom), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Board.Width != 30 || cfg.Board.Height != 12 {
		t.Errorf("board = %dx%d, want 30x12", cfg.Board.Width, cfg.Board.Height)
	}
	if cfg.Snake.InitialLength != 4 {
		t.Errorf("initial length = %d, want 4", cfg.Snake.InitialLength)
	}
}

func TestLoadRejectsInvalidCustomConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("board:\n  width: 2\n  height: 2\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted an invalid custom config")
	}
}

func TestLoadMissingCustomPathFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load succeeded on a missing explicit path")
	}
}
