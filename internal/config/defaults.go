package config

import (
	_ "embed"
)

//go:embed defaults/snakepit.yaml
var defaultYAML []byte

// DefaultConfig returns the default game configuration.
// Used as the final fallback when no YAML source is available.
func DefaultConfig() Config {
	return Config{
		Board: BoardConfig{
			Width:  40,
			Height: 20,
		},
		Snake: SnakeConfig{
			InitialLength: 3,
			SafetyMargin:  2,
		},
		Obstacles: ObstacleConfig{
			MinCount:      3,
			MaxCount:      6,
			MinSize:       1,
			MaxSize:       3,
			ReshapeMinSec: 20,
			ReshapeMaxSec: 45,
		},
		Traps: TrapConfig{
			SpawnMinMs: 5000,
			SpawnMaxMs: 12000,
			MaxActive:  3,
			WarningMs:  2000,
		},
		Speed: SpeedConfig{
			InitialTickMs: 180,
			StepMs:        12,
			FloorMs:       70,
		},
		Autosave: AutosaveConfig{
			IntervalSec: 5,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultYAML
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	// DifficultyFixed disables speed acceleration entirely.
	DifficultyFixed DifficultyPreset = "fixed"
)

// ValidPreset reports whether the preset name is recognized.
func ValidPreset(preset DifficultyPreset) bool {
	switch preset {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed, "":
		return true
	}
	return false
}

// ApplyPreset adjusts spawn pressure and speed based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Obstacles.MinCount = 2
		cfg.Obstacles.MaxCount = 4
		cfg.Traps.SpawnMinMs = 9000
		cfg.Traps.SpawnMaxMs = 18000
		cfg.Traps.MaxActive = 2
		cfg.Speed.FloorMs = 100
	case DifficultyHard:
		cfg.Obstacles.MinCount = 5
		cfg.Obstacles.MaxCount = 9
		cfg.Traps.SpawnMinMs = 3000
		cfg.Traps.SpawnMaxMs = 8000
		cfg.Traps.MaxActive = 5
		cfg.Obstacles.ReshapeMinSec = 12
		cfg.Obstacles.ReshapeMaxSec = 30
		cfg.Speed.FloorMs = 55
	case DifficultyFixed:
		cfg.Speed.StepMs = 0
	}
}
