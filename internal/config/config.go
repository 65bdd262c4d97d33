// Package config provides YAML-based configuration loading and difficulty
// presets for the game.
package config

import (
	"fmt"
	"time"
)

// Config contains all tunable game parameters.
type Config struct {
	Board     BoardConfig    `yaml:"board"`
	Snake     SnakeConfig    `yaml:"snake"`
	Obstacles ObstacleConfig `yaml:"obstacles"`
	Traps     TrapConfig     `yaml:"traps"`
	Speed     SpeedConfig    `yaml:"speed"`
	Autosave  AutosaveConfig `yaml:"autosave"`
}

// BoardConfig defines the toroidal board dimensions.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SnakeConfig defines snake parameters.
type SnakeConfig struct {
	InitialLength int `yaml:"initial_length"`
	// SafetyMargin is the clearance, in cells, kept between the snake body
	// and any freshly placed obstacle.
	SafetyMargin int `yaml:"safety_margin"`
}

// ObstacleConfig defines obstacle placement and reshape parameters.
type ObstacleConfig struct {
	MinCount      int `yaml:"min_count"`
	MaxCount      int `yaml:"max_count"`
	MinSize       int `yaml:"min_size"`
	MaxSize       int `yaml:"max_size"`
	ReshapeMinSec int `yaml:"reshape_min_sec"`
	ReshapeMaxSec int `yaml:"reshape_max_sec"`
}

// TrapConfig defines trap spawn parameters.
type TrapConfig struct {
	SpawnMinMs int `yaml:"spawn_min_ms"`
	SpawnMaxMs int `yaml:"spawn_max_ms"`
	MaxActive  int `yaml:"max_active"`
	// WarningMs is how long a triggered trap stays visible before removal.
	WarningMs int `yaml:"warning_ms"`
}

// SpeedConfig defines the tick cadence and its acceleration.
type SpeedConfig struct {
	InitialTickMs int `yaml:"initial_tick_ms"`
	StepMs        int `yaml:"step_ms"`
	FloorMs       int `yaml:"floor_ms"`
}

// AutosaveConfig defines the periodic state save.
type AutosaveConfig struct {
	IntervalSec int `yaml:"interval_sec"`
}

// InitialInterval returns the starting tick interval as a duration.
func (s SpeedConfig) InitialInterval() time.Duration {
	return time.Duration(s.InitialTickMs) * time.Millisecond
}

// Step returns the tick interval decrease per speed-up as a duration.
func (s SpeedConfig) Step() time.Duration {
	return time.Duration(s.StepMs) * time.Millisecond
}

// Floor returns the minimum tick interval as a duration.
func (s SpeedConfig) Floor() time.Duration {
	return time.Duration(s.FloorMs) * time.Millisecond
}

// SpawnMin returns the minimum trap spawn delay as a duration.
func (t TrapConfig) SpawnMin() time.Duration {
	return time.Duration(t.SpawnMinMs) * time.Millisecond
}

// SpawnMax returns the maximum trap spawn delay as a duration.
func (t TrapConfig) SpawnMax() time.Duration {
	return time.Duration(t.SpawnMaxMs) * time.Millisecond
}

// Warning returns the triggered-trap display duration.
func (t TrapConfig) Warning() time.Duration {
	return time.Duration(t.WarningMs) * time.Millisecond
}

// Interval returns the autosave period as a duration.
func (a AutosaveConfig) Interval() time.Duration {
	return time.Duration(a.IntervalSec) * time.Second
}

// Validate checks the configuration for values the simulation cannot run with.
func (c Config) Validate() error {
	if c.Board.Width < 8 || c.Board.Height < 6 {
		return fmt.Errorf("config: board %dx%d too small (minimum 8x6)", c.Board.Width, c.Board.Height)
	}
	if c.Snake.InitialLength < 1 {
		return fmt.Errorf("config: initial snake length must be at least 1, got %d", c.Snake.InitialLength)
	}
	if c.Snake.InitialLength >= c.Board.Width {
		return fmt.Errorf("config: initial snake length %d does not fit board width %d", c.Snake.InitialLength, c.Board.Width)
	}
	if c.Obstacles.MinCount > c.Obstacles.MaxCount {
		return fmt.Errorf("config: obstacle min_count %d exceeds max_count %d", c.Obstacles.MinCount, c.Obstacles.MaxCount)
	}
	if c.Obstacles.MinSize < 1 || c.Obstacles.MinSize > c.Obstacles.MaxSize {
		return fmt.Errorf("config: invalid obstacle size range [%d, %d]", c.Obstacles.MinSize, c.Obstacles.MaxSize)
	}
	if c.Obstacles.ReshapeMinSec < 1 || c.Obstacles.ReshapeMinSec > c.Obstacles.ReshapeMaxSec {
		return fmt.Errorf("config: invalid reshape interval [%d, %d]", c.Obstacles.ReshapeMinSec, c.Obstacles.ReshapeMaxSec)
	}
	if c.Traps.SpawnMinMs < 1 || c.Traps.SpawnMinMs > c.Traps.SpawnMaxMs {
		return fmt.Errorf("config: invalid trap spawn interval [%d, %d]", c.Traps.SpawnMinMs, c.Traps.SpawnMaxMs)
	}
	if c.Traps.MaxActive < 0 {
		return fmt.Errorf("config: max_active traps must not be negative, got %d", c.Traps.MaxActive)
	}
	if c.Speed.InitialTickMs < 1 || c.Speed.FloorMs < 1 {
		return fmt.Errorf("config: tick intervals must be positive")
	}
	if c.Speed.FloorMs > c.Speed.InitialTickMs {
		return fmt.Errorf("config: speed floor %dms exceeds initial interval %dms", c.Speed.FloorMs, c.Speed.InitialTickMs)
	}
	if c.Speed.StepMs < 0 {
		return fmt.Errorf("config: speed step must not be negative, got %d", c.Speed.StepMs)
	}
	if c.Autosave.IntervalSec < 1 {
		return fmt.Errorf("config: autosave interval must be at least 1s, got %d", c.Autosave.IntervalSec)
	}
	return nil
}
