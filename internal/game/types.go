// Package game implements the survival snake simulation core: the per-tick
// state transition, collision resolution, entity placement, the trap and
// obstacle-reshape schedulers, and the session lifecycle around them.
package game

import (
	"time"

	"github.com/vovakirdan/snakepit/internal/core"
)

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Delta returns the unit vector for the direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirUp:
		return 0, -1
	}
	return 0, 0
}

// Opposite returns the exact reverse of the direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirRight:
		return DirLeft
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirUp:
		return DirDown
	}
	return d
}

func (d Direction) String() string {
	switch d {
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirUp:
		return "up"
	default:
		return "unknown"
	}
}

// Trap is a transient hazard. Touching it halves the snake; a triggered
// trap stays on the board for a warning period, then disappears.
type Trap struct {
	ID          int        `json:"id"`
	Pos         core.Point `json:"pos"`
	SpawnedAt   time.Time  `json:"spawned_at"`
	Triggered   bool       `json:"triggered"`
	TriggeredAt time.Time  `json:"triggered_at,omitempty"`
}

// Obstacle is a permanent rectangular hazard. Immutable once placed; the
// whole set is replaced by the reshape scheduler.
type Obstacle struct {
	ID   int       `json:"id"`
	Rect core.Rect `json:"rect"`
}

// State represents the session state machine.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StatePaused
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// EndReason describes why a session ended.
type EndReason string

const (
	EndReasonSelfCollision     EndReason = "self-collision"
	EndReasonObstacleCollision EndReason = "obstacle-collision"
	EndReasonUserQuit          EndReason = "user-quit"
)
