package game

import "github.com/vovakirdan/snakepit/internal/core"

// Collision classifies a proposed head position.
type Collision int

const (
	CollisionNone Collision = iota
	CollisionSelf
	CollisionObstacle
	CollisionTrap
	CollisionFood
)

// Terminal reports whether the collision ends the session.
func (c Collision) Terminal() bool {
	return c == CollisionSelf || c == CollisionObstacle
}

func (c Collision) String() string {
	switch c {
	case CollisionNone:
		return "none"
	case CollisionSelf:
		return "self"
	case CollisionObstacle:
		return "obstacle"
	case CollisionTrap:
		return "trap"
	case CollisionFood:
		return "food"
	default:
		return "unknown"
	}
}

// classify resolves a proposed head cell against the current board state.
// The body is the snake before the head is prepended. Precedence: self,
// obstacle, trap, food; first match wins. For trap collisions the index of
// the hit trap is returned.
func classify(head core.Point, body []core.Point, obstacles []Obstacle, traps []Trap, food core.Point) (Collision, int) {
	for _, seg := range body {
		if seg == head {
			return CollisionSelf, -1
		}
	}

	for _, obs := range obstacles {
		if obs.Rect.ContainsPoint(head) {
			return CollisionObstacle, -1
		}
	}

	for i, trap := range traps {
		if !trap.Triggered && trap.Pos == head {
			return CollisionTrap, i
		}
	}

	if head == food {
		return CollisionFood, -1
	}

	return CollisionNone, -1
}
