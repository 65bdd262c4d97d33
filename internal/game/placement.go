package game

import (
	"math/rand"

	"github.com/vovakirdan/snakepit/internal/core"
)

// maxPlacementAttempts bounds every rejection-sampling loop. Exhausting the
// budget degrades placement (best-effort food, skipped trap or obstacle)
// instead of failing.
const maxPlacementAttempts = 100

// placeFood picks a uniformly random cell free of the snake, live traps and
// obstacle footprints. If the attempt budget runs out, the last candidate is
// returned even if occupied; on a crowded board a briefly overlapping food
// beats no food at all.
func placeFood(rng *rand.Rand, snake []core.Point, traps []Trap, obstacles []Obstacle, w, h int) core.Point {
	var candidate core.Point
	for range maxPlacementAttempts {
		candidate = core.Point{X: rng.Intn(w), Y: rng.Intn(h)}
		if !cellOccupied(candidate, snake, traps, obstacles) {
			return candidate
		}
	}
	return candidate
}

// placeTrap picks a free cell for a new trap, additionally avoiding the
// food cell. Returns false when no free cell was found within the attempt
// budget; the caller skips this spawn cycle.
func placeTrap(rng *rand.Rand, snake []core.Point, food core.Point, traps []Trap, obstacles []Obstacle, w, h int) (core.Point, bool) {
	for range maxPlacementAttempts {
		candidate := core.Point{X: rng.Intn(w), Y: rng.Intn(h)}
		if candidate == food {
			continue
		}
		if cellOccupied(candidate, snake, traps, obstacles) {
			continue
		}
		return candidate, true
	}
	return core.Point{}, false
}

// cellOccupied reports whether the cell overlaps the snake, any trap, or
// any obstacle footprint.
func cellOccupied(p core.Point, snake []core.Point, traps []Trap, obstacles []Obstacle) bool {
	for _, seg := range snake {
		if seg == p {
			return true
		}
	}
	for _, trap := range traps {
		if trap.Pos == p {
			return true
		}
	}
	for _, obs := range obstacles {
		if obs.Rect.ContainsPoint(p) {
			return true
		}
	}
	return false
}

// placeObstacles generates up to count non-overlapping rectangles, rejecting
// any that cover an exclusion cell. Each obstacle has its own attempt
// budget; unplaceable obstacles are skipped, so the result may hold fewer
// than count entries.
func placeObstacles(rng *rand.Rand, count, minSize, maxSize int, exclusion []core.Point, w, h int) []Obstacle {
	return placeObstacleSet(rng, count, minSize, maxSize, w, h, func(r core.Rect) bool {
		for _, cell := range exclusion {
			if r.ContainsPoint(cell) {
				return true
			}
		}
		return false
	})
}

// placeSafeObstacles is placeObstacles with the exclusion set equal to the
// snake's body expanded by margin cells in every direction, so a live
// reshape cannot drop an obstacle onto or right next to the snake.
func placeSafeObstacles(rng *rand.Rand, count, minSize, maxSize int, snake []core.Point, margin int, w, h int) []Obstacle {
	return placeObstacleSet(rng, count, minSize, maxSize, w, h, func(r core.Rect) bool {
		grown := r.Expand(margin)
		for _, seg := range snake {
			if grown.ContainsPoint(seg) {
				return true
			}
		}
		return false
	})
}

func placeObstacleSet(rng *rand.Rand, count, minSize, maxSize int, w, h int, blocked func(core.Rect) bool) []Obstacle {
	obstacles := make([]Obstacle, 0, count)

	for range count {
		for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
			ow := randSize(rng, minSize, maxSize)
			oh := randSize(rng, minSize, maxSize)
			if ow > w || oh > h {
				continue
			}
			rect := core.NewRect(rng.Intn(w-ow+1), rng.Intn(h-oh+1), ow, oh)

			if blocked(rect) {
				continue
			}

			overlaps := false
			for _, obs := range obstacles {
				if rect.Intersects(obs.Rect) {
					overlaps = true
					break
				}
			}
			if overlaps {
				continue
			}

			obstacles = append(obstacles, Obstacle{ID: len(obstacles) + 1, Rect: rect})
			break
		}
	}

	return obstacles
}

func randSize(rng *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + rng.Intn(max-min+1)
}
