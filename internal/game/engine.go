package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/snakepit/internal/config"
	"github.com/vovakirdan/snakepit/internal/core"
)

// Engine holds the full board state and advances it one discrete step at a
// time. It is not safe for concurrent use; the Session serializes access.
type Engine struct {
	cfg config.Config
	rng *rand.Rand
	now func() time.Time

	tick      uint64
	state     State
	endReason EndReason

	// Snake body, head at index 0. Mutated only inside Tick.
	snake      []core.Point
	dir        Direction
	pendingDir Direction

	food       core.Point
	traps      []Trap
	nextTrapID int
	obstacles  []Obstacle

	score            int
	tickInterval     time.Duration
	reshapeCountdown int // seconds until the obstacle set is replaced
}

// NewEngine creates a fresh board: a snake heading right from the center,
// an initial obstacle set placed clear of it, and one food cell.
func NewEngine(cfg config.Config, seed int64) *Engine {
	e := &Engine{
		cfg:        cfg,
		rng:        rand.New(rand.NewSource(seed)),
		now:        time.Now,
		nextTrapID: 1,
	}

	w, h := cfg.Board.Width, cfg.Board.Height
	headX, headY := w/2, h/2
	e.snake = make([]core.Point, cfg.Snake.InitialLength)
	for i := range e.snake {
		e.snake[i] = core.Point{X: headX - i, Y: headY}.Wrap(w, h)
	}
	e.dir = DirRight
	e.pendingDir = DirRight

	e.obstacles = placeSafeObstacles(
		e.rng,
		e.randRange(cfg.Obstacles.MinCount, cfg.Obstacles.MaxCount),
		cfg.Obstacles.MinSize, cfg.Obstacles.MaxSize,
		e.snake, cfg.Snake.SafetyMargin,
		w, h,
	)
	e.food = placeFood(e.rng, e.snake, e.traps, e.obstacles, w, h)

	e.tickInterval = cfg.Speed.InitialInterval()
	e.reshapeCountdown = e.randRange(cfg.Obstacles.ReshapeMinSec, cfg.Obstacles.ReshapeMaxSec)
	e.state = StateIdle
	return e
}

// Start transitions Idle to Playing.
func (e *Engine) Start() {
	if e.state == StateIdle {
		e.state = StatePlaying
	}
}

// Pause transitions Playing to Paused.
func (e *Engine) Pause() {
	if e.state == StatePlaying {
		e.state = StatePaused
	}
}

// Resume transitions Paused to Playing.
func (e *Engine) Resume() {
	if e.state == StatePaused {
		e.state = StatePlaying
	}
}

// SetDirection requests a direction change, applied on the next tick.
// A change equal to the exact reverse of the current heading is rejected;
// anything else overwrites any still-pending request (last writer wins).
func (e *Engine) SetDirection(d Direction) bool {
	if d == e.dir.Opposite() {
		return false
	}
	e.pendingDir = d
	return true
}

// Tick advances the simulation by one step and returns the domain events
// the step produced. Only fires while Playing.
func (e *Engine) Tick() []Event {
	if e.state != StatePlaying {
		return nil
	}
	e.tick++
	e.dir = e.pendingDir

	var events []Event
	w, h := e.cfg.Board.Width, e.cfg.Board.Height

	dx, dy := e.dir.Delta()
	raw := e.snake[0].Add(dx, dy)
	head := raw.Wrap(w, h)
	if head != raw {
		events = append(events, Event{Kind: EventWallPassthrough, Tick: e.tick})
	}

	collision, trapIdx := classify(head, e.snake, e.obstacles, e.traps, e.food)
	switch collision {
	case CollisionSelf:
		e.end(EndReasonSelfCollision)
		return events

	case CollisionObstacle:
		e.end(EndReasonObstacleCollision)
		return events

	case CollisionTrap:
		preLen := len(e.snake)
		e.snake = append([]core.Point{head}, e.snake...)
		keep := core.Max(1, preLen/2)
		e.snake = e.snake[:keep]
		e.traps[trapIdx].Triggered = true
		e.traps[trapIdx].TriggeredAt = e.now()
		events = append(events, Event{
			Kind:   EventTrapHit,
			Tick:   e.tick,
			Detail: fmt.Sprintf("length %d -> %d", preLen, keep),
		})

	case CollisionFood:
		e.snake = append([]core.Point{head}, e.snake...)
		e.score++
		events = append(events, Event{
			Kind:   EventFoodEaten,
			Tick:   e.tick,
			Detail: fmt.Sprintf("score %d", e.score),
		})
		if e.score%10 == 0 && e.accelerate() {
			events = append(events, Event{
				Kind:   EventSpeedIncrease,
				Tick:   e.tick,
				Detail: fmt.Sprintf("interval %s", e.tickInterval),
			})
		}
		e.food = placeFood(e.rng, e.snake, e.traps, e.obstacles, w, h)

	case CollisionNone:
		e.snake = append([]core.Point{head}, e.snake...)
		e.snake = e.snake[:len(e.snake)-1]
	}

	return events
}

// accelerate lowers the tick interval by one step, floored at the
// configured minimum. Returns false if the interval did not change.
func (e *Engine) accelerate() bool {
	step := e.cfg.Speed.Step()
	floor := e.cfg.Speed.Floor()
	if step <= 0 || e.tickInterval <= floor {
		return false
	}
	e.tickInterval -= step
	if e.tickInterval < floor {
		e.tickInterval = floor
	}
	return true
}

// SpawnTrap attempts to place one trap, honoring the live-trap cap.
// Returns false when the cap is reached or no free cell was found; the
// scheduler treats both as "skip this cycle".
func (e *Engine) SpawnTrap() (Trap, bool) {
	if len(e.traps) >= e.cfg.Traps.MaxActive {
		return Trap{}, false
	}
	pos, ok := placeTrap(e.rng, e.snake, e.food, e.traps, e.obstacles, e.cfg.Board.Width, e.cfg.Board.Height)
	if !ok {
		return Trap{}, false
	}
	trap := Trap{ID: e.nextTrapID, Pos: pos, SpawnedAt: e.now()}
	e.nextTrapID++
	e.traps = append(e.traps, trap)
	return trap, true
}

// ExpireTraps removes triggered traps whose warning duration has elapsed.
// Returns the number removed.
func (e *Engine) ExpireTraps() int {
	warning := e.cfg.Traps.Warning()
	now := e.now()

	kept := e.traps[:0]
	removed := 0
	for _, trap := range e.traps {
		if trap.Triggered && now.Sub(trap.TriggeredAt) >= warning {
			removed++
			continue
		}
		kept = append(kept, trap)
	}
	e.traps = kept
	return removed
}

// TickCountdown decrements the reshape countdown by one second. On reaching
// zero the whole obstacle set is regenerated around the current snake, food
// is respawned, and the countdown resets to a fresh random value. Returns
// true when a reshape happened.
func (e *Engine) TickCountdown() bool {
	if e.state != StatePlaying {
		return false
	}
	e.reshapeCountdown--
	if e.reshapeCountdown > 0 {
		return false
	}
	e.reshape()
	return true
}

// reshape replaces the obstacle set wholesale, keeping a safety margin
// around the live snake, and regenerates food since its old cell may now
// sit inside an obstacle.
func (e *Engine) reshape() {
	cfg := e.cfg
	w, h := cfg.Board.Width, cfg.Board.Height
	e.obstacles = placeSafeObstacles(
		e.rng,
		e.randRange(cfg.Obstacles.MinCount, cfg.Obstacles.MaxCount),
		cfg.Obstacles.MinSize, cfg.Obstacles.MaxSize,
		e.snake, cfg.Snake.SafetyMargin,
		w, h,
	)
	e.food = placeFood(e.rng, e.snake, e.traps, e.obstacles, w, h)
	e.reshapeCountdown = e.randRange(cfg.Obstacles.ReshapeMinSec, cfg.Obstacles.ReshapeMaxSec)
}

func (e *Engine) end(reason EndReason) {
	e.state = StateGameOver
	e.endReason = reason
}

func (e *Engine) randRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + e.rng.Intn(max-min+1)
}

// State returns the current state machine state.
func (e *Engine) State() State {
	return e.state
}

// Score returns the current score.
func (e *Engine) Score() int {
	return e.score
}

// EndReason returns the reason the game ended, if it has.
func (e *Engine) EndReason() EndReason {
	return e.endReason
}

// TickInterval returns the current tick cadence.
func (e *Engine) TickInterval() time.Duration {
	return e.tickInterval
}

// SnakeLen returns the current snake length.
func (e *Engine) SnakeLen() int {
	return len(e.snake)
}
