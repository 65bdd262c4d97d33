package game

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/snakepit/internal/config"
	"github.com/vovakirdan/snakepit/internal/core"
)

// Snapshot is a read-only copy of the board for rendering and tests.
type Snapshot struct {
	Tick             uint64
	State            State
	EndReason        EndReason
	Score            int
	Snake            []core.Point // head first
	Dir              Direction
	Food             core.Point
	Traps            []Trap
	Obstacles        []Obstacle
	TickInterval     time.Duration
	ReshapeCountdown int
	BoardW           int
	BoardH           int
}

// Snapshot returns a copy of the current board state.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:             e.tick,
		State:            e.state,
		EndReason:        e.endReason,
		Score:            e.score,
		Snake:            make([]core.Point, len(e.snake)),
		Dir:              e.dir,
		Food:             e.food,
		Traps:            make([]Trap, len(e.traps)),
		Obstacles:        make([]Obstacle, len(e.obstacles)),
		TickInterval:     e.tickInterval,
		ReshapeCountdown: e.reshapeCountdown,
		BoardW:           e.cfg.Board.Width,
		BoardH:           e.cfg.Board.Height,
	}
	copy(snap.Snake, e.snake)
	copy(snap.Traps, e.traps)
	copy(snap.Obstacles, e.obstacles)
	return snap
}

// SavedState is the serialized session state written to the persistence
// collaborator by autosave and read back on resume.
type SavedState struct {
	Snake            []core.Point `json:"snake"`
	Dir              Direction    `json:"dir"`
	Food             core.Point   `json:"food"`
	Traps            []Trap       `json:"traps"`
	Obstacles        []Obstacle   `json:"obstacles"`
	Score            int          `json:"score"`
	ReshapeCountdown int          `json:"reshape_countdown"`
	TickIntervalMs   int64        `json:"tick_interval_ms"`
	Playing          bool         `json:"playing"`
	SavedAt          time.Time    `json:"saved_at"`
}

// SaveState captures the state needed to resume this board later.
func (e *Engine) SaveState() SavedState {
	st := SavedState{
		Snake:            make([]core.Point, len(e.snake)),
		Dir:              e.dir,
		Food:             e.food,
		Traps:            make([]Trap, len(e.traps)),
		Obstacles:        make([]Obstacle, len(e.obstacles)),
		Score:            e.score,
		ReshapeCountdown: e.reshapeCountdown,
		TickIntervalMs:   e.tickInterval.Milliseconds(),
		Playing:          e.state == StatePlaying || e.state == StatePaused,
		SavedAt:          e.now(),
	}
	copy(st.Snake, e.snake)
	copy(st.Traps, e.traps)
	copy(st.Obstacles, e.obstacles)
	return st
}

// RestoreEngine rebuilds an engine from a saved state. The engine starts
// in Idle; the caller decides when to resume play.
func RestoreEngine(cfg config.Config, seed int64, st SavedState) *Engine {
	e := &Engine{
		cfg:              cfg,
		rng:              rand.New(rand.NewSource(seed)),
		now:              time.Now,
		snake:            append([]core.Point(nil), st.Snake...),
		dir:              st.Dir,
		pendingDir:       st.Dir,
		food:             st.Food,
		traps:            append([]Trap(nil), st.Traps...),
		obstacles:        append([]Obstacle(nil), st.Obstacles...),
		score:            st.Score,
		reshapeCountdown: st.ReshapeCountdown,
		tickInterval:     time.Duration(st.TickIntervalMs) * time.Millisecond,
		state:            StateIdle,
	}

	if len(e.snake) == 0 {
		// Corrupt save; fall back to a fresh board.
		return NewEngine(cfg, seed)
	}
	if e.tickInterval < cfg.Speed.Floor() {
		e.tickInterval = cfg.Speed.InitialInterval()
	}
	if e.reshapeCountdown < 1 {
		e.reshapeCountdown = cfg.Obstacles.ReshapeMinSec
	}
	for _, trap := range e.traps {
		if trap.ID >= e.nextTrapID {
			e.nextTrapID = trap.ID + 1
		}
	}
	if e.nextTrapID == 0 {
		e.nextTrapID = 1
	}
	return e
}
