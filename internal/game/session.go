package game

import (
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snakepit/internal/config"
)

// Persistence is the external collaborator the session reads from and
// writes to. All failures are non-fatal to the simulation; the session
// logs them and plays on.
type Persistence interface {
	LoadSavedState() (*SavedState, error)
	SaveState(st SavedState) error
	ClearSavedState() error
	StartSession() (int64, error)
	RecordEvent(sessionID int64, ev Event) error
	EndSession(sessionID int64, score, length int, reason EndReason) error
}

// Session wraps the engine with the spawn schedulers, autosave and the
// session-record lifecycle. Three independent timers plus autosave fire
// concurrently; every callback takes the session lock, computes its full
// next state, and publishes it before unlocking, so each firing is one
// atomic read-modify-write. Pausing or resetting stops every pending
// timer and bumps the timer generation; a callback that was already in
// flight carries the generation it was scheduled under and does nothing
// when it no longer matches, even if play has resumed in between.
type Session struct {
	mu     sync.Mutex
	cfg    config.Config
	engine *Engine
	store  Persistence // may be nil
	logger *log.Logger
	rng    *rand.Rand // scheduler delays only

	sessionID int64
	resumed   bool

	timerGen  uint64
	tickTimer *time.Timer
	trapTimer *time.Timer
	secTimer  *time.Timer
	saveTimer *time.Timer
}

// NewSession creates a session. If the persistence collaborator holds a
// state that was saved mid-play, the board is restored from it and the
// next Start continues that game.
func NewSession(cfg config.Config, seed int64, store Persistence, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Session{
		cfg:    cfg,
		store:  store,
		logger: logger,
		rng:    rand.New(rand.NewSource(seed + 1)),
	}

	if store != nil {
		saved, err := store.LoadSavedState()
		switch {
		case err != nil:
			logger.Warn("could not load saved state", "error", err)
		case saved != nil && saved.Playing:
			s.engine = RestoreEngine(cfg, seed, *saved)
			s.resumed = true
			logger.Info("resuming saved game", "score", saved.Score, "length", len(saved.Snake))
		}
	}
	if s.engine == nil {
		s.engine = NewEngine(cfg, seed)
	}
	return s
}

// Resumed reports whether this session's board was restored from a save.
func (s *Session) Resumed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resumed
}

// Start transitions Idle to Playing: opens a session record and starts the
// tick, trap-spawn, reshape-countdown and autosave timers.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine.State() != StateIdle {
		return
	}
	s.engine.Start()

	if s.store != nil {
		id, err := s.store.StartSession()
		if err != nil {
			s.logger.Warn("could not open session record", "error", err)
		} else {
			s.sessionID = id
		}
	}

	s.startTimers()
}

// TogglePause flips between Playing and Paused. Pausing cancels every
// pending timer; resuming draws a fresh trap-spawn delay but keeps the
// reshape countdown where it stopped.
func (s *Session) TogglePause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.engine.State() {
	case StatePlaying:
		s.engine.Pause()
		s.stopTimers()
	case StatePaused:
		s.engine.Resume()
		s.startTimers()
	}
}

// Reset finalizes any open session record as user-quit, clears the saved
// state, and regenerates a fresh Idle board.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTimers()
	state := s.engine.State()
	if state == StatePlaying || state == StatePaused {
		s.finalize(EndReasonUserQuit)
	}
	if s.store != nil {
		if err := s.store.ClearSavedState(); err != nil {
			s.logger.Warn("could not clear saved state", "error", err)
		}
	}
	s.engine = NewEngine(s.cfg, s.rng.Int63())
	s.resumed = false
}

// Close stops all timers. A game still in progress is saved so the next
// session resumes it; its record stays open.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTimers()
	s.engine.Pause()
	state := s.engine.State()
	if (state == StatePlaying || state == StatePaused) && s.store != nil {
		if err := s.store.SaveState(s.engine.SaveState()); err != nil {
			s.logger.Warn("could not save state on close", "error", err)
		}
	}
}

// SetDirection forwards a direction change from the input collaborator.
// Applied immediately; the exact reverse of the current heading is
// rejected. Returns whether the change was accepted.
func (s *Session) SetDirection(d Direction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.SetDirection(d)
}

// Snapshot returns a copy of the board for rendering. The render
// collaborator may call this at any cadence.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Snapshot()
}

// State returns the current state machine state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.State()
}

// --- timer callbacks ---

// onTick advances the simulation one step and reschedules itself at the
// engine's current interval, which speed-increase may have just lowered.
func (s *Session) onTick(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stale(gen) {
		return
	}

	events := s.engine.Tick()
	s.record(events)

	if s.engine.State() == StateGameOver {
		s.stopTimers()
		s.finalize(s.engine.EndReason())
		return
	}
	s.tickTimer.Reset(s.engine.TickInterval())
}

// onTrapSpawn attempts one trap placement and reschedules after a fresh
// random delay whether or not placement succeeded.
func (s *Session) onTrapSpawn(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stale(gen) {
		return
	}

	if trap, ok := s.engine.SpawnTrap(); ok {
		s.logger.Debug("trap spawned", "id", trap.ID, "x", trap.Pos.X, "y", trap.Pos.Y)
	}
	s.trapTimer.Reset(s.trapDelay())
}

// onSecond drives everything with one-second resolution: triggered-trap
// expiry and the obstacle reshape countdown.
func (s *Session) onSecond(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stale(gen) {
		return
	}

	s.engine.ExpireTraps()
	if s.engine.TickCountdown() {
		s.logger.Debug("obstacle set reshaped", "obstacles", len(s.engine.obstacles))
	}
	s.secTimer.Reset(time.Second)
}

// onAutosave serializes the full session state to the persistence
// collaborator.
func (s *Session) onAutosave(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stale(gen) {
		return
	}

	if s.store != nil {
		if err := s.store.SaveState(s.engine.SaveState()); err != nil {
			s.logger.Warn("autosave failed", "error", err)
		}
	}
	s.saveTimer.Reset(s.cfg.Autosave.Interval())
}

// --- helpers, caller must hold mu ---

// stale reports whether a callback scheduled under gen must not run.
// Stop does not cancel a callback that has already fired and is waiting
// on the lock; the generation check makes the cancellation total even
// when play has resumed and the state reads Playing again.
func (s *Session) stale(gen uint64) bool {
	return gen != s.timerGen || s.engine.State() != StatePlaying
}

func (s *Session) startTimers() {
	s.timerGen++
	gen := s.timerGen
	s.tickTimer = time.AfterFunc(s.engine.TickInterval(), func() { s.onTick(gen) })
	s.trapTimer = time.AfterFunc(s.trapDelay(), func() { s.onTrapSpawn(gen) })
	s.secTimer = time.AfterFunc(time.Second, func() { s.onSecond(gen) })
	s.saveTimer = time.AfterFunc(s.cfg.Autosave.Interval(), func() { s.onAutosave(gen) })
}

func (s *Session) stopTimers() {
	s.timerGen++
	for _, t := range []*time.Timer{s.tickTimer, s.trapTimer, s.secTimer, s.saveTimer} {
		if t != nil {
			t.Stop()
		}
	}
}

// trapDelay draws a uniform random delay from the configured spawn range.
func (s *Session) trapDelay() time.Duration {
	min := s.cfg.Traps.SpawnMin()
	max := s.cfg.Traps.SpawnMax()
	if max <= min {
		return min
	}
	return min + time.Duration(s.rng.Int63n(int64(max-min)))
}

// finalize closes the open session record with the given reason and
// discards the saved state: a finished game must not be resumed.
func (s *Session) finalize(reason EndReason) {
	if s.store == nil {
		return
	}
	if s.sessionID != 0 {
		if err := s.store.EndSession(s.sessionID, s.engine.Score(), s.engine.SnakeLen(), reason); err != nil {
			s.logger.Warn("could not finalize session record", "error", err)
		}
		s.sessionID = 0
	}
	if err := s.store.ClearSavedState(); err != nil {
		s.logger.Warn("could not clear saved state", "error", err)
	}
}

// record appends domain events to the session record.
func (s *Session) record(events []Event) {
	if s.store == nil || s.sessionID == 0 {
		return
	}
	for _, ev := range events {
		if err := s.store.RecordEvent(s.sessionID, ev); err != nil {
			s.logger.Warn("could not record event", "kind", ev.Kind, "error", err)
		}
	}
}
