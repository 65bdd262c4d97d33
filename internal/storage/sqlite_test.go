package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/snakepit/internal/core"
	"github.com/vovakirdan/snakepit/internal/game"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "snakepit.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpenCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "snakepit.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("database file missing: %v", err)
	}
}

func TestSavedStateRoundTrip(t *testing.T) {
	store := openTestStore(t)

	loaded, err := store.LoadSavedState()
	if err != nil {
		t.Fatalf("LoadSavedState on empty db: %v", err)
	}
	if loaded != nil {
		t.Fatal("empty database returned a saved state")
	}

	st := game.SavedState{
		Snake:            []core.Point{{X: 4, Y: 4}, {X: 3, Y: 4}},
		Dir:              game.DirDown,
		Food:             core.Point{X: 9, Y: 2},
		Traps:            []game.Trap{{ID: 2, Pos: core.Point{X: 1, Y: 1}}},
		Obstacles:        []game.Obstacle{{ID: 1, Rect: core.NewRect(6, 6, 2, 3)}},
		Score:            21,
		ReshapeCountdown: 14,
		TickIntervalMs:   90,
		Playing:          true,
		SavedAt:          time.Now().UTC(),
	}
	if err := store.SaveState(st); err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	loaded, err = store.LoadSavedState()
	if err != nil {
		t.Fatalf("LoadSavedState: %v", err)
	}
	if loaded == nil {
		t.Fatal("saved state not found after save")
	}
	if loaded.Score != 21 || !loaded.Playing || loaded.Dir != game.DirDown {
		t.Errorf("loaded = %+v, want the saved values back", loaded)
	}
	if len(loaded.Snake) != 2 || loaded.Snake[0] != (core.Point{X: 4, Y: 4}) {
		t.Errorf("loaded snake = %v", loaded.Snake)
	}
	if len(loaded.Obstacles) != 1 || loaded.Obstacles[0].Rect != core.NewRect(6, 6, 2, 3) {
		t.Errorf("loaded obstacles = %v", loaded.Obstacles)
	}
}

func TestSaveStateReplacesPrevious(t *testing.T) {
	store := openTestStore(t)

	first := game.SavedState{Snake: []core.Point{{X: 1, Y: 1}}, Score: 5, Playing: true}
	second := game.SavedState{Snake: []core.Point{{X: 2, Y: 2}}, Score: 8, Playing: true}

	if err := store.SaveState(first); err != nil {
		t.Fatalf("SaveState: %v", err)
	}
	if err := store.SaveState(second); err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	loaded, err := store.LoadSavedState()
	if err != nil {
		t.Fatalf("LoadSavedState: %v", err)
	}
	if loaded.Score != 8 {
		t.Fatalf("loaded score = %d, want the newer save", loaded.Score)
	}
}

func TestClearSavedState(t *testing.T) {
	store := openTestStore(t)

	if err := store.ClearSavedState(); err != nil {
		t.Fatalf("ClearSavedState on empty db: %v", err)
	}

	st := game.SavedState{Snake: []core.Point{{X: 1, Y: 1}}, Playing: true}
	if err := store.SaveState(st); err != nil {
		t.Fatalf("SaveState: %v", err)
	}
	if err := store.ClearSavedState(); err != nil {
		t.Fatalf("ClearSavedState: %v", err)
	}

	loaded, err := store.LoadSavedState()
	if err != nil {
		t.Fatalf("LoadSavedState: %v", err)
	}
	if loaded != nil {
		t.Fatal("saved state survived a clear")
	}
}

func TestSessionLifecycle(t *testing.T) {
	store := openTestStore(t)

	id, err := store.StartSession()
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if id == 0 {
		t.Fatal("StartSession returned id 0")
	}

	if err := store.EndSession(id, 42, 7, game.EndReasonSelfCollision); err != nil {
		t.Fatalf("EndSession: %v", err)
	}

	entries, err := store.RecentSessions(10)
	if err != nil {
		t.Fatalf("RecentSessions: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.ID != id || e.Score != 42 || e.SnakeLen != 7 {
		t.Errorf("entry = %+v", e)
	}
	if e.EndReason != game.EndReasonSelfCollision {
		t.Errorf("end reason = %q, want %q", e.EndReason, game.EndReasonSelfCollision)
	}
	if !e.Finished() {
		t.Error("finalized session not marked finished")
	}
	if e.StartedAt.IsZero() {
		t.Error("started_at not recorded")
	}
}

func TestTopSessionsExcludesOpenAndOrders(t *testing.T) {
	store := openTestStore(t)

	scores := []int{10, 50, 30}
	for _, score := range scores {
		id, err := store.StartSession()
		if err != nil {
			t.Fatalf("StartSession: %v", err)
		}
		if err := store.EndSession(id, score, 3, game.EndReasonUserQuit); err != nil {
			t.Fatalf("EndSession: %v", err)
		}
	}
	if _, err := store.StartSession(); err != nil { // left open
		t.Fatalf("StartSession: %v", err)
	}

	top, err := store.TopSessions(2)
	if err != nil {
		t.Fatalf("TopSessions: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("top = %d entries, want 2", len(top))
	}
	if top[0].Score != 50 || top[1].Score != 30 {
		t.Errorf("top scores = %d, %d, want 50, 30", top[0].Score, top[1].Score)
	}

	recent, err := store.RecentSessions(10)
	if err != nil {
		t.Fatalf("RecentSessions: %v", err)
	}
	if len(recent) != 4 {
		t.Fatalf("recent = %d entries, want 4 with the open one", len(recent))
	}
	if recent[0].Finished() {
		t.Error("newest entry should be the open session")
	}
}

func TestEventsAndStats(t *testing.T) {
	store := openTestStore(t)

	id, err := store.StartSession()
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	events := []game.Event{
		{Kind: game.EventFoodEaten, Tick: 3, Detail: "score 1"},
		{Kind: game.EventFoodEaten, Tick: 9, Detail: "score 2"},
		{Kind: game.EventTrapHit, Tick: 12, Detail: "length 6 -> 3"},
		{Kind: game.EventWallPassthrough, Tick: 15},
	}
	for _, ev := range events {
		if err := store.RecordEvent(id, ev); err != nil {
			t.Fatalf("RecordEvent: %v", err)
		}
	}
	if err := store.EndSession(id, 2, 3, game.EndReasonObstacleCollision); err != nil {
		t.Fatalf("EndSession: %v", err)
	}

	log, err := store.SessionEvents(id)
	if err != nil {
		t.Fatalf("SessionEvents: %v", err)
	}
	if len(log) != 4 {
		t.Fatalf("event log = %d entries, want 4", len(log))
	}
	if log[0].Kind != game.EventFoodEaten || log[0].Tick != 3 || log[0].Detail != "score 1" {
		t.Errorf("log[0] = %+v", log[0])
	}
	if log[2].Kind != game.EventTrapHit {
		t.Errorf("log[2] = %+v, want the trap hit", log[2])
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalSessions != 1 || stats.FinishedSessions != 1 {
		t.Errorf("stats sessions = %d/%d, want 1/1", stats.FinishedSessions, stats.TotalSessions)
	}
	if stats.HighScore != 2 {
		t.Errorf("high score = %d, want 2", stats.HighScore)
	}
	if stats.TotalFoodEaten != 2 || stats.TotalTrapHits != 1 {
		t.Errorf("stats events = %d food, %d traps, want 2 and 1", stats.TotalFoodEaten, stats.TotalTrapHits)
	}
}

func TestStatsOnEmptyDatabase(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats != (Stats{}) {
		t.Errorf("stats = %+v, want zeroes", stats)
	}
}

func TestClearSessions(t *testing.T) {
	store := openTestStore(t)

	id, err := store.StartSession()
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if err := store.RecordEvent(id, game.Event{Kind: game.EventFoodEaten, Tick: 1}); err != nil {
		t.Fatalf("RecordEvent: %v", err)
	}

	if err := store.ClearSessions(); err != nil {
		t.Fatalf("ClearSessions: %v", err)
	}

	entries, err := store.RecentSessions(10)
	if err != nil {
		t.Fatalf("RecentSessions: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("entries = %d after clear, want 0", len(entries))
	}
	events, err := store.SessionEvents(id)
	if err != nil {
		t.Fatalf("SessionEvents: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("events = %d after clear, want 0", len(events))
	}
}
