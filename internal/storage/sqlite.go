// Package storage provides SQLite-based persistence for the game: the
// resumable saved state, finished session records, and their event logs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/snakepit/internal/game"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Store satisfies the game's persistence collaborator contract.
var _ game.Persistence = (*Store)(nil)

// SessionEntry is one row of the session history.
type SessionEntry struct {
	ID        int64
	StartedAt time.Time
	EndedAt   time.Time // zero if the session is still open
	Score     int
	SnakeLen  int
	EndReason game.EndReason
}

// Finished reports whether this session has been finalized.
func (e SessionEntry) Finished() bool {
	return !e.EndedAt.IsZero()
}

// Stats aggregates the whole session history.
type Stats struct {
	TotalSessions    int
	FinishedSessions int
	HighScore        int
	TotalFoodEaten   int
	TotalTrapHits    int
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS saved_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			payload TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			ended_at DATETIME,
			score INTEGER NOT NULL DEFAULT 0,
			snake_len INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_score ON sessions(score DESC);
		CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at DESC);

		CREATE TABLE IF NOT EXISTS session_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id INTEGER NOT NULL,
			kind TEXT NOT NULL,
			tick INTEGER NOT NULL,
			detail TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_session_events_session ON session_events(session_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveState serializes the session state into the singleton saved_state
// row, replacing any previous save.
func (s *Store) SaveState(st game.SavedState) error {
	payload, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("storage: cannot encode saved state: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO saved_state (id, payload, updated_at)
		 VALUES (1, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(id) DO UPDATE SET
		   payload = excluded.payload,
		   updated_at = CURRENT_TIMESTAMP`,
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save state: %w", err)
	}
	return nil
}

// LoadSavedState returns the saved session state, or nil when none exists.
func (s *Store) LoadSavedState() (*game.SavedState, error) {
	var payload string
	err := s.db.QueryRow("SELECT payload FROM saved_state WHERE id = 1").Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load saved state: %w", err)
	}

	var st game.SavedState
	if err := json.Unmarshal([]byte(payload), &st); err != nil {
		return nil, fmt.Errorf("storage: cannot decode saved state: %w", err)
	}
	return &st, nil
}

// ClearSavedState deletes the saved session state, if any.
func (s *Store) ClearSavedState() error {
	if _, err := s.db.Exec("DELETE FROM saved_state WHERE id = 1"); err != nil {
		return fmt.Errorf("storage: cannot clear saved state: %w", err)
	}
	return nil
}

// StartSession opens a new session record and returns its ID.
func (s *Store) StartSession() (int64, error) {
	result, err := s.db.Exec("INSERT INTO sessions DEFAULT VALUES")
	if err != nil {
		return 0, fmt.Errorf("storage: cannot open session record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecordEvent appends one domain event to a session's log.
func (s *Store) RecordEvent(sessionID int64, ev game.Event) error {
	_, err := s.db.Exec(
		"INSERT INTO session_events (session_id, kind, tick, detail) VALUES (?, ?, ?, ?)",
		sessionID, string(ev.Kind), int64(ev.Tick), ev.Detail,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record event: %w", err)
	}
	return nil
}

// EndSession finalizes a session record with its outcome.
func (s *Store) EndSession(sessionID int64, score, length int, reason game.EndReason) error {
	_, err := s.db.Exec(
		`UPDATE sessions
		 SET ended_at = CURRENT_TIMESTAMP, score = ?, snake_len = ?, end_reason = ?
		 WHERE id = ?`,
		score, length, string(reason), sessionID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot finalize session record: %w", err)
	}
	return nil
}

// TopSessions retrieves the N best finished sessions, ordered by score
// descending.
func (s *Store) TopSessions(limit int) ([]SessionEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, started_at, ended_at, score, snake_len, end_reason
		 FROM sessions
		 WHERE ended_at IS NOT NULL
		 ORDER BY score DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

// RecentSessions retrieves the N most recently started sessions, open ones
// included.
func (s *Store) RecentSessions(limit int) ([]SessionEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, started_at, ended_at, score, snake_len, end_reason
		 FROM sessions
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

// SessionEvents retrieves the event log of one session in tick order.
func (s *Store) SessionEvents(sessionID int64) ([]game.Event, error) {
	rows, err := s.db.Query(
		"SELECT kind, tick, detail FROM session_events WHERE session_id = ? ORDER BY id",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query events: %w", err)
	}
	defer rows.Close()

	var events []game.Event
	for rows.Next() {
		var kind string
		var tick int64
		var detail sql.NullString
		if err := rows.Scan(&kind, &tick, &detail); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		events = append(events, game.Event{Kind: game.EventKind(kind), Tick: uint64(tick), Detail: detail.String})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return events, nil
}

// Stats aggregates the session history.
func (s *Store) Stats() (Stats, error) {
	var st Stats
	var high sql.NullInt64

	err := s.db.QueryRow(
		"SELECT COUNT(*), COUNT(ended_at), MAX(score) FROM sessions",
	).Scan(&st.TotalSessions, &st.FinishedSessions, &high)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot query session stats: %w", err)
	}
	if high.Valid {
		st.HighScore = int(high.Int64)
	}

	err = s.db.QueryRow(
		`SELECT
		   COUNT(CASE WHEN kind = ? THEN 1 END),
		   COUNT(CASE WHEN kind = ? THEN 1 END)
		 FROM session_events`,
		string(game.EventFoodEaten), string(game.EventTrapHit),
	).Scan(&st.TotalFoodEaten, &st.TotalTrapHits)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot query event stats: %w", err)
	}

	return st, nil
}

// ClearSessions deletes the whole session history and its event logs.
func (s *Store) ClearSessions() error {
	if _, err := s.db.Exec("DELETE FROM session_events"); err != nil {
		return fmt.Errorf("storage: cannot clear events: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM sessions"); err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

func scanSessions(rows *sql.Rows) ([]SessionEntry, error) {
	var entries []SessionEntry
	for rows.Next() {
		var e SessionEntry
		var startedAt, endedAt any
		var reason sql.NullString
		if err := rows.Scan(&e.ID, &startedAt, &endedAt, &e.Score, &e.SnakeLen, &reason); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.StartedAt = parseTimestamp(startedAt)
		e.EndedAt = parseTimestamp(endedAt)
		e.EndReason = game.EndReason(reason.String)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// parseTimestamp handles the driver returning either time.Time or the
// SQLite textual datetime form. Anything else yields the zero time.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
