// Package storage provides the SQLite run journal. A run is the seed,
// the playfield and every swipe of one game, which is enough to replay it.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// ErrRunNotFound is returned for run IDs the journal does not know.
var ErrRunNotFound = errors.New("run not found")

// Store manages the SQLite database connection for the run journal.
type Store struct {
	db *sql.DB
}

// Run is one journaled game.
type Run struct {
	ID        string
	Seed      int64
	Bounds    snake.Bounds
	StartedAt time.Time
	EndedAt   time.Time // Zero while the run is open
	Ticks     uint64
	Events    int
}

// Finished reports whether the run was closed.
func (r Run) Finished() bool {
	return !r.EndedAt.IsZero()
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

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// One writer at a time; sessions share the store
	db.SetMaxOpenConns(1)

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
// Timestamps are unix milliseconds.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			cell_size INTEGER NOT NULL,
			min_x INTEGER NOT NULL,
			max_x INTEGER NOT NULL,
			min_y INTEGER NOT NULL,
			max_y INTEGER NOT NULL,
			started_at INTEGER NOT NULL,
			ended_at INTEGER,
			ticks INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at DESC);

		CREATE TABLE IF NOT EXISTS run_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			tick INTEGER NOT NULL,
			start_x REAL NOT NULL,
			start_y REAL NOT NULL,
			end_x REAL NOT NULL,
			end_y REAL NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_run_events_run ON run_events(run_id, tick);
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

// BeginRun opens a new run and returns its ID.
func (s *Store) BeginRun(seed int64, b snake.Bounds) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO runs (id, seed, cell_size, min_x, max_x, min_y, max_y, started_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, seed, b.CellSize, b.MinX, b.MaxX, b.MinY, b.MaxY, time.Now().UnixMilli(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin run: %w", err)
	}
	return id, nil
}

// AppendGesture records a swipe applied after tick steps.
func (s *Store) AppendGesture(runID string, tick uint64, g core.Gesture) error {
	_, err := s.db.Exec(
		`INSERT INTO run_events (run_id, tick, start_x, start_y, end_x, end_y)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		runID, int64(tick), g.Start.X, g.Start.Y, g.End.X, g.End.Y,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot append gesture: %w", err)
	}
	return nil
}

// FinishRun closes a run after ticks steps.
func (s *Store) FinishRun(runID string, ticks uint64) error {
	res, err := s.db.Exec(
		"UPDATE runs SET ended_at = ?, ticks = ? WHERE id = ?",
		time.Now().UnixMilli(), int64(ticks), runID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot finish run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot finish run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("storage: finish %s: %w", runID, ErrRunNotFound)
	}
	return nil
}

const runColumns = `
	r.id, r.seed, r.cell_size, r.min_x, r.max_x, r.min_y, r.max_y,
	r.started_at, r.ended_at, r.ticks,
	(SELECT COUNT(*) FROM run_events e WHERE e.run_id = r.id)`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		r       Run
		started int64
		ended   sql.NullInt64
		ticks   int64
	)
	err := row.Scan(
		&r.ID, &r.Seed,
		&r.Bounds.CellSize, &r.Bounds.MinX, &r.Bounds.MaxX, &r.Bounds.MinY, &r.Bounds.MaxY,
		&started, &ended, &ticks, &r.Events,
	)
	if err != nil {
		return r, err
	}
	r.StartedAt = time.UnixMilli(started)
	if ended.Valid {
		r.EndedAt = time.UnixMilli(ended.Int64)
	}
	r.Ticks = uint64(ticks)
	return r, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs r
		 ORDER BY r.started_at DESC, r.rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// LoadRun returns a run and its swipes in the order they were recorded.
func (s *Store) LoadRun(id string) (Run, []snake.Event, error) {
	r, err := scanRun(s.db.QueryRow(`SELECT `+runColumns+` FROM runs r WHERE r.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, nil, fmt.Errorf("storage: load %s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, nil, fmt.Errorf("storage: cannot query run: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT tick, start_x, start_y, end_x, end_y
		 FROM run_events
		 WHERE run_id = ?
		 ORDER BY id`,
		id,
	)
	if err != nil {
		return Run{}, nil, fmt.Errorf("storage: cannot query events: %w", err)
	}
	defer rows.Close()

	var events []snake.Event
	for rows.Next() {
		var (
			tick int64
			g    core.Gesture
		)
		if err := rows.Scan(&tick, &g.Start.X, &g.Start.Y, &g.End.X, &g.End.Y); err != nil {
			return Run{}, nil, fmt.Errorf("storage: cannot scan event: %w", err)
		}
		events = append(events, snake.Event{Tick: uint64(tick), Gesture: g})
	}

	if err := rows.Err(); err != nil {
		return Run{}, nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return r, events, nil
}

// DeleteRun removes a run and its events.
func (s *Store) DeleteRun(id string) error {
	if _, err := s.db.Exec("DELETE FROM run_events WHERE run_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete events: %w", err)
	}
	res, err := s.db.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("storage: delete %s: %w", id, ErrRunNotFound)
	}
	return nil
}
