// Package history records button presses in a SQLite database so they can
// be counted across runs.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrClosed is returned by every method after Close.
var ErrClosed = errors.New("history store is closed")

// Entry is one recorded press.
type Entry struct {
	ID      int64
	Button  string
	Gesture string
	// Mouse is the mouse button id, 0 for keyboard and programmatic presses.
	Mouse  int
	Count  int
	Repeat bool
	Time   time.Time
}

// Count summarizes the presses of one button.
type Count struct {
	Button  string
	Presses int
	Repeats int
	Last    time.Time
}

// Store is a press log backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the database at path, creating its directory.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	// One connection keeps writes ordered and makes ":memory:" usable.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to history database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS presses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		button TEXT NOT NULL,
		gesture TEXT NOT NULL,
		mouse INTEGER NOT NULL DEFAULT 0,
		count INTEGER NOT NULL DEFAULT 1,
		repeat INTEGER NOT NULL DEFAULT 0,
		at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_presses_button ON presses(button);
	CREATE INDEX IF NOT EXISTS idx_presses_at ON presses(at DESC);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("initializing history schema: %w", err)
	}
	return nil
}

// Path returns the database path.
func (s *Store) Path() string {
	return s.path
}

// Record appends e. A zero Time is recorded as now.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if s.db == nil {
		return ErrClosed
	}
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO presses (button, gesture, mouse, count, repeat, at) VALUES (?, ?, ?, ?, ?, ?)`,
		e.Button, e.Gesture, e.Mouse, e.Count, e.Repeat, e.Time.UnixNano())
	if err != nil {
		return fmt.Errorf("recording press: %w", err)
	}
	return nil
}

// Counts returns per-button totals ordered by button id.
func (s *Store) Counts(ctx context.Context) ([]Count, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT button, COUNT(*), COALESCE(SUM(repeat), 0), MAX(at)
		FROM presses
		GROUP BY button
		ORDER BY button`)
	if err != nil {
		return nil, fmt.Errorf("counting presses: %w", err)
	}
	defer rows.Close()

	var counts []Count
	for rows.Next() {
		var c Count
		var last int64
		if err := rows.Scan(&c.Button, &c.Presses, &c.Repeats, &last); err != nil {
			return nil, fmt.Errorf("scanning press count: %w", err)
		}
		c.Last = time.Unix(0, last)
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// Recent returns up to limit entries, newest first. A limit of zero or less
// returns every entry.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, button, gesture, mouse, count, repeat, at
		FROM presses
		ORDER BY at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("loading presses: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var at int64
		if err := rows.Scan(&e.ID, &e.Button, &e.Gesture, &e.Mouse, &e.Count, &e.Repeat, &at); err != nil {
			return nil, fmt.Errorf("scanning press: %w", err)
		}
		e.Time = time.Unix(0, at)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear deletes every entry.
func (s *Store) Clear(ctx context.Context) error {
	if s.db == nil {
		return ErrClosed
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM presses`); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}

// Close closes the database. Further calls return ErrClosed.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
