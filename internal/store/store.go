package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite database holding module state, snapshots and the
// event log.
type Store struct {
	db  *sql.DB
	seq *sequenceCounter
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates the schema idempotently.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	seq, err := newSequenceCounter(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, seq: seq}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Modules returns a ModuleRepo backed by this store.
func (s *Store) Modules() ModuleRepo {
	return &moduleRepo{db: s.db, seq: s.seq}
}

// Events returns an EventRepo backed by this store.
func (s *Store) Events() EventRepo {
	return &eventRepo{db: s.db, seq: s.seq}
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS modules (
		name        TEXT PRIMARY KEY,
		imported_at TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		data        TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS module_snapshots (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		module_name TEXT NOT NULL,
		sequence    INTEGER NOT NULL,
		timestamp   TEXT NOT NULL,
		data        TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_module_snapshots_name_seq
		ON module_snapshots (module_name, sequence)`,
	`CREATE TABLE IF NOT EXISTS answer_events (
		sequence           INTEGER PRIMARY KEY,
		timestamp          TEXT NOT NULL,
		session_id         TEXT NOT NULL,
		module_name        TEXT NOT NULL,
		question_id        TEXT NOT NULL,
		selected_option_id TEXT NOT NULL,
		correct            INTEGER NOT NULL,
		level_before       INTEGER NOT NULL,
		level_after        INTEGER NOT NULL,
		status_after       TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_answer_events_module_question
		ON answer_events (module_name, question_id)`,
	`CREATE TABLE IF NOT EXISTS session_events (
		sequence         INTEGER PRIMARY KEY,
		timestamp        TEXT NOT NULL,
		session_id       TEXT NOT NULL,
		action           TEXT NOT NULL,
		questions_served INTEGER NOT NULL,
		correct_answers  INTEGER NOT NULL
	)`,
}

// migrate creates the schema. Every statement is idempotent, so opening an
// existing database is a no-op.
func migrate(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. QUIZMD_DB environment variable
// 2. $XDG_DATA_HOME/quizmd/quizmd.db
// 3. ~/.local/share/quizmd/quizmd.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("QUIZMD_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "quizmd", "quizmd.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

// Timestamps are stored as RFC 3339 text so rows stay readable in the
// sqlite shell.
func formatStoredTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseStoredTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
