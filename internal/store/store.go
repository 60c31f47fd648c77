// Package store persists session history, flashcards, and the LLM event
// audit trail in a local SQLite database.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the database handle and provides access to repositories.
type Store struct {
	db *sql.DB
}

// Open creates a Store connected to the SQLite database at dsn. It applies
// recommended pragmas and creates missing tables.
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

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// HistoryRepo returns the session history repository.
func (s *Store) HistoryRepo() *HistoryRepo {
	return &HistoryRepo{db: s.db}
}

// LLMEventRepo returns the LLM event repository.
func (s *Store) LLMEventRepo() *LLMEventRepo {
	return &LLMEventRepo{db: s.db}
}

// CardRepo returns the flashcard repository.
func (s *Store) CardRepo() *CardRepo {
	return &CardRepo{db: s.db}
}

// applyPragmas configures SQLite for single-user desktop use.
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

// migrate creates the schema. Statements are idempotent.
func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS history (
			id         TEXT PRIMARY KEY,
			timestamp  TIMESTAMP NOT NULL,
			mode       TEXT NOT NULL,
			score      REAL NOT NULL,
			max_score  REAL NOT NULL,
			questions  TEXT NOT NULL,
			answers    TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS cards (
			id          TEXT PRIMARY KEY,
			question_id TEXT NOT NULL,
			topic_id    TEXT NOT NULL,
			front       TEXT NOT NULL,
			back        TEXT NOT NULL,
			stage       INTEGER NOT NULL DEFAULT 0,
			hits        INTEGER NOT NULL DEFAULT 0,
			graduated   INTEGER NOT NULL DEFAULT 0,
			last_review TIMESTAMP,
			next_review TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS llm_events (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			provider      TEXT NOT NULL,
			model         TEXT NOT NULL,
			purpose       TEXT NOT NULL,
			input_tokens  INTEGER NOT NULL DEFAULT 0,
			output_tokens INTEGER NOT NULL DEFAULT 0,
			latency_ms    INTEGER NOT NULL DEFAULT 0,
			success       INTEGER NOT NULL,
			error_message TEXT NOT NULL DEFAULT '',
			request_body  TEXT NOT NULL DEFAULT '',
			response_body TEXT NOT NULL DEFAULT ''
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// TUTORBOX_DB, $XDG_DATA_HOME/tutorbox/tutorbox.db,
// ~/.local/share/tutorbox/tutorbox.db.
func DefaultDBPath() (string, error) {
	if p := os.Getenv("TUTORBOX_DB"); p != "" {
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

	p := filepath.Join(dataHome, "tutorbox", "tutorbox.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
