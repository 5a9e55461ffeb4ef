// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package history persists REPL line history to SQLite, outside the
// evaluation core proper: terminal line editing and history persistence are
// external collaborators, exercised only through the Store interface they
// consume.
package history

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// SchemaVersion is the current on-disk schema version.
const SchemaVersion = "1"

// Store is a SQLite-backed line history log, one row per submitted
// top-level form, grouped by REPL session.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Entry is one recorded line.
type Entry struct {
	ID      int64
	Session string
	Line    string
	Ts      time.Time
}

// Open creates or opens the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS metadata (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		db.Close()
		return nil, err
	}

	version, err := s.getMetadataUnlocked("schema_version")
	if err != nil {
		db.Close()
		return nil, err
	}

	if version == "" {
		if err := s.migrateToV1(); err != nil {
			db.Close()
			return nil, err
		}
		version = "1"
	}
	if version != SchemaVersion {
		db.Close()
		return nil, fmt.Errorf("history: unsupported schema version: %s (expected %s)", version, SchemaVersion)
	}
	if err := s.setMetadataUnlocked("schema_version", SchemaVersion); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrateToV1() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS metadata (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS lines (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			session TEXT NOT NULL,
			line    TEXT NOT NULL,
			ts      TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%f', 'now'))
		);
		CREATE INDEX IF NOT EXISTS idx_lines_session ON lines(session);
	`)
	return err
}

// NewSession mints a fresh session identifier (one per REPL invocation).
func NewSession() string {
	return uuid.NewString()
}

// Record appends one submitted line under session.
func (s *Store) Record(session, line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("INSERT INTO lines (session, line) VALUES (?, ?)", session, line)
	return err
}

// Recent returns the most recently recorded lines across all sessions,
// oldest first, capped at limit (limit <= 0 means no cap).
func (s *Store) Recent(limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := "SELECT id, session, line, ts FROM lines ORDER BY id DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var tsRaw string
		if err := rows.Scan(&e.ID, &e.Session, &e.Line, &tsRaw); err != nil {
			return nil, err
		}
		e.Ts, _ = time.Parse("2006-01-02T15:04:05.000", tsRaw)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Reverse to oldest-first for display.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// FormatRelative renders an entry's timestamp as a human-friendly relative
// string (e.g. "3 minutes ago"), for the REPL's :history command.
func FormatRelative(e Entry) string {
	if e.Ts.IsZero() {
		return "unknown time"
	}
	return humanize.Time(e.Ts)
}

func (s *Store) getMetadataUnlocked(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *Store) setMetadataUnlocked(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
