// Package ledger records write provenance in SQLite. It complements the
// plain-text audit log with a queryable store of what was written, when and
// with which content hash.
package ledger

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Entry is one recorded write
type Entry struct {
	ID        int64
	Timestamp time.Time
	Path      string
	Hash      string
	Bytes     int64
	Action    string
}

// Ledger is a SQLite-backed provenance store
type Ledger struct {
	db *sql.DB
}

// Open opens (creating if needed) the ledger database at dbPath
func Open(dbPath string) (*Ledger, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger database: %w", err)
	}

	l := &Ledger{db: db}
	if err := l.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	return l, nil
}

func (l *Ledger) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS writes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		path TEXT NOT NULL,
		hash TEXT NOT NULL,
		bytes INTEGER NOT NULL,
		action TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_writes_path ON writes(path);
	CREATE INDEX IF NOT EXISTS idx_writes_timestamp ON writes(timestamp);
	`

	if _, err := l.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize ledger schema: %w", err)
	}
	return nil
}

// Record appends one write entry
func (l *Ledger) Record(path, hash string, bytes int64, action string) error {
	_, err := l.db.Exec(
		"INSERT INTO writes (timestamp, path, hash, bytes, action) VALUES (?, ?, ?, ?, ?)",
		time.Now(), path, hash, bytes, action,
	)
	if err != nil {
		return fmt.Errorf("failed to record write: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first
func (l *Ledger) Recent(limit int) ([]Entry, error) {
	rows, err := l.db.Query(
		"SELECT id, timestamp, path, hash, bytes, action FROM writes ORDER BY timestamp DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Path, &e.Hash, &e.Bytes, &e.Action); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// History returns all entries for one path, newest first
func (l *Ledger) History(path string, limit int) ([]Entry, error) {
	rows, err := l.db.Query(
		"SELECT id, timestamp, path, hash, bytes, action FROM writes WHERE path = ? ORDER BY timestamp DESC, id DESC LIMIT ?",
		path, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Path, &e.Hash, &e.Bytes, &e.Action); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Close closes the database
func (l *Ledger) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}
