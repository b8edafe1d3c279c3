// Package sqlite keeps the shared lists in a private in-memory SQLite database
// that disappears with the process.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/vovakirdan/homeboard/internal/store"
)

// memoryDSN keeps the database inside the process. A file path would make the
// lists survive restarts, which they must not.
const memoryDSN = ":memory:"

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	id    INTEGER PRIMARY KEY AUTOINCREMENT,
	list  TEXT NOT NULL,
	value TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_entries_list ON entries(list, id);
`

// SQLiteStore implements store.Store on an in-memory SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

var _ store.Store = (*SQLiteStore)(nil)

// New opens a private in-memory database and applies the schema.
func New() (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", memoryDSN)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// Each connection to :memory: is its own database, so the pool is pinned to one.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection, discarding every list.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Append inserts value at the end of list l.
func (s *SQLiteStore) Append(ctx context.Context, l store.List, value string) error {
	if !l.Valid() {
		return fmt.Errorf("append %q: %w", l, store.ErrUnknownList)
	}

	query := `INSERT INTO entries (list, value) VALUES (?, ?)`
	if _, err := s.db.ExecContext(ctx, query, string(l), value); err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

// List returns every entry of list l in insertion order.
func (s *SQLiteStore) List(ctx context.Context, l store.List) ([]string, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("list %q: %w", l, store.ErrUnknownList)
	}

	query := `SELECT value FROM entries WHERE list = ? ORDER BY id ASC`
	rows, err := s.db.QueryContext(ctx, query, string(l))
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	entries := make([]string, 0)
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

// Snapshot reads all lists in one pass.
func (s *SQLiteStore) Snapshot(ctx context.Context) (store.Snapshot, error) {
	query := `SELECT list, value FROM entries ORDER BY id ASC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("query snapshot: %w", err)
	}
	defer rows.Close()

	byList := make(map[store.List][]string, len(store.Lists))
	for _, l := range store.Lists {
		byList[l] = make([]string, 0)
	}
	for rows.Next() {
		var list, value string
		if err := rows.Scan(&list, &value); err != nil {
			return store.Snapshot{}, fmt.Errorf("scan snapshot: %w", err)
		}
		l := store.List(list)
		byList[l] = append(byList[l], value)
	}
	if err := rows.Err(); err != nil {
		return store.Snapshot{}, fmt.Errorf("iterate snapshot: %w", err)
	}

	var snap store.Snapshot
	for _, l := range store.Lists {
		snap.Set(l, byList[l])
	}
	return snap, nil
}
