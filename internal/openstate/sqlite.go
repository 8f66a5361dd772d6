package openstate

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pstuifzand/placestree/internal/debug"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS open_containers (
    uri TEXT PRIMARY KEY,
    opened_at TIMESTAMP NOT NULL
);`

// SQLiteStore keeps the open containers in a SQLite table
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path. ":memory:" gives a
// private in-memory database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite open state: no path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one connection, so ":memory:" is the same database for every query
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) IsOpen(uri string) bool {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM open_containers WHERE uri = ?`, uri).Scan(&n)
	if err != nil {
		debug.Log("open state lookup %s: %v", uri, err)
		return false
	}
	return n > 0
}

func (s *SQLiteStore) SetOpen(uri string, open bool) error {
	var err error
	if open {
		_, err = s.db.Exec(`INSERT INTO open_containers (uri, opened_at) VALUES (?, ?)
			ON CONFLICT(uri) DO UPDATE SET opened_at = excluded.opened_at`, uri, time.Now().UTC())
	} else {
		_, err = s.db.Exec(`DELETE FROM open_containers WHERE uri = ?`, uri)
	}
	if err != nil {
		return fmt.Errorf("failed to store open state: %w", err)
	}
	return nil
}

// OpenURIs lists the remembered containers, most recently opened first
func (s *SQLiteStore) OpenURIs() ([]string, error) {
	rows, err := s.db.Query(`SELECT uri FROM open_containers ORDER BY opened_at DESC, uri`)
	if err != nil {
		return nil, fmt.Errorf("failed to list open state: %w", err)
	}
	defer rows.Close()

	var uris []string
	for rows.Next() {
		var uri string
		if err := rows.Scan(&uri); err != nil {
			return nil, err
		}
		uris = append(uris, uri)
	}
	return uris, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
