// Package storage owns the SQLite ledger: the expenses and budgets
// tables, their schema migrations, and every query that touches them.
// All consumers go through the Store; nothing else writes the tables.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a referenced expense or budget does not
// exist. Callers treat it as a normal outcome, not a failure.
var ErrNotFound = errors.New("not found")

// Store is the handle to the ledger database. Open once at startup,
// Close at shutdown.
type Store struct {
	db *sql.DB
}

// Open creates the data directory if needed, opens the SQLite file and
// applies pending migrations. Safe to call on an already-initialized
// database.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
