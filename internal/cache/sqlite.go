package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	// Import modernc.org/sqlite as a blank import to register the driver
	_ "modernc.org/sqlite"
)

// SQLiteStore persists key-value pairs in a single SQLite table so the
// cached snapshot survives process restarts.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (creating if needed) the store database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to cache database: %w", err)
	}

	s := &SQLiteStore{db: db, path: path}

	if err := s.configure(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to configure cache database: %w", err)
	}

	if err := s.createSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) configure() error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}

	for _, pragma := range pragmas {
		if _, err := s.db.ExecContext(context.Background(), pragma); err != nil {
			return fmt.Errorf("failed to execute %s: %w", pragma, err)
		}
	}

	return nil
}

func (s *SQLiteStore) createSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.ExecContext(context.Background(), query)
	return err
}

// Get returns the value for a key.
func (s *SQLiteStore) Get(key string) ([]byte, bool) {
	var value []byte
	err := s.db.QueryRowContext(context.Background(),
		"SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			// A broken store reads as a miss; the caller refetches.
			return nil, false
		}
		return nil, false
	}
	return value, true
}

// Set stores a value, replacing any prior one.
func (s *SQLiteStore) Set(key string, value []byte) error {
	_, err := s.db.ExecContext(context.Background(), `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return nil
}

// Delete removes a key.
func (s *SQLiteStore) Delete(key string) error {
	_, err := s.db.ExecContext(context.Background(),
		"DELETE FROM kv WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("failed to delete cache key %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
