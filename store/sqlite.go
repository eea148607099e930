package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

// SQLite is a device-local durable Store backed by a SQLite file. Values
// written here survive process restarts.
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

// NewSQLite opens (creating if needed) the database at path and bootstraps
// the schema. The parent directory is created when missing.
func NewSQLite(path string) (*SQLite, error) {
	if path == "" {
		return nil, errors.New("[NewSQLite] path is required")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "[NewSQLite] MkdirAll")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "[NewSQLite] sql.Open")
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "[NewSQLite] schema bootstrap")
	}

	return &SQLite{db: db}, nil
}

// Get retrieves the value for a key
func (s *SQLite) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", errors.New("key is required")
	}

	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", NotFoundErr
	}
	if err != nil {
		return "", errors.Wrap(err, "[SQLite.Get] QueryRowContext")
	}
	return value, nil
}

// Set creates or replaces the value for a key
func (s *SQLite) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.New("key is required")
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return errors.Wrap(err, "[SQLite.Set] ExecContext")
	}
	return nil
}

// Delete removes a key
func (s *SQLite) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("key is required")
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return errors.Wrap(err, "[SQLite.Delete] ExecContext")
	}
	return nil
}

// Close releases the underlying database handle
func (s *SQLite) Close() error {
	return s.db.Close()
}
