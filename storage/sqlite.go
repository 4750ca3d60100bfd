package storage

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/awantoch/foundryflow/utils"
)

// SqliteStorage implements Storage using SQLite as the backend.
type SqliteStorage struct {
	*sqlStorage
}

var _ Storage = (*SqliteStorage)(nil)

func NewSqliteStorage(dsn string) (*SqliteStorage, error) {
	// Only create parent directories if not using in-memory SQLite (":memory:").
	if dsn != ":memory:" && dsn != "" {
		dir := filepath.Dir(dsn)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, utils.Errorf("failed to create db directory %q: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" databases alive across queries.
	db.SetMaxOpenConns(1)
	s, err := newSQLStorage(db, nil)
	if err != nil {
		return nil, err
	}
	return &SqliteStorage{s}, nil
}
