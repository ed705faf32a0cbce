// Package sqlite stores notes and categories in a single SQLite database file.
package sqlite

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // registers the "sqlite3" driver

	"github.com/aretw0/quicknotes/internal/watch"
)

// DefaultFileName is used when the configured path is a directory.
const DefaultFileName = "quicknotes.db"

// Notes keep the category id in a plain column without a foreign key:
// a deleted category must leave dangling references readable.
const schema = `
CREATE TABLE IF NOT EXISTS categories (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	icon        TEXT NOT NULL DEFAULT '',
	color       TEXT NOT NULL DEFAULT '',
	created_at  TEXT NOT NULL,
	modified_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS notes (
	id           TEXT PRIMARY KEY,
	title        TEXT NOT NULL,
	content      TEXT NOT NULL DEFAULT '',
	category_id  TEXT,
	is_pinned    INTEGER NOT NULL DEFAULT 0,
	is_archived  INTEGER NOT NULL DEFAULT 0,
	is_completed INTEGER NOT NULL DEFAULT 0,
	created_at   TEXT NOT NULL,
	modified_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notes_modified_at ON notes (modified_at DESC);
`

// Config holds the configuration for the SQLite store.
type Config struct {
	// Path is the database file, or a directory that will hold DefaultFileName.
	Path   string
	Logger *slog.Logger
}

// DB is an open database shared by the note and category repositories.
type DB struct {
	Path string

	db            *sqlx.DB
	logger        *slog.Logger
	watcherActive atomic.Bool
}

// Open connects to the database file, creating it and the schema if needed.
func Open(ctx context.Context, config Config) (*DB, error) {
	path := config.Path
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, DefaultFileName)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	db, err := sqlx.ConnectContext(ctx, "sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	// One writer at a time; SQLite serializes anyway and this avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	logger.Debug("sqlite store ready", "path", path)
	return &DB{Path: path, db: db, logger: logger}, nil
}

// Close releases the connection pool.
func (d *DB) Close() error {
	return d.db.Close()
}

// Notes returns the note repository backed by this database.
func (d *DB) Notes() *NoteRepository {
	return &NoteRepository{db: d}
}

// Categories returns the category repository backed by this database.
func (d *DB) Categories() *CategoryRepository {
	return &CategoryRepository{db: d}
}

// Watch blocks until ctx is done, calling onChange when the database file or
// its journal changes.
func (d *DB) Watch(ctx context.Context, onChange func()) error {
	d.watcherActive.Store(true)
	defer d.watcherActive.Store(false)

	base := filepath.Base(d.Path)
	return watch.Run(ctx, watch.Config{
		Dirs:   []string{filepath.Dir(d.Path)},
		Match:  func(name string) bool { return strings.HasPrefix(filepath.Base(name), base) },
		Logger: d.logger,
	}, onChange)
}

// inTx runs fn in a transaction, committing on success.
func (d *DB) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
