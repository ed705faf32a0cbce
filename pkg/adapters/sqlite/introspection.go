package sqlite

import (
	"context"

	"github.com/aretw0/introspection"

	"github.com/aretw0/quicknotes/pkg/core"
)

// DBState exposes internal state for observability.
type DBState struct {
	Path          string `json:"path"`
	OpenConns     int    `json:"open_connections"`
	InUse         int    `json:"in_use"`
	WatcherActive bool   `json:"watcher_active"`
}

// State implements introspection.Introspectable.
func (d *DB) State() any {
	stats := d.db.Stats()
	return DBState{
		Path:          d.Path,
		OpenConns:     stats.OpenConnections,
		InUse:         stats.InUse,
		WatcherActive: d.watcherActive.Load(),
	}
}

// ComponentType implements introspection.Component.
func (d *DB) ComponentType() string {
	return "sqlite_store"
}

func (d *DB) count(table string) int {
	var n int
	// table is one of two constants.
	_ = d.db.GetContext(context.Background(), &n, `SELECT COUNT(*) FROM `+table)
	return n
}

// State implements introspection.Introspectable.
func (r *NoteRepository) State() any {
	return core.RepositoryState{Backend: "sqlite", Path: r.db.Path, Records: r.db.count("notes")}
}

// ComponentType implements introspection.Component.
func (r *NoteRepository) ComponentType() string {
	return "note_repository"
}

// State implements introspection.Introspectable.
func (r *CategoryRepository) State() any {
	return core.RepositoryState{Backend: "sqlite", Path: r.db.Path, Records: r.db.count("categories")}
}

// ComponentType implements introspection.Component.
func (r *CategoryRepository) ComponentType() string {
	return "category_repository"
}

var (
	_ introspection.Introspectable = (*DB)(nil)
	_ introspection.Component      = (*DB)(nil)
	_ introspection.Introspectable = (*NoteRepository)(nil)
	_ introspection.Introspectable = (*CategoryRepository)(nil)
)
