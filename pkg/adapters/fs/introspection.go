package fs

import (
	"github.com/aretw0/introspection"

	"github.com/aretw0/quicknotes/pkg/core"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Path          string `json:"path"`
	Notes         int    `json:"notes"`
	Categories    int    `json:"categories"`
	CachedNotes   int    `json:"cached_notes"`
	CachedCats    int    `json:"cached_categories"`
	WatcherActive bool   `json:"watcher_active"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	notes, _ := s.notes.ids()
	cats, _ := s.categories.ids()

	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	return StoreState{
		Path:          s.Path,
		Notes:         len(notes),
		Categories:    len(cats),
		CachedNotes:   s.notes.cache.Len(),
		CachedCats:    s.categories.cache.Len(),
		WatcherActive: s.watcherActive,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "file_store"
}

func (s *Store) setWatcherActive(active bool) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.watcherActive = active
}

// State implements introspection.Introspectable.
func (r *NoteRepository) State() any {
	ids, _ := r.store.notes.ids()
	return core.RepositoryState{Backend: "fs", Path: r.store.Path, Records: len(ids)}
}

// ComponentType implements introspection.Component.
func (r *NoteRepository) ComponentType() string {
	return "note_repository"
}

// State implements introspection.Introspectable.
func (r *CategoryRepository) State() any {
	ids, _ := r.store.categories.ids()
	return core.RepositoryState{Backend: "fs", Path: r.store.Path, Records: len(ids)}
}

// ComponentType implements introspection.Component.
func (r *CategoryRepository) ComponentType() string {
	return "category_repository"
}

var (
	_ introspection.Introspectable = (*Store)(nil)
	_ introspection.Component      = (*Store)(nil)
	_ introspection.Introspectable = (*NoteRepository)(nil)
	_ introspection.Introspectable = (*CategoryRepository)(nil)
)
