// Package fs stores notes and categories as plain files.
//
// Layout under the store root:
//
//	notes/<id>.md          YAML frontmatter followed by the note content
//	categories/<id>.yaml   one YAML mapping per category
//
// Records reference categories by ID only. Every write goes through a staged
// transaction whose files are replaced atomically.
package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aretw0/quicknotes/internal/watch"
	"github.com/aretw0/quicknotes/pkg/core"
)

const (
	NotesDir      = "notes"
	CategoriesDir = "categories"
)

// Config holds the configuration for the file store.
type Config struct {
	Path      string
	MustExist bool // fail instead of creating Path
	Logger    *slog.Logger
}

// Store owns the directory and the per-collection caches shared by the
// note and category repositories.
type Store struct {
	Path   string
	config Config

	// mu serializes writers; readers share it.
	mu         sync.RWMutex
	notes      *collection[core.Note]
	categories *collection[core.Category]

	stateMu       sync.Mutex
	watcherActive bool
}

// NewStore creates a file store rooted at config.Path. Call Initialize
// before use.
func NewStore(config Config) *Store {
	return &Store{
		Path:       config.Path,
		config:     config,
		notes:      newCollection(config.Path, NotesDir, ".md", codec[core.Note](markdownSerializer{})),
		categories: newCollection(config.Path, CategoriesDir, ".yaml", codec[core.Category](yamlSerializer{})),
	}
}

// Initialize creates the store directories.
func (s *Store) Initialize(ctx context.Context) error {
	if s.config.MustExist {
		info, err := os.Stat(s.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("store path does not exist: %s", s.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("store path is not a directory: %s", s.Path)
		}
	}

	for _, dir := range []string{NotesDir, CategoriesDir} {
		if err := os.MkdirAll(filepath.Join(s.Path, dir), 0o755); err != nil {
			return fmt.Errorf("failed to create %s directory: %w", dir, err)
		}
	}
	s.logger().Debug("file store ready", "path", s.Path)
	return nil
}

// Notes returns the note repository backed by this store.
func (s *Store) Notes() *NoteRepository {
	return &NoteRepository{store: s}
}

// Categories returns the category repository backed by this store.
func (s *Store) Categories() *CategoryRepository {
	return &CategoryRepository{store: s}
}

// Watch blocks until ctx is done, calling onChange after records change on
// disk, whoever changed them.
func (s *Store) Watch(ctx context.Context, onChange func()) error {
	s.setWatcherActive(true)
	defer s.setWatcherActive(false)

	return watch.Run(ctx, watch.Config{
		Dirs: []string{
			filepath.Join(s.Path, NotesDir),
			filepath.Join(s.Path, CategoriesDir),
		},
		Match: func(name string) bool {
			base := filepath.Base(name)
			if strings.HasPrefix(base, tempFilePrefix) {
				return false
			}
			return strings.HasSuffix(base, ".md") || strings.HasSuffix(base, ".yaml")
		},
		Logger: s.logger(),
	}, onChange)
}

func (s *Store) begin() *transaction {
	return newTransaction(s)
}

func (s *Store) invalidate(relPath string) {
	s.notes.cache.Delete(relPath)
	s.categories.cache.Delete(relPath)
}

func (s *Store) logger() *slog.Logger {
	if s.config.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.config.Logger
}

// checkID rejects IDs that cannot be used as a single file name.
func checkID(id string) error {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) || strings.HasPrefix(id, ".") {
		return fmt.Errorf("invalid record id %q", id)
	}
	return nil
}

// commit runs fn against a fresh transaction and commits it, rolling back on
// error. Callers hold s.mu.
func (s *Store) commit(ctx context.Context, fn func(tx *transaction) error) error {
	tx := s.begin()
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit(ctx)
}

// NoteRepository is a core.NoteRepository over a Store.
type NoteRepository struct {
	store *Store
}

// FetchAll returns every note, most recently modified first, with categories resolved.
func (r *NoteRepository) FetchAll(ctx context.Context) ([]core.Note, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories, err := s.categories.list()
	if err != nil {
		return nil, core.NewStorageError("fetch notes", err)
	}
	notes, err := s.notes.list()
	if err != nil {
		return nil, core.NewStorageError("fetch notes", err)
	}

	core.SortNotesByModified(notes)
	return core.ResolveCategories(notes, categories), nil
}

// FetchOne returns the note with the given ID, or nil if there is none.
func (r *NoteRepository) FetchOne(ctx context.Context, id string) (*core.Note, error) {
	if checkID(id) != nil {
		return nil, nil
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, err := s.notes.get(id)
	if err != nil {
		return nil, core.NewStorageError("fetch note", err)
	}
	if n == nil {
		return nil, nil
	}
	categories, err := s.categories.list()
	if err != nil {
		return nil, core.NewStorageError("fetch note", err)
	}

	resolved := core.ResolveCategories([]core.Note{*n}, categories)[0]
	return &resolved, nil
}

// Save writes the note file, creating or replacing it.
func (r *NoteRepository) Save(ctx context.Context, n core.Note) error {
	if err := checkID(n.ID); err != nil {
		return core.NewStorageError("save note", err)
	}
	data, err := r.store.notes.codec.Serialize(n)
	if err != nil {
		return core.NewStorageError("save note", err)
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.commit(ctx, func(tx *transaction) error {
		return tx.Put(s.notes.relPath(n.ID), data)
	})
	return core.NewStorageError("save note", err)
}

// Delete removes the note file.
func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	if checkID(id) != nil {
		return nil
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.commit(ctx, func(tx *transaction) error {
		return tx.Remove(s.notes.relPath(id))
	})
	return core.NewStorageError("delete note", err)
}

// CategoryRepository is a core.CategoryRepository over a Store.
type CategoryRepository struct {
	store *Store
}

// FetchAll returns every category sorted by name.
func (r *CategoryRepository) FetchAll(ctx context.Context) ([]core.Category, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories, err := s.categories.list()
	if err != nil {
		return nil, core.NewStorageError("fetch categories", err)
	}
	core.SortCategories(categories)
	return categories, nil
}

// FetchOne returns the category with the given ID, or nil if there is none.
func (r *CategoryRepository) FetchOne(ctx context.Context, id string) (*core.Category, error) {
	if checkID(id) != nil {
		return nil, nil
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, err := s.categories.get(id)
	if err != nil {
		return nil, core.NewStorageError("fetch category", err)
	}
	return c, nil
}

// Add writes a new category file. It fails if the ID is taken.
func (r *CategoryRepository) Add(ctx context.Context, c core.Category) error {
	return r.write(ctx, "add category", c, false)
}

// Update rewrites an existing category file. Unknown IDs are ignored.
func (r *CategoryRepository) Update(ctx context.Context, c core.Category) error {
	return r.write(ctx, "update category", c, true)
}

func (r *CategoryRepository) write(ctx context.Context, op string, c core.Category, replace bool) error {
	if err := c.Validate(); err != nil {
		return core.NewStorageError(op, fmt.Errorf("%w: %v", core.ErrInvalidCategory, err))
	}
	if err := checkID(c.ID); err != nil {
		return core.NewStorageError(op, fmt.Errorf("%w: %v", core.ErrInvalidCategory, err))
	}
	data, err := r.store.categories.codec.Serialize(c)
	if err != nil {
		return core.NewStorageError(op, err)
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.categories.exists(c.ID)
	if err != nil {
		return core.NewStorageError(op, err)
	}
	switch {
	case replace && !exists:
		return nil
	case !replace && exists:
		return core.NewStorageError(op, fmt.Errorf("%w: %s", core.ErrCategoryExists, c.ID))
	}

	err = s.commit(ctx, func(tx *transaction) error {
		return tx.Put(s.categories.relPath(c.ID), data)
	})
	return core.NewStorageError(op, err)
}

// Delete removes the category file.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	if checkID(id) != nil {
		return nil
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.commit(ctx, func(tx *transaction) error {
		return tx.Remove(s.categories.relPath(id))
	})
	return core.NewStorageError("delete category", err)
}

var (
	_ core.NoteRepository     = (*NoteRepository)(nil)
	_ core.CategoryRepository = (*CategoryRepository)(nil)
)
