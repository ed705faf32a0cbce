// Package platform assembles a QuickNotes application: it opens the selected
// store, seeds it when empty and wires every use case to it.
package platform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/introspection"

	"github.com/aretw0/quicknotes/pkg/adapters/fs"
	"github.com/aretw0/quicknotes/pkg/adapters/memory"
	"github.com/aretw0/quicknotes/pkg/adapters/sqlite"
	"github.com/aretw0/quicknotes/pkg/core"
	"github.com/aretw0/quicknotes/pkg/listing"
	"github.com/aretw0/quicknotes/pkg/seed"
	"github.com/aretw0/quicknotes/pkg/usecase"
)

// ErrWatchUnsupported is returned by App.Watch for stores that cannot see
// changes made by other processes.
var ErrWatchUnsupported = errors.New("store does not support watching")

// Watcher is implemented by stores that report external changes.
type Watcher interface {
	Watch(ctx context.Context, onChange func()) error
}

// App is a fully wired QuickNotes instance.
type App struct {
	Adapter    string
	Path       string
	Notes      core.NoteRepository
	Categories core.CategoryRepository

	GetNotes       *usecase.GetNotes
	GetNote        *usecase.GetNote
	SaveNote       *usecase.SaveNote
	DeleteNote     *usecase.DeleteNote
	GetCategories  *usecase.GetCategories
	AddCategory    *usecase.AddCategory
	UpdateCategory *usecase.UpdateCategory
	DeleteCategory *usecase.DeleteCategory
	GetProfile     *usecase.GetProfile

	opts    *options
	backend any
	seeded  bool
}

// New opens the configured store and returns the wired application.
//
//	app, err := platform.New(ctx, platform.WithAdapter("sqlite"), platform.WithPath("./notes.db"))
func New(ctx context.Context, opts ...Option) (*App, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	app := &App{Adapter: o.adapter, opts: o}

	// 1. Check for injected repositories
	if o.notes != nil || o.categories != nil {
		if o.notes == nil || o.categories == nil {
			return nil, errors.New("both repositories must be injected together")
		}
		app.Adapter = "custom"
		app.Notes, app.Categories = o.notes, o.categories
	} else if err := app.open(ctx); err != nil {
		return nil, err
	}

	// 2. Seed
	if o.seed {
		app.seeded = seed.Apply(ctx, app.Notes, app.Categories, o.logger)
	}

	// 3. Wire use cases
	app.wire()

	o.logger.Debug("application ready", "adapter", app.Adapter, "path", app.Path)
	return app, nil
}

func (a *App) open(ctx context.Context) error {
	o := a.opts
	switch o.adapter {
	case AdapterMemory:
		// Seeding happens below, like for every other store.
		categories := memory.NewCategoryRepository(memory.WithoutSeed())
		a.Notes = memory.NewNoteRepository(memory.WithoutSeed(), memory.WithResolver(categories))
		a.Categories = categories

	case AdapterFS:
		path, err := ResolveStorePath(o.path, ".")
		if err != nil {
			return fmt.Errorf("failed to resolve store path: %w", err)
		}
		store := fs.NewStore(fs.Config{Path: path, MustExist: o.mustExist, Logger: o.logger})
		if err := store.Initialize(ctx); err != nil {
			return err
		}
		a.Path = path
		a.Notes, a.Categories = store.Notes(), store.Categories()
		a.backend = store

	case AdapterSQLite:
		path := o.path
		if path == "" {
			dir, err := ResolveStorePath("", ".")
			if err != nil {
				return fmt.Errorf("failed to resolve store path: %w", err)
			}
			path = filepath.Join(dir, sqlite.DefaultFileName)
		}
		db, err := sqlite.Open(ctx, sqlite.Config{Path: path, Logger: o.logger})
		if err != nil {
			return err
		}
		a.Path = db.Path
		a.Notes, a.Categories = db.Notes(), db.Categories()
		a.backend = db

	default:
		return fmt.Errorf("unknown adapter: %s", o.adapter)
	}
	return nil
}

func (a *App) wire() {
	o := a.opts
	ucOpts := []usecase.Option{usecase.WithClock(o.now), usecase.WithLogger(o.logger)}

	a.GetNotes = usecase.NewGetNotes(a.Notes)
	a.GetNote = usecase.NewGetNote(a.Notes)
	a.SaveNote = usecase.NewSaveNote(a.Notes, ucOpts...)
	a.DeleteNote = usecase.NewDeleteNote(a.Notes)
	a.GetCategories = usecase.NewGetCategories(a.Categories)
	a.AddCategory = usecase.NewAddCategory(a.Categories, ucOpts...)
	a.UpdateCategory = usecase.NewUpdateCategory(a.Categories)
	a.DeleteCategory = usecase.NewDeleteCategory(a.GetNotes, a.SaveNote, a.Categories, ucOpts...)
	a.GetProfile = usecase.NewGetProfile(a.GetNotes, a.GetCategories, o.identity)
}

// Seeded reports whether New filled an empty store with sample data.
func (a *App) Seeded() bool {
	return a.seeded
}

// NewListViewModel returns a note list bound to this application. Options
// given here override the configured load order and filter.
func (a *App) NewListViewModel(opts ...listing.Option) *listing.ViewModel {
	o := a.opts
	base := []listing.Option{
		listing.WithLoadOrder(o.loadOrder),
		listing.WithFilter(o.filter),
		listing.WithClock(o.now),
		listing.WithLogger(o.logger),
	}
	return listing.NewViewModel(a.GetNotes, a.SaveNote, a.DeleteNote, append(base, opts...)...)
}

// Watch blocks until ctx is done, calling onChange whenever the store changes
// on disk. It returns ErrWatchUnsupported for in-memory and injected stores.
func (a *App) Watch(ctx context.Context, onChange func()) error {
	w, ok := a.backend.(Watcher)
	if !ok {
		return ErrWatchUnsupported
	}
	return w.Watch(ctx, onChange)
}

// Close releases the store.
func (a *App) Close() error {
	if c, ok := a.backend.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// AppState is the observability snapshot of an App.
type AppState struct {
	Adapter    string `json:"adapter"`
	Path       string `json:"path,omitempty"`
	Seeded     bool   `json:"seeded"`
	Store      any    `json:"store,omitempty"`
	StoreType  string `json:"store_type"`
	Notes      any    `json:"notes,omitempty"`
	Categories any    `json:"categories,omitempty"`
}

// State implements introspection.Introspectable.
func (a *App) State() any {
	state := AppState{
		Adapter:    a.Adapter,
		Path:       a.Path,
		Seeded:     a.seeded,
		StoreType:  a.Adapter,
		Notes:      core.StateOf(a.Notes),
		Categories: core.StateOf(a.Categories),
	}
	if a.backend != nil {
		state.Store = core.StateOf(a.backend)
		state.StoreType = core.ComponentTypeOf(a.backend)
	}
	return state
}

// ComponentType implements introspection.Component.
func (a *App) ComponentType() string {
	return "quicknotes"
}

var (
	_ introspection.Introspectable = (*App)(nil)
	_ introspection.Component      = (*App)(nil)
)
