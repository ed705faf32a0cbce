package quicknotes

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/quicknotes/internal/platform"
	"github.com/aretw0/quicknotes/pkg/core"
	"github.com/aretw0/quicknotes/pkg/listing"
	"github.com/aretw0/quicknotes/pkg/usecase"
)

// --- Types ---

// App is a fully wired QuickNotes instance.
type App = platform.App

// AppState is the observability snapshot returned by App.State.
type AppState = platform.AppState

// Identity is the account part of the profile.
type Identity = usecase.Identity

// Adapter names.
const (
	AdapterMemory = platform.AdapterMemory
	AdapterFS     = platform.AdapterFS
	AdapterSQLite = platform.AdapterSQLite
)

// StoreDir is the workspace directory holding the default store.
const StoreDir = platform.StoreDir

// ErrWatchUnsupported is returned by App.Watch for stores that cannot be watched.
var ErrWatchUnsupported = platform.ErrWatchUnsupported

// --- Configuration ---

// Option defines a functional option for configuring QuickNotes.
type Option = platform.Option

// WithLogger sets the logger for the application and its stores.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithAdapter selects the storage backend by name.
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithPath sets the store location.
func WithPath(path string) Option {
	return platform.WithPath(path)
}

// WithMustExist fails instead of creating a missing store root.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithSeed controls whether an empty store gets sample data.
func WithSeed(enabled bool) Option {
	return platform.WithSeed(enabled)
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return platform.WithClock(now)
}

// WithIdentity sets the account details shown on the profile.
func WithIdentity(identity Identity) Option {
	return platform.WithIdentity(identity)
}

// WithLoadOrder sets the order in which list views fetch notes.
func WithLoadOrder(order listing.SortOrder) Option {
	return platform.WithLoadOrder(order)
}

// WithFilter sets the initial filter of list views.
func WithFilter(f listing.Filter) Option {
	return platform.WithFilter(f)
}

// WithRepositories injects custom repositories.
func WithRepositories(notes core.NoteRepository, categories core.CategoryRepository) Option {
	return platform.WithRepositories(notes, categories)
}

// --- Factory ---

// New opens the configured store and wires the application.
func New(ctx context.Context, opts ...Option) (*App, error) {
	return platform.New(ctx, opts...)
}

// --- Utils ---

// FindRoot looks upwards from startDir for a QuickNotes workspace.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
