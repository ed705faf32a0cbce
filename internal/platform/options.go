package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/quicknotes/pkg/core"
	"github.com/aretw0/quicknotes/pkg/listing"
	"github.com/aretw0/quicknotes/pkg/usecase"
)

// Adapter names accepted by WithAdapter.
const (
	AdapterMemory = "memory"
	AdapterFS     = "fs"
	AdapterSQLite = "sqlite"
)

// options holds the internal configuration for the application.
type options struct {
	logger     *slog.Logger
	adapter    string
	path       string
	mustExist  bool
	seed       bool
	now        func() time.Time
	identity   usecase.Identity
	loadOrder  listing.SortOrder
	filter     listing.Filter
	notes      core.NoteRepository
	categories core.CategoryRepository
}

// Option defines a functional option for configuring the application.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter:  AdapterFS,
		seed:     true,
		now:      time.Now,
		identity: usecase.Identity{DisplayName: "QuickNotes User"},
	}
}

// WithLogger sets the logger for the application and its stores.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithAdapter selects the storage backend by name ("memory", "fs" or "sqlite").
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithPath sets the store location. For "fs" it is the store root, for
// "sqlite" a database file or a directory to hold one. Empty means the
// discovered default, see ResolveStorePath.
func WithPath(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// WithMustExist fails instead of creating a missing fs store root.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithSeed controls whether an empty store is filled with sample data.
// Enabled by default.
func WithSeed(enabled bool) Option {
	return func(o *options) {
		o.seed = enabled
	}
}

// WithClock replaces time.Now for every timestamp the application stamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithIdentity sets the account details shown on the profile.
func WithIdentity(identity usecase.Identity) Option {
	return func(o *options) {
		o.identity = identity
	}
}

// WithLoadOrder sets the order in which list views fetch notes.
func WithLoadOrder(order listing.SortOrder) Option {
	return func(o *options) {
		o.loadOrder = order
	}
}

// WithFilter sets the initial filter of list views.
func WithFilter(f listing.Filter) Option {
	return func(o *options) {
		o.filter = f
	}
}

// WithRepositories injects custom repositories (e.g. mocks). When set, the
// adapter options are ignored.
func WithRepositories(notes core.NoteRepository, categories core.CategoryRepository) Option {
	return func(o *options) {
		o.notes = notes
		o.categories = categories
	}
}
