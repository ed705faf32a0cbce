// Package memory provides process-local repositories.
//
// Each repository guards its slice with one mutex. Writers hold it for their
// whole body and readers copy a snapshot under it.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/introspection"

	"github.com/aretw0/quicknotes/pkg/core"
	"github.com/aretw0/quicknotes/pkg/seed"
)

// NoteRepository is an in-memory core.NoteRepository.
type NoteRepository struct {
	mu       sync.Mutex
	notes    []core.Note
	resolver core.CategoryRepository
}

// NewNoteRepository creates a note repository. Without initial notes it is
// filled with the sample notes unless WithoutSeed is given.
func NewNoteRepository(opts ...Option) *NoteRepository {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	notes := slices.Clone(o.notes)
	if len(notes) == 0 && o.seed {
		now := time.Now()
		notes = seed.Notes(seed.Categories(now), now)
	}

	return &NoteRepository{
		notes:    notes,
		resolver: o.resolver,
	}
}

// FetchAll returns every note, most recently modified first.
func (r *NoteRepository) FetchAll(ctx context.Context) ([]core.Note, error) {
	categories, err := r.categories(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	out := slices.Clone(r.notes)
	r.mu.Unlock()

	core.SortNotesByModified(out)
	if r.resolver != nil {
		out = core.ResolveCategories(out, categories)
	}
	return out, nil
}

// FetchOne returns the note with the given ID, or nil if there is none.
func (r *NoteRepository) FetchOne(ctx context.Context, id string) (*core.Note, error) {
	categories, err := r.categories(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	i := core.NoteIndex(r.notes, id)
	if i < 0 {
		r.mu.Unlock()
		return nil, nil
	}
	n := r.notes[i]
	r.mu.Unlock()

	if r.resolver != nil {
		n = core.ResolveCategories([]core.Note{n}, categories)[0]
	}
	return &n, nil
}

// Save inserts n at the front when its ID is new and replaces the stored note otherwise.
func (r *NoteRepository) Save(ctx context.Context, n core.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n.Category = nil
	if i := core.NoteIndex(r.notes, n.ID); i >= 0 {
		r.notes[i] = n
		return nil
	}
	r.notes = slices.Insert(r.notes, 0, n)
	return nil
}

// Delete removes the note with the given ID.
func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.notes = slices.DeleteFunc(r.notes, func(n core.Note) bool { return n.ID == id })
	return nil
}

func (r *NoteRepository) categories(ctx context.Context) ([]core.Category, error) {
	if r.resolver == nil {
		return nil, nil
	}
	return r.resolver.FetchAll(ctx)
}

// State implements introspection.Introspectable.
func (r *NoteRepository) State() any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return core.RepositoryState{Backend: "memory", Records: len(r.notes)}
}

// ComponentType implements introspection.Component.
func (r *NoteRepository) ComponentType() string {
	return "note_repository"
}

var (
	_ core.NoteRepository          = (*NoteRepository)(nil)
	_ introspection.Introspectable = (*NoteRepository)(nil)
	_ introspection.Component      = (*NoteRepository)(nil)
)
