package core

import (
	"context"
	"slices"
)

// NoteRepository defines the contract for storing and retrieving notes.
// Adhering to this interface keeps the use cases independent of the
// underlying storage mechanism (memory, filesystem, SQL).
type NoteRepository interface {
	// FetchAll returns every note, most recently modified first.
	FetchAll(ctx context.Context) ([]Note, error)

	// FetchOne returns the note with the given ID, or nil if there is none.
	FetchOne(ctx context.Context, id string) (*Note, error)

	// Save inserts the note if its ID is new, or replaces the stored one.
	Save(ctx context.Context, n Note) error

	// Delete removes a note by its ID. Deleting an unknown ID is a no-op.
	Delete(ctx context.Context, id string) error
}

// CategoryRepository defines the contract for storing and retrieving categories.
type CategoryRepository interface {
	// FetchAll returns every category sorted case-insensitively by name.
	FetchAll(ctx context.Context) ([]Category, error)

	// FetchOne returns the category with the given ID, or nil if there is none.
	FetchOne(ctx context.Context, id string) (*Category, error)

	// Add stores a new category.
	Add(ctx context.Context, c Category) error

	// Update replaces a stored category. Updating an unknown ID is a no-op.
	Update(ctx context.Context, c Category) error

	// Delete removes a category by its ID. Deleting an unknown ID is a no-op.
	Delete(ctx context.Context, id string) error
}

// SortNotesByModified sorts notes in place, most recently modified first.
// Ties keep their relative order.
func SortNotesByModified(notes []Note) {
	slices.SortStableFunc(notes, func(a, b Note) int {
		return b.ModifiedAt.Compare(a.ModifiedAt)
	})
}

// ResolveCategories attaches the referenced Category to each note.
// References to categories missing from the set resolve to nil.
func ResolveCategories(notes []Note, categories []Category) []Note {
	byID := make(map[string]Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}
	for i := range notes {
		notes[i].Category = nil
		if notes[i].CategoryID == "" {
			continue
		}
		if c, ok := byID[notes[i].CategoryID]; ok {
			notes[i].Category = &c
		}
	}
	return notes
}

// CategoryIndex returns the position of the category with the given ID, or -1.
func CategoryIndex(categories []Category, id string) int {
	return slices.IndexFunc(categories, func(c Category) bool { return c.ID == id })
}

// NoteIndex returns the position of the note with the given ID, or -1.
func NoteIndex(notes []Note, id string) int {
	return slices.IndexFunc(notes, func(n Note) bool { return n.ID == id })
}
