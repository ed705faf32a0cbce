package core_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quicknotes/pkg/core"
)

func TestNote_Mutators(t *testing.T) {
	base := core.NewNote("Title", "body", "")
	require.NotEmpty(t, base.ID)
	require.True(t, base.CreatedAt.Equal(base.ModifiedAt))

	later := base.ModifiedAt.Add(time.Minute)

	t.Run("Keeps Identity", func(t *testing.T) {
		pinned := base.WithPinned(true, later)
		assert.Equal(t, base.ID, pinned.ID)
		assert.True(t, base.CreatedAt.Equal(pinned.CreatedAt))
		assert.True(t, pinned.ModifiedAt.Equal(later))
		assert.True(t, pinned.IsPinned)
		assert.False(t, base.IsPinned, "original must not change")
	})

	t.Run("Flags Are Independent", func(t *testing.T) {
		n := base.WithArchived(true, later).WithCompleted(true, later)
		assert.True(t, n.IsArchived)
		assert.True(t, n.IsCompleted)
		assert.False(t, n.IsPinned)
		assert.True(t, n.IsHidden())
	})

	t.Run("Touch Is Strictly Monotonic", func(t *testing.T) {
		stale := base.ModifiedAt.Add(-time.Hour)
		n := base.Touch(stale)
		assert.True(t, n.ModifiedAt.After(base.ModifiedAt))

		same := base.Touch(base.ModifiedAt)
		assert.True(t, same.ModifiedAt.After(base.ModifiedAt))
	})

	t.Run("WithCategory Clears Resolved Value", func(t *testing.T) {
		c := core.NewCategory("Work", "briefcase.fill", "F59E0B")
		n := base
		n.CategoryID = c.ID
		n.Category = &c

		cleared := n.WithCategory("", later)
		assert.Empty(t, cleared.CategoryID)
		assert.Nil(t, cleared.Category)
	})
}

func TestNote_EnsureIdentity(t *testing.T) {
	now := time.Date(2026, 1, 29, 10, 0, 0, 0, time.UTC)

	n := core.Note{Title: "x"}.EnsureIdentity(now)
	assert.NotEmpty(t, n.ID)
	assert.True(t, n.CreatedAt.Equal(now))
	assert.True(t, n.ModifiedAt.Equal(now))

	existing := core.NewNote("y", "", "")
	kept := existing.EnsureIdentity(now)
	assert.Equal(t, existing, kept)
}

func TestResolveCategories(t *testing.T) {
	work := core.NewCategory("Work", "", "")
	a := core.NewNote("a", "", work.ID)
	b := core.NewNote("b", "", "deleted-category")
	c := core.NewNote("c", "", "")

	notes := core.ResolveCategories([]core.Note{a, b, c}, []core.Category{work})

	require.NotNil(t, notes[0].Category)
	assert.Equal(t, "Work", notes[0].Category.Name)
	assert.Nil(t, notes[1].Category, "dangling reference resolves to nil")
	assert.Equal(t, "deleted-category", notes[1].CategoryID)
	assert.Nil(t, notes[2].Category)
}

func TestSortNotesByModified(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	notes := []core.Note{
		{ID: "old", ModifiedAt: t0},
		{ID: "new", ModifiedAt: t0.Add(2 * time.Hour)},
		{ID: "mid", ModifiedAt: t0.Add(time.Hour)},
	}
	core.SortNotesByModified(notes)
	assert.Equal(t, []string{"new", "mid", "old"}, []string{notes[0].ID, notes[1].ID, notes[2].ID})
}

func TestCategory_Validate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, core.NewCategory("Work", "briefcase.fill", "F59E0B").Validate())
	})

	t.Run("Empty Name", func(t *testing.T) {
		assert.Error(t, core.NewCategory("", "folder.fill", "3B82F6").Validate())
	})
}

func TestSortCategories(t *testing.T) {
	cats := []core.Category{
		{ID: "1", Name: "personal"},
		{ID: "2", Name: "Ideas"},
		{ID: "3", Name: "work"},
		{ID: "4", Name: "Archive"},
	}
	core.SortCategories(cats)

	var names []string
	for _, c := range cats {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Archive", "Ideas", "personal", "work"}, names)
}

func TestErrors(t *testing.T) {
	cause := errors.New("disk full")

	err := core.NewStorageError("save note", cause)
	assert.True(t, core.IsStorage(err))
	assert.ErrorIs(t, err, cause)
	assert.Same(t, err, core.NewStorageError("again", err), "already wrapped errors pass through")
	assert.NoError(t, core.NewStorageError("noop", nil))

	verr := &core.ValidationError{Field: "title", Err: core.ErrEmptyTitle}
	assert.True(t, core.IsValidation(verr))
	assert.ErrorIs(t, verr, core.ErrEmptyTitle)
	assert.False(t, core.IsStorage(verr))
}
