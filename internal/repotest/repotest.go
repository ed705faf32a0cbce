// Package repotest is the behavioural contract shared by every repository
// backend. Adapter tests call Run with a constructor for empty stores.
package repotest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quicknotes/pkg/core"
)

// Factory returns an empty, unseeded pair of repositories where the note
// repository resolves categories from the category repository.
type Factory func(t *testing.T) (core.NoteRepository, core.CategoryRepository)

// Run executes the contract suite.
func Run(t *testing.T, newRepos Factory) {
	t.Run("Notes", func(t *testing.T) { runNotes(t, newRepos) })
	t.Run("Categories", func(t *testing.T) { runCategories(t, newRepos) })
}

// AssertNoteEqual compares notes field by field, with timestamps compared as
// instants.
func AssertNoteEqual(t *testing.T, want, got core.Note) {
	t.Helper()
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Title, got.Title)
	assert.Equal(t, want.Content, got.Content)
	assert.Equal(t, want.CategoryID, got.CategoryID)
	assert.Equal(t, want.IsPinned, got.IsPinned)
	assert.Equal(t, want.IsArchived, got.IsArchived)
	assert.Equal(t, want.IsCompleted, got.IsCompleted)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt), "created_at: want %v, got %v", want.CreatedAt, got.CreatedAt)
	assert.True(t, want.ModifiedAt.Equal(got.ModifiedAt), "modified_at: want %v, got %v", want.ModifiedAt, got.ModifiedAt)
}

func fixedTime() time.Time {
	return time.Date(2026, 3, 14, 9, 26, 53, 589793000, time.UTC)
}

func note(id, title string, modified time.Time) core.Note {
	return core.Note{
		ID:         id,
		Title:      title,
		Content:    "content of " + title,
		CreatedAt:  modified,
		ModifiedAt: modified,
	}
}

func category(id, name string) core.Category {
	return core.Category{
		ID:         id,
		Name:       name,
		Icon:       "folder.fill",
		Color:      "3B82F6",
		CreatedAt:  fixedTime(),
		ModifiedAt: fixedTime(),
	}
}

func runNotes(t *testing.T, newRepos Factory) {
	ctx := context.Background()
	t0 := fixedTime()

	t.Run("Round Trip", func(t *testing.T) {
		notes, cats := newRepos(t)
		work := category("cat-work", "Work")
		require.NoError(t, cats.Add(ctx, work))

		n := note("n1", "Shopping List", t0)
		n.CategoryID = work.ID
		n.Content = "Milk\nEggs: a dozen\n---\nBread"
		n.IsPinned = true
		n.IsCompleted = true
		require.NoError(t, notes.Save(ctx, n))

		got, err := notes.FetchOne(ctx, "n1")
		require.NoError(t, err)
		require.NotNil(t, got)
		AssertNoteEqual(t, n, *got)
		require.NotNil(t, got.Category)
		assert.Equal(t, "Work", got.Category.Name)

		far := note("n2", "Time Capsule", time.Date(2300, 1, 1, 12, 0, 0, 123456789, time.UTC))
		far.CreatedAt = time.Date(1650, 7, 4, 0, 0, 0, 1, time.UTC)
		require.NoError(t, notes.Save(ctx, far))

		got, err = notes.FetchOne(ctx, "n2")
		require.NoError(t, err)
		require.NotNil(t, got)
		AssertNoteEqual(t, far, *got)
	})

	t.Run("Absent Is Not An Error", func(t *testing.T) {
		notes, _ := newRepos(t)
		got, err := notes.FetchOne(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Upsert Is Idempotent", func(t *testing.T) {
		notes, _ := newRepos(t)
		n := note("n1", "Draft", t0)
		require.NoError(t, notes.Save(ctx, n))
		require.NoError(t, notes.Save(ctx, n))

		all, err := notes.FetchAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)

		edited := n.WithTitle("Final", t0.Add(time.Minute))
		require.NoError(t, notes.Save(ctx, edited))

		all, err = notes.FetchAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "Final", all[0].Title)
	})

	t.Run("FetchAll Orders By Modification", func(t *testing.T) {
		notes, _ := newRepos(t)
		require.NoError(t, notes.Save(ctx, note("old", "Old", t0)))
		require.NoError(t, notes.Save(ctx, note("new", "New", t0.Add(2*time.Hour))))
		require.NoError(t, notes.Save(ctx, note("mid", "Mid", t0.Add(time.Hour))))

		all, err := notes.FetchAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []string{"new", "mid", "old"}, []string{all[0].ID, all[1].ID, all[2].ID})
	})

	t.Run("Dangling Category Resolves To Nil", func(t *testing.T) {
		notes, cats := newRepos(t)
		tmp := category("cat-tmp", "Temporary")
		require.NoError(t, cats.Add(ctx, tmp))

		n := note("n1", "Orphan", t0)
		n.CategoryID = tmp.ID
		require.NoError(t, notes.Save(ctx, n))
		require.NoError(t, cats.Delete(ctx, tmp.ID))

		all, err := notes.FetchAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, tmp.ID, all[0].CategoryID)
		assert.Nil(t, all[0].Category)
	})

	t.Run("Delete", func(t *testing.T) {
		notes, _ := newRepos(t)
		require.NoError(t, notes.Save(ctx, note("a", "A", t0)))
		require.NoError(t, notes.Save(ctx, note("b", "B", t0)))

		require.NoError(t, notes.Delete(ctx, "a"))
		require.NoError(t, notes.Delete(ctx, "unknown"), "deleting an unknown id is a no-op")

		all, err := notes.FetchAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "b", all[0].ID)
	})

	t.Run("Concurrent Saves", func(t *testing.T) {
		notes, _ := newRepos(t)
		var wg sync.WaitGroup
		for i := range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				n := core.NewNote("note", "", "")
				n.ModifiedAt = t0.Add(time.Duration(i) * time.Second)
				assert.NoError(t, notes.Save(ctx, n))
			}()
		}
		wg.Wait()

		all, err := notes.FetchAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 20)
	})
}

func runCategories(t *testing.T, newRepos Factory) {
	ctx := context.Background()

	t.Run("Sorted By Name", func(t *testing.T) {
		_, cats := newRepos(t)
		require.NoError(t, cats.Add(ctx, category("1", "work")))
		require.NoError(t, cats.Add(ctx, category("2", "Ideas")))
		require.NoError(t, cats.Add(ctx, category("3", "personal")))

		all, err := cats.FetchAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []string{"Ideas", "personal", "work"}, []string{all[0].Name, all[1].Name, all[2].Name})
	})

	t.Run("FetchOne", func(t *testing.T) {
		_, cats := newRepos(t)
		c := category("1", "Work")
		require.NoError(t, cats.Add(ctx, c))

		got, err := cats.FetchOne(ctx, "1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, c.Name, got.Name)
		assert.Equal(t, c.Icon, got.Icon)
		assert.Equal(t, c.Color, got.Color)
		assert.True(t, c.CreatedAt.Equal(got.CreatedAt))

		missing, err := cats.FetchOne(ctx, "2")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("Add Rejects Duplicates", func(t *testing.T) {
		_, cats := newRepos(t)
		require.NoError(t, cats.Add(ctx, category("1", "Work")))

		err := cats.Add(ctx, category("1", "Other"))
		require.Error(t, err)
		assert.True(t, core.IsStorage(err))
		assert.ErrorIs(t, err, core.ErrCategoryExists)
	})

	t.Run("Add Rejects Invalid", func(t *testing.T) {
		_, cats := newRepos(t)
		err := cats.Add(ctx, category("1", ""))
		require.Error(t, err)
		assert.True(t, core.IsStorage(err))
		assert.ErrorIs(t, err, core.ErrInvalidCategory)

		all, err := cats.FetchAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("Update", func(t *testing.T) {
		_, cats := newRepos(t)
		c := category("1", "Work")
		require.NoError(t, cats.Add(ctx, c))

		c.Name = "Job"
		c.ModifiedAt = c.ModifiedAt.Add(time.Hour)
		require.NoError(t, cats.Update(ctx, c))
		require.NoError(t, cats.Update(ctx, category("ghost", "Ghost")), "updating an unknown id is a no-op")

		all, err := cats.FetchAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "Job", all[0].Name)
		assert.True(t, c.ModifiedAt.Equal(all[0].ModifiedAt))
	})

	t.Run("Delete", func(t *testing.T) {
		_, cats := newRepos(t)
		require.NoError(t, cats.Add(ctx, category("1", "Work")))
		require.NoError(t, cats.Delete(ctx, "1"))
		require.NoError(t, cats.Delete(ctx, "1"))

		all, err := cats.FetchAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}
