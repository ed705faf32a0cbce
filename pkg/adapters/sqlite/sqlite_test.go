package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quicknotes/internal/repotest"
	"github.com/aretw0/quicknotes/pkg/adapters/sqlite"
	"github.com/aretw0/quicknotes/pkg/core"
)

func openDB(t *testing.T, path string) *sqlite.DB {
	t.Helper()
	db, err := sqlite.Open(context.Background(), sqlite.Config{Path: path})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestContract(t *testing.T) {
	repotest.Run(t, func(t *testing.T) (core.NoteRepository, core.CategoryRepository) {
		db := openDB(t, filepath.Join(t.TempDir(), "notes.db"))
		return db.Notes(), db.Categories()
	})
}

func TestOpen(t *testing.T) {
	t.Run("Directory Gets Default File", func(t *testing.T) {
		dir := t.TempDir()
		db := openDB(t, dir)
		assert.Equal(t, filepath.Join(dir, sqlite.DefaultFileName), db.Path)
		assert.FileExists(t, db.Path)
	})

	t.Run("Creates Parent Directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a", "b", "notes.db")
		db := openDB(t, path)
		assert.Equal(t, path, db.Path)
	})
}

func TestDurability(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "notes.db")
	ts := time.Date(2026, 7, 4, 12, 30, 0, 123456789, time.UTC)

	first, err := sqlite.Open(ctx, sqlite.Config{Path: path})
	require.NoError(t, err)

	cat := core.Category{ID: "c1", Name: "Ideas", Icon: "lightbulb.fill", Color: "10B981", CreatedAt: ts, ModifiedAt: ts}
	n := core.Note{ID: "n1", Title: "App name ideas", CategoryID: "c1", IsPinned: true, CreatedAt: ts, ModifiedAt: ts}
	require.NoError(t, first.Categories().Add(ctx, cat))
	require.NoError(t, first.Notes().Save(ctx, n))
	require.NoError(t, first.Close())

	second := openDB(t, path)
	got, err := second.Notes().FetchOne(ctx, "n1")
	require.NoError(t, err)
	require.NotNil(t, got)
	repotest.AssertNoteEqual(t, n, *got)
	require.NotNil(t, got.Category)
	assert.Equal(t, "Ideas", got.Category.Name)
}

func TestStorageErrors(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(ctx, sqlite.Config{Path: filepath.Join(t.TempDir(), "notes.db")})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = db.Notes().FetchAll(ctx)
	require.Error(t, err)
	assert.True(t, core.IsStorage(err))

	err = db.Notes().Save(ctx, core.NewNote("x", "", ""))
	require.Error(t, err)
	assert.True(t, core.IsStorage(err))
}

func TestTimestampRange(t *testing.T) {
	ctx := context.Background()
	db := openDB(t, filepath.Join(t.TempDir(), "notes.db"))

	t.Run("Years Past 9999 Are Rejected", func(t *testing.T) {
		n := core.NewNote("Far", "", "")
		n.CreatedAt = time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC)
		err := db.Notes().Save(ctx, n)
		require.Error(t, err)
		assert.True(t, core.IsStorage(err))

		got, err := db.Notes().FetchOne(ctx, n.ID)
		require.NoError(t, err)
		assert.Nil(t, got, "nothing is written")

		c := core.NewCategory("Later", "folder.fill", "6B7280")
		c.ModifiedAt = time.Date(-1, 1, 1, 0, 0, 0, 0, time.UTC)
		err = db.Categories().Add(ctx, c)
		require.Error(t, err)
		assert.True(t, core.IsStorage(err))
	})

	t.Run("Text Order Is Time Order", func(t *testing.T) {
		early := core.NewNote("Early", "", "")
		early.ModifiedAt = time.Date(1650, 6, 1, 0, 0, 0, 0, time.UTC)
		late := core.NewNote("Late", "", "")
		late.ModifiedAt = time.Date(2300, 1, 1, 0, 0, 0, 0, time.UTC)
		mid := core.NewNote("Mid", "", "")
		mid.ModifiedAt = time.Date(2026, 1, 1, 0, 0, 0, 500, time.FixedZone("X", -3*3600))

		for _, n := range []core.Note{late, early, mid} {
			require.NoError(t, db.Notes().Save(ctx, n))
		}
		notes, err := db.Notes().FetchAll(ctx)
		require.NoError(t, err)
		require.Len(t, notes, 3)
		assert.Equal(t, []string{"Late", "Mid", "Early"}, []string{notes[0].Title, notes[1].Title, notes[2].Title})
		assert.True(t, mid.ModifiedAt.Equal(notes[1].ModifiedAt))
	})
}

func TestState(t *testing.T) {
	ctx := context.Background()
	db := openDB(t, filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, db.Notes().Save(ctx, core.NewNote("a", "", "")))
	require.NoError(t, db.Notes().Save(ctx, core.NewNote("b", "", "")))

	assert.Equal(t, core.RepositoryState{Backend: "sqlite", Path: db.Path, Records: 2}, db.Notes().State())
	assert.Equal(t, core.RepositoryState{Backend: "sqlite", Path: db.Path, Records: 0}, db.Categories().State())
	assert.Equal(t, "sqlite_store", db.ComponentType())

	state := db.State().(sqlite.DBState)
	assert.Equal(t, db.Path, state.Path)
	assert.False(t, state.WatcherActive)
}

func TestWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.db")
	db := openDB(t, path)
	other := openDB(t, path)

	ctx, cancel := context.WithCancel(context.Background())
	changed := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- db.Watch(ctx, func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
	}()

	require.Eventually(t, func() bool {
		return db.State().(sqlite.DBState).WatcherActive
	}, time.Second, 10*time.Millisecond)
	// Let fsnotify register the directory before writing.
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, other.Notes().Save(context.Background(), core.NewNote("from another connection", "", "")))

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	assert.NoError(t, <-done)
	assert.False(t, db.State().(sqlite.DBState).WatcherActive)
}
