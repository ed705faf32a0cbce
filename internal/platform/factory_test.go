package platform_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quicknotes/internal/platform"
	"github.com/aretw0/quicknotes/pkg/adapters/fs"
	"github.com/aretw0/quicknotes/pkg/adapters/memory"
	"github.com/aretw0/quicknotes/pkg/core"
	"github.com/aretw0/quicknotes/pkg/listing"
	"github.com/aretw0/quicknotes/pkg/usecase"
)

func openApp(t *testing.T, opts ...platform.Option) *platform.App {
	t.Helper()
	app, err := platform.New(context.Background(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestNew_Adapters(t *testing.T) {
	ctx := context.Background()

	cases := map[string][]platform.Option{
		"memory": {platform.WithAdapter(platform.AdapterMemory)},
		"fs":     {platform.WithAdapter(platform.AdapterFS), platform.WithPath(filepath.Join(t.TempDir(), "store"))},
		"sqlite": {platform.WithAdapter(platform.AdapterSQLite), platform.WithPath(filepath.Join(t.TempDir(), "notes.db"))},
	}

	for name, opts := range cases {
		t.Run(name, func(t *testing.T) {
			app := openApp(t, opts...)
			assert.Equal(t, name, app.Adapter)
			assert.True(t, app.Seeded())

			notes, err := app.GetNotes.Execute(ctx)
			require.NoError(t, err)
			assert.Len(t, notes, 10)

			profile, err := app.GetProfile.Execute(ctx)
			require.NoError(t, err)
			assert.Equal(t, 10, profile.NotesCount)
			assert.Equal(t, 3, profile.CategoriesCount)
			assert.Equal(t, "QuickNotes User", profile.DisplayName)
		})
	}
}

func TestNew_SeedOnlyOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store")

	first := openApp(t, platform.WithPath(path))
	assert.True(t, first.Seeded())
	require.NoError(t, first.Close())

	second := openApp(t, platform.WithPath(path))
	assert.False(t, second.Seeded())

	notes, err := second.GetNotes.Execute(context.Background())
	require.NoError(t, err)
	assert.Len(t, notes, 10)
}

func TestNew_WithoutSeed(t *testing.T) {
	app := openApp(t, platform.WithAdapter(platform.AdapterMemory), platform.WithSeed(false))
	assert.False(t, app.Seeded())

	notes, err := app.GetNotes.Execute(context.Background())
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestNew_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := platform.New(ctx, platform.WithAdapter("postgres"))
	assert.ErrorContains(t, err, "unknown adapter")

	_, err = platform.New(ctx, platform.WithPath(filepath.Join(t.TempDir(), "missing")), platform.WithMustExist(true))
	assert.Error(t, err)

	_, err = platform.New(ctx, platform.WithRepositories(memory.NewNoteRepository(), nil))
	assert.Error(t, err)
}

func TestNew_InjectedRepositories(t *testing.T) {
	ctx := context.Background()
	categories := memory.NewCategoryRepository(memory.WithoutSeed())
	notes := memory.NewNoteRepository(memory.WithoutSeed(), memory.WithResolver(categories))

	app := openApp(t, platform.WithRepositories(notes, categories), platform.WithSeed(false))
	assert.Equal(t, "custom", app.Adapter)

	saved, err := app.SaveNote.Execute(ctx, core.NewNote("Injected", "", ""))
	require.NoError(t, err)

	got, err := notes.FetchOne(ctx, saved.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Injected", got.Title)

	assert.ErrorIs(t, app.Watch(ctx, func() {}), platform.ErrWatchUnsupported)
}

func TestApp_ClockAndIdentity(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	joined := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

	app := openApp(t,
		platform.WithAdapter(platform.AdapterMemory),
		platform.WithSeed(false),
		platform.WithClock(func() time.Time { return now }),
		platform.WithIdentity(usecase.Identity{DisplayName: "Ada", Email: "ada@example.com", JoinedAt: joined}),
	)

	n, err := app.SaveNote.Execute(ctx, core.Note{Title: "Stamped"})
	require.NoError(t, err)
	assert.True(t, n.CreatedAt.Equal(now))

	profile, err := app.GetProfile.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada", profile.DisplayName)
	assert.Equal(t, "ada@example.com", profile.Email)
	assert.True(t, profile.JoinedAt.Equal(joined))
	assert.Equal(t, 1, profile.NotesCount)
}

func TestApp_DeleteCategoryCascade(t *testing.T) {
	ctx := context.Background()
	app := openApp(t, platform.WithPath(filepath.Join(t.TempDir(), "store")))

	categories, err := app.GetCategories.Execute(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, categories)
	target := categories[0].ID

	require.NoError(t, app.DeleteCategory.Execute(ctx, target))

	notes, err := app.GetNotes.Execute(ctx)
	require.NoError(t, err)
	assert.Len(t, notes, 10)
	for _, n := range notes {
		assert.NotEqual(t, target, n.CategoryID)
	}
}

func TestApp_NewListViewModel(t *testing.T) {
	ctx := context.Background()
	app := openApp(t,
		platform.WithAdapter(platform.AdapterMemory),
		platform.WithFilter(listing.Filter{ShowArchivedAndCompleted: true, Sort: listing.TitleAscending}),
	)

	vm := app.NewListViewModel()
	require.NoError(t, vm.Load(ctx))

	s := vm.State()
	assert.Len(t, s.Notes, 10)
	assert.Len(t, s.Filtered, 10)
	assert.Equal(t, listing.TitleAscending, s.Filter.Sort)

	override := app.NewListViewModel(listing.WithFilter(listing.Filter{Query: "ideas"}))
	require.NoError(t, override.Load(ctx))
	assert.Equal(t, listing.DateDescending, override.State().Filter.Sort)
	require.Len(t, override.State().Filtered, 2)
	assert.Equal(t, "Project Alpha ideas", override.State().Filtered[0].Title)
}

func TestApp_Watch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store")
	app := openApp(t, platform.WithPath(path), platform.WithSeed(false))

	ctx, cancel := context.WithCancel(context.Background())
	changed := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- app.Watch(ctx, func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
	}()

	// Give the watcher time to register its directories.
	time.Sleep(100 * time.Millisecond)
	body := "---\ntitle: From elsewhere\n---\nhello\n"
	require.NoError(t, os.WriteFile(filepath.Join(path, fs.NotesDir, "external.md"), []byte(body), 0o644))

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	assert.NoError(t, <-done)
}

func TestApp_State(t *testing.T) {
	app := openApp(t, platform.WithPath(filepath.Join(t.TempDir(), "store")))

	state, ok := app.State().(platform.AppState)
	require.True(t, ok)
	assert.Equal(t, "fs", state.Adapter)
	assert.Equal(t, "file_store", state.StoreType)
	assert.True(t, state.Seeded)
	assert.Equal(t, core.RepositoryState{Backend: "fs", Path: app.Path, Records: 10}, state.Notes)
	assert.Equal(t, "quicknotes", app.ComponentType())

	mem := openApp(t, platform.WithAdapter(platform.AdapterMemory))
	memState := mem.State().(platform.AppState)
	assert.Equal(t, "memory", memState.StoreType)
	assert.Nil(t, memState.Store)
}
