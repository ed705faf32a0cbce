package listing

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/quicknotes/pkg/core"
)

// Status is the activity state of a ViewModel.
type Status int

const (
	Idle Status = iota
	Loading
)

func (s Status) String() string {
	if s == Loading {
		return "loading"
	}
	return "idle"
}

// State is a snapshot of a ViewModel.
type State struct {
	Notes    []core.Note // every fetched note, in load order
	Filtered []core.Note // Derive(Notes, Filter)
	Filter   Filter
	Status   Status
	Err      string // last failure, empty when none
}

// NotesGetter fetches every note.
type NotesGetter interface {
	Execute(ctx context.Context) ([]core.Note, error)
}

// NoteSaver persists a note.
type NoteSaver interface {
	Execute(ctx context.Context, n core.Note) (core.Note, error)
}

// NoteDeleter removes a note.
type NoteDeleter interface {
	Execute(ctx context.Context, id string) error
}

// Option configures a ViewModel.
type Option func(*ViewModel)

// WithLoadOrder sets the order applied to fetched notes before they are kept.
// It does not affect the derived list.
func WithLoadOrder(order SortOrder) Option {
	return func(vm *ViewModel) { vm.loadOrder = order }
}

// WithFilter sets the initial filter.
func WithFilter(f Filter) Option {
	return func(vm *ViewModel) { vm.state.Filter = f }
}

// WithClock replaces time.Now for stamping toggles.
func WithClock(now func() time.Time) Option {
	return func(vm *ViewModel) { vm.now = now }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(vm *ViewModel) { vm.logger = logger }
}

// WithObserver registers fn to receive a snapshot after every state change.
func WithObserver(fn func(State)) Option {
	return func(vm *ViewModel) { vm.observers = append(vm.observers, fn) }
}

// ViewModel owns the list state and turns user actions into use case calls.
//
// Every action goes idle -> loading -> idle. Starting an action clears Err;
// on failure Err is set and the previous data stays. Concurrent actions are
// not coalesced; the last one to finish wins.
type ViewModel struct {
	getNotes   NotesGetter
	saveNote   NoteSaver
	deleteNote NoteDeleter

	loadOrder SortOrder
	now       func() time.Time
	logger    *slog.Logger
	observers []func(State)

	mu    sync.Mutex
	state State
}

// NewViewModel creates a ViewModel. Call Load to populate it.
func NewViewModel(get NotesGetter, save NoteSaver, del NoteDeleter, opts ...Option) *ViewModel {
	vm := &ViewModel{
		getNotes:   get,
		saveNote:   save,
		deleteNote: del,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(vm)
	}
	if vm.logger == nil {
		vm.logger = slog.New(slog.DiscardHandler)
	}
	vm.state.Filtered = Derive(nil, vm.state.Filter)
	return vm
}

// State returns a copy of the current state.
func (vm *ViewModel) State() State {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.snapshot()
}

// Load fetches every note.
func (vm *ViewModel) Load(ctx context.Context) error {
	return vm.run(ctx, "load", nil)
}

// Add creates a note and reloads.
func (vm *ViewModel) Add(ctx context.Context, title, content, categoryID string) error {
	return vm.run(ctx, "add", func(ctx context.Context) error {
		n := core.Note{Title: title, Content: content, CategoryID: categoryID}.EnsureIdentity(vm.now())
		_, err := vm.saveNote.Execute(ctx, n)
		return err
	})
}

// Delete removes a note and reloads.
func (vm *ViewModel) Delete(ctx context.Context, id string) error {
	return vm.run(ctx, "delete", func(ctx context.Context) error {
		return vm.deleteNote.Execute(ctx, id)
	})
}

// TogglePin flips the pinned flag of a loaded note.
func (vm *ViewModel) TogglePin(ctx context.Context, id string) error {
	return vm.toggle(ctx, "toggle pin", id, func(n core.Note, at time.Time) core.Note {
		return n.WithPinned(!n.IsPinned, at)
	})
}

// ToggleArchive flips the archived flag of a loaded note.
func (vm *ViewModel) ToggleArchive(ctx context.Context, id string) error {
	return vm.toggle(ctx, "toggle archive", id, func(n core.Note, at time.Time) core.Note {
		return n.WithArchived(!n.IsArchived, at)
	})
}

// ToggleComplete flips the completed flag of a loaded note.
func (vm *ViewModel) ToggleComplete(ctx context.Context, id string) error {
	return vm.toggle(ctx, "toggle complete", id, func(n core.Note, at time.Time) core.Note {
		return n.WithCompleted(!n.IsCompleted, at)
	})
}

// SetCategoryFilter limits the list to one category. Empty shows all.
func (vm *ViewModel) SetCategoryFilter(categoryID string) {
	vm.update(func(f *Filter) { f.CategoryID = categoryID })
}

// SetShowArchivedAndCompleted toggles the visibility of hidden notes.
func (vm *ViewModel) SetShowArchivedAndCompleted(show bool) {
	vm.update(func(f *Filter) { f.ShowArchivedAndCompleted = show })
}

// SetSearchQuery sets the free text search.
func (vm *ViewModel) SetSearchQuery(query string) {
	vm.update(func(f *Filter) { f.Query = query })
}

// SetSortOrder sets the order of the derived list.
func (vm *ViewModel) SetSortOrder(order SortOrder) {
	vm.update(func(f *Filter) { f.Sort = order })
}

// DismissError clears the last error.
func (vm *ViewModel) DismissError() {
	vm.mu.Lock()
	vm.state.Err = ""
	s := vm.snapshot()
	vm.mu.Unlock()
	vm.notify(s)
}

func (vm *ViewModel) toggle(ctx context.Context, op, id string, change func(core.Note, time.Time) core.Note) error {
	return vm.run(ctx, op, func(ctx context.Context) error {
		vm.mu.Lock()
		i := core.NoteIndex(vm.state.Notes, id)
		var n core.Note
		if i >= 0 {
			n = vm.state.Notes[i]
		}
		vm.mu.Unlock()

		if i < 0 {
			return fmt.Errorf("note %s is not loaded", id)
		}
		_, err := vm.saveNote.Execute(ctx, change(n, vm.now()))
		return err
	})
}

// run performs mutate (if any) and a reload, driving the status and error.
func (vm *ViewModel) run(ctx context.Context, op string, mutate func(context.Context) error) error {
	vm.begin()

	err := func() error {
		if mutate != nil {
			if err := mutate(ctx); err != nil {
				return err
			}
		}
		notes, err := vm.getNotes.Execute(ctx)
		if err != nil {
			return err
		}
		notes = slices.Clone(notes)
		vm.loadOrder.Sort(notes)

		vm.mu.Lock()
		vm.state.Notes = notes
		vm.state.Filtered = Derive(notes, vm.state.Filter)
		vm.mu.Unlock()
		return nil
	}()

	vm.mu.Lock()
	vm.state.Status = Idle
	if err != nil {
		vm.state.Err = err.Error()
	}
	s := vm.snapshot()
	vm.mu.Unlock()

	if err != nil {
		vm.logger.Debug("list action failed", "op", op, "error", err)
	}
	vm.notify(s)
	return err
}

func (vm *ViewModel) begin() {
	vm.mu.Lock()
	vm.state.Status = Loading
	vm.state.Err = ""
	s := vm.snapshot()
	vm.mu.Unlock()
	vm.notify(s)
}

func (vm *ViewModel) update(change func(*Filter)) {
	vm.mu.Lock()
	change(&vm.state.Filter)
	vm.state.Filtered = Derive(vm.state.Notes, vm.state.Filter)
	s := vm.snapshot()
	vm.mu.Unlock()
	vm.notify(s)
}

// snapshot copies the state. Callers hold vm.mu.
func (vm *ViewModel) snapshot() State {
	s := vm.state
	s.Notes = slices.Clone(vm.state.Notes)
	s.Filtered = slices.Clone(vm.state.Filtered)
	return s
}

func (vm *ViewModel) notify(s State) {
	for _, fn := range vm.observers {
		fn(s)
	}
}
