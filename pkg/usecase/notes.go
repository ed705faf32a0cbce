package usecase

import (
	"context"
	"strings"

	"github.com/aretw0/quicknotes/pkg/core"
)

// GetNotes lists every note, most recently modified first.
type GetNotes struct {
	notes core.NoteRepository
}

func NewGetNotes(notes core.NoteRepository) *GetNotes {
	return &GetNotes{notes: notes}
}

func (uc *GetNotes) Execute(ctx context.Context) ([]core.Note, error) {
	return uc.notes.FetchAll(ctx)
}

// GetNote returns a single note, or nil when it does not exist.
type GetNote struct {
	notes core.NoteRepository
}

func NewGetNote(notes core.NoteRepository) *GetNote {
	return &GetNote{notes: notes}
}

func (uc *GetNote) Execute(ctx context.Context, id string) (*core.Note, error) {
	return uc.notes.FetchOne(ctx, id)
}

// SaveNote validates and upserts a note.
type SaveNote struct {
	notes core.NoteRepository
	cfg   config
}

func NewSaveNote(notes core.NoteRepository, opts ...Option) *SaveNote {
	return &SaveNote{notes: notes, cfg: newConfig(opts)}
}

// Execute rejects a blank title before touching the repository. A note
// without ID or timestamps gets them assigned. It returns the stored value.
func (uc *SaveNote) Execute(ctx context.Context, n core.Note) (core.Note, error) {
	if strings.TrimSpace(n.Title) == "" {
		return core.Note{}, &core.ValidationError{Field: "title", Err: core.ErrEmptyTitle}
	}

	n = n.EnsureIdentity(uc.cfg.now())
	if err := uc.notes.Save(ctx, n); err != nil {
		return core.Note{}, err
	}
	return n, nil
}

// DeleteNote removes a note.
type DeleteNote struct {
	notes core.NoteRepository
}

func NewDeleteNote(notes core.NoteRepository) *DeleteNote {
	return &DeleteNote{notes: notes}
}

func (uc *DeleteNote) Execute(ctx context.Context, id string) error {
	return uc.notes.Delete(ctx, id)
}
