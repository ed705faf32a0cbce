package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/aretw0/quicknotes/pkg/core"
)

type noteRow struct {
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	Content     string         `db:"content"`
	CategoryID  sql.NullString `db:"category_id"`
	IsPinned    bool           `db:"is_pinned"`
	IsArchived  bool           `db:"is_archived"`
	IsCompleted bool           `db:"is_completed"`
	CreatedAt   string         `db:"created_at"`
	ModifiedAt  string         `db:"modified_at"`
}

func toNoteRow(n core.Note) (noteRow, error) {
	created, err := formatTimestamp(n.CreatedAt)
	if err != nil {
		return noteRow{}, fmt.Errorf("note %s created_at: %w", n.ID, err)
	}
	modified, err := formatTimestamp(n.ModifiedAt)
	if err != nil {
		return noteRow{}, fmt.Errorf("note %s modified_at: %w", n.ID, err)
	}
	return noteRow{
		ID:          n.ID,
		Title:       n.Title,
		Content:     n.Content,
		CategoryID:  sql.NullString{String: n.CategoryID, Valid: n.CategoryID != ""},
		IsPinned:    n.IsPinned,
		IsArchived:  n.IsArchived,
		IsCompleted: n.IsCompleted,
		CreatedAt:   created,
		ModifiedAt:  modified,
	}, nil
}

func (r noteRow) note() (core.Note, error) {
	created, err := parseTimestamp(r.CreatedAt)
	if err != nil {
		return core.Note{}, fmt.Errorf("note %s: %w", r.ID, err)
	}
	modified, err := parseTimestamp(r.ModifiedAt)
	if err != nil {
		return core.Note{}, fmt.Errorf("note %s: %w", r.ID, err)
	}
	return core.Note{
		ID:          r.ID,
		Title:       r.Title,
		Content:     r.Content,
		CategoryID:  r.CategoryID.String,
		IsPinned:    r.IsPinned,
		IsArchived:  r.IsArchived,
		IsCompleted: r.IsCompleted,
		CreatedAt:   created,
		ModifiedAt:  modified,
	}, nil
}

const noteColumns = `id, title, content, category_id, is_pinned, is_archived, is_completed, created_at, modified_at`

const upsertNote = `
INSERT INTO notes (` + noteColumns + `)
VALUES (:id, :title, :content, :category_id, :is_pinned, :is_archived, :is_completed, :created_at, :modified_at)
ON CONFLICT (id) DO UPDATE SET
	title        = excluded.title,
	content      = excluded.content,
	category_id  = excluded.category_id,
	is_pinned    = excluded.is_pinned,
	is_archived  = excluded.is_archived,
	is_completed = excluded.is_completed,
	created_at   = excluded.created_at,
	modified_at  = excluded.modified_at`

// NoteRepository is a core.NoteRepository over a DB.
type NoteRepository struct {
	db *DB
}

// FetchAll returns every note, most recently modified first, with categories resolved.
func (r *NoteRepository) FetchAll(ctx context.Context) ([]core.Note, error) {
	var rows []noteRow
	query := `SELECT ` + noteColumns + ` FROM notes ORDER BY modified_at DESC, rowid DESC`
	if err := r.db.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, core.NewStorageError("fetch notes", fmt.Errorf("failed to select notes: %w", err))
	}

	categories, err := r.db.Categories().FetchAll(ctx)
	if err != nil {
		return nil, core.NewStorageError("fetch notes", err)
	}

	notes := make([]core.Note, 0, len(rows))
	for _, row := range rows {
		n, err := row.note()
		if err != nil {
			return nil, core.NewStorageError("fetch notes", err)
		}
		notes = append(notes, n)
	}
	return core.ResolveCategories(notes, categories), nil
}

// FetchOne returns the note with the given ID, or nil if there is none.
func (r *NoteRepository) FetchOne(ctx context.Context, id string) (*core.Note, error) {
	var row noteRow
	query := `SELECT ` + noteColumns + ` FROM notes WHERE id = ?`
	err := r.db.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, core.NewStorageError("fetch note", fmt.Errorf("failed to select note %s: %w", id, err))
	}

	note, err := row.note()
	if err != nil {
		return nil, core.NewStorageError("fetch note", err)
	}
	categories, err := r.db.Categories().FetchAll(ctx)
	if err != nil {
		return nil, core.NewStorageError("fetch note", err)
	}
	n := core.ResolveCategories([]core.Note{note}, categories)[0]
	return &n, nil
}

// Save inserts the note or replaces the stored one.
func (r *NoteRepository) Save(ctx context.Context, n core.Note) error {
	row, err := toNoteRow(n)
	if err != nil {
		return core.NewStorageError("save note", err)
	}
	err = r.db.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.NamedExecContext(ctx, upsertNote, row); err != nil {
			return fmt.Errorf("failed to upsert note %s: %w", n.ID, err)
		}
		return nil
	})
	return core.NewStorageError("save note", err)
}

// Delete removes the note with the given ID.
func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	err := r.db.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete note %s: %w", id, err)
		}
		return nil
	})
	return core.NewStorageError("delete note", err)
}

var _ core.NoteRepository = (*NoteRepository)(nil)
