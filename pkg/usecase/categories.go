package usecase

import (
	"context"

	"github.com/aretw0/quicknotes/pkg/core"
)

// GetCategories lists every category sorted by name.
type GetCategories struct {
	categories core.CategoryRepository
}

func NewGetCategories(categories core.CategoryRepository) *GetCategories {
	return &GetCategories{categories: categories}
}

func (uc *GetCategories) Execute(ctx context.Context) ([]core.Category, error) {
	return uc.categories.FetchAll(ctx)
}

// AddCategory stores a new category.
type AddCategory struct {
	categories core.CategoryRepository
	cfg        config
}

func NewAddCategory(categories core.CategoryRepository, opts ...Option) *AddCategory {
	return &AddCategory{categories: categories, cfg: newConfig(opts)}
}

// Execute assigns an ID and timestamps if they are missing and returns the
// stored value.
func (uc *AddCategory) Execute(ctx context.Context, c core.Category) (core.Category, error) {
	c = c.EnsureIdentity(uc.cfg.now())
	if err := uc.categories.Add(ctx, c); err != nil {
		return core.Category{}, err
	}
	return c, nil
}

// UpdateCategory replaces a stored category.
type UpdateCategory struct {
	categories core.CategoryRepository
}

func NewUpdateCategory(categories core.CategoryRepository) *UpdateCategory {
	return &UpdateCategory{categories: categories}
}

func (uc *UpdateCategory) Execute(ctx context.Context, c core.Category) error {
	return uc.categories.Update(ctx, c)
}

// DeleteCategory removes a category after unassigning every note that
// references it.
type DeleteCategory struct {
	getNotes   *GetNotes
	saveNote   *SaveNote
	categories core.CategoryRepository
	cfg        config
}

func NewDeleteCategory(getNotes *GetNotes, saveNote *SaveNote, categories core.CategoryRepository, opts ...Option) *DeleteCategory {
	return &DeleteCategory{
		getNotes:   getNotes,
		saveNote:   saveNote,
		categories: categories,
		cfg:        newConfig(opts),
	}
}

// Execute rewrites the affected notes one by one and deletes the category
// only when all of them were saved. On the first failed rewrite it returns
// that error and the category stays. A retry is safe.
func (uc *DeleteCategory) Execute(ctx context.Context, id string) error {
	notes, err := uc.getNotes.Execute(ctx)
	if err != nil {
		return err
	}

	now := uc.cfg.now()
	unassigned := 0
	for _, n := range notes {
		if n.CategoryID != id {
			continue
		}
		if _, err := uc.saveNote.Execute(ctx, n.WithCategory("", now)); err != nil {
			uc.cfg.logger.Debug("category delete aborted", "category", id, "note", n.ID, "error", err)
			return err
		}
		unassigned++
	}

	if err := uc.categories.Delete(ctx, id); err != nil {
		return err
	}
	uc.cfg.logger.Debug("category deleted", "category", id, "unassigned_notes", unassigned)
	return nil
}
