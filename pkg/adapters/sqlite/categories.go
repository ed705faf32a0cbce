package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/aretw0/quicknotes/pkg/core"
)

type categoryRow struct {
	ID         string `db:"id"`
	Name       string `db:"name"`
	Icon       string `db:"icon"`
	Color      string `db:"color"`
	CreatedAt  string `db:"created_at"`
	ModifiedAt string `db:"modified_at"`
}

func toCategoryRow(c core.Category) (categoryRow, error) {
	created, err := formatTimestamp(c.CreatedAt)
	if err != nil {
		return categoryRow{}, fmt.Errorf("category %s created_at: %w", c.ID, err)
	}
	modified, err := formatTimestamp(c.ModifiedAt)
	if err != nil {
		return categoryRow{}, fmt.Errorf("category %s modified_at: %w", c.ID, err)
	}
	return categoryRow{
		ID:         c.ID,
		Name:       c.Name,
		Icon:       c.Icon,
		Color:      c.Color,
		CreatedAt:  created,
		ModifiedAt: modified,
	}, nil
}

func (r categoryRow) category() (core.Category, error) {
	created, err := parseTimestamp(r.CreatedAt)
	if err != nil {
		return core.Category{}, fmt.Errorf("category %s: %w", r.ID, err)
	}
	modified, err := parseTimestamp(r.ModifiedAt)
	if err != nil {
		return core.Category{}, fmt.Errorf("category %s: %w", r.ID, err)
	}
	return core.Category{
		ID:         r.ID,
		Name:       r.Name,
		Icon:       r.Icon,
		Color:      r.Color,
		CreatedAt:  created,
		ModifiedAt: modified,
	}, nil
}

const categoryColumns = `id, name, icon, color, created_at, modified_at`

// CategoryRepository is a core.CategoryRepository over a DB.
type CategoryRepository struct {
	db *DB
}

// FetchAll returns every category sorted by name.
func (r *CategoryRepository) FetchAll(ctx context.Context) ([]core.Category, error) {
	var rows []categoryRow
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY name COLLATE NOCASE, id`
	if err := r.db.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, core.NewStorageError("fetch categories", fmt.Errorf("failed to select categories: %w", err))
	}

	out := make([]core.Category, 0, len(rows))
	for _, row := range rows {
		c, err := row.category()
		if err != nil {
			return nil, core.NewStorageError("fetch categories", err)
		}
		out = append(out, c)
	}
	// NOCASE only folds ASCII.
	core.SortCategories(out)
	return out, nil
}

// FetchOne returns the category with the given ID, or nil if there is none.
func (r *CategoryRepository) FetchOne(ctx context.Context, id string) (*core.Category, error) {
	var row categoryRow
	err := r.db.db.GetContext(ctx, &row, `SELECT `+categoryColumns+` FROM categories WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, core.NewStorageError("fetch category", fmt.Errorf("failed to select category %s: %w", id, err))
	}
	c, err := row.category()
	if err != nil {
		return nil, core.NewStorageError("fetch category", err)
	}
	return &c, nil
}

// Add inserts a new category. It fails if the ID is taken.
func (r *CategoryRepository) Add(ctx context.Context, c core.Category) error {
	if err := c.Validate(); err != nil {
		return core.NewStorageError("add category", fmt.Errorf("%w: %v", core.ErrInvalidCategory, err))
	}
	row, err := toCategoryRow(c)
	if err != nil {
		return core.NewStorageError("add category", err)
	}

	err = r.db.inTx(ctx, func(tx *sqlx.Tx) error {
		var n int
		if err := tx.GetContext(ctx, &n, `SELECT COUNT(*) FROM categories WHERE id = ?`, c.ID); err != nil {
			return fmt.Errorf("failed to check category %s: %w", c.ID, err)
		}
		if n > 0 {
			return fmt.Errorf("%w: %s", core.ErrCategoryExists, c.ID)
		}

		query := `INSERT INTO categories (` + categoryColumns + `)
			VALUES (:id, :name, :icon, :color, :created_at, :modified_at)`
		if _, err := tx.NamedExecContext(ctx, query, row); err != nil {
			return fmt.Errorf("failed to insert category %s: %w", c.ID, err)
		}
		return nil
	})
	return core.NewStorageError("add category", err)
}

// Update replaces the stored category with the same ID. Unknown IDs are ignored.
func (r *CategoryRepository) Update(ctx context.Context, c core.Category) error {
	if err := c.Validate(); err != nil {
		return core.NewStorageError("update category", fmt.Errorf("%w: %v", core.ErrInvalidCategory, err))
	}
	row, err := toCategoryRow(c)
	if err != nil {
		return core.NewStorageError("update category", err)
	}

	err = r.db.inTx(ctx, func(tx *sqlx.Tx) error {
		query := `UPDATE categories
			SET name = :name, icon = :icon, color = :color, created_at = :created_at, modified_at = :modified_at
			WHERE id = :id`
		if _, err := tx.NamedExecContext(ctx, query, row); err != nil {
			return fmt.Errorf("failed to update category %s: %w", c.ID, err)
		}
		return nil
	})
	return core.NewStorageError("update category", err)
}

// Delete removes the category with the given ID. Notes keep their reference.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	err := r.db.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete category %s: %w", id, err)
		}
		return nil
	})
	return core.NewStorageError("delete category", err)
}

var _ core.CategoryRepository = (*CategoryRepository)(nil)
