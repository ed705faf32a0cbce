package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/introspection"

	"github.com/aretw0/quicknotes/pkg/core"
	"github.com/aretw0/quicknotes/pkg/seed"
)

// CategoryRepository is an in-memory core.CategoryRepository.
type CategoryRepository struct {
	mu         sync.Mutex
	categories []core.Category
}

// NewCategoryRepository creates a category repository. Without initial
// categories it is filled with the default ones unless WithoutSeed is given.
func NewCategoryRepository(opts ...Option) *CategoryRepository {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	categories := slices.Clone(o.categories)
	if len(categories) == 0 && o.seed {
		categories = seed.Categories(time.Now())
	}

	return &CategoryRepository{categories: categories}
}

// FetchAll returns every category sorted by name.
func (r *CategoryRepository) FetchAll(ctx context.Context) ([]core.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := slices.Clone(r.categories)
	core.SortCategories(out)
	return out, nil
}

// FetchOne returns the category with the given ID, or nil if there is none.
func (r *CategoryRepository) FetchOne(ctx context.Context, id string) (*core.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := core.CategoryIndex(r.categories, id)
	if i < 0 {
		return nil, nil
	}
	c := r.categories[i]
	return &c, nil
}

// Add appends c. Its ID must not be in use.
func (r *CategoryRepository) Add(ctx context.Context, c core.Category) error {
	if err := c.Validate(); err != nil {
		return core.NewStorageError("add category", fmt.Errorf("%w: %v", core.ErrInvalidCategory, err))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if core.CategoryIndex(r.categories, c.ID) >= 0 {
		return core.NewStorageError("add category", fmt.Errorf("%w: %s", core.ErrCategoryExists, c.ID))
	}
	r.categories = append(r.categories, c)
	return nil
}

// Update replaces the stored category with the same ID.
func (r *CategoryRepository) Update(ctx context.Context, c core.Category) error {
	if err := c.Validate(); err != nil {
		return core.NewStorageError("update category", fmt.Errorf("%w: %v", core.ErrInvalidCategory, err))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if i := core.CategoryIndex(r.categories, c.ID); i >= 0 {
		r.categories[i] = c
	}
	return nil
}

// Delete removes the category with the given ID.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.categories = slices.DeleteFunc(r.categories, func(c core.Category) bool { return c.ID == id })
	return nil
}

// State implements introspection.Introspectable.
func (r *CategoryRepository) State() any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return core.RepositoryState{Backend: "memory", Records: len(r.categories)}
}

// ComponentType implements introspection.Component.
func (r *CategoryRepository) ComponentType() string {
	return "category_repository"
}

var (
	_ core.CategoryRepository      = (*CategoryRepository)(nil)
	_ introspection.Introspectable = (*CategoryRepository)(nil)
	_ introspection.Component      = (*CategoryRepository)(nil)
)
