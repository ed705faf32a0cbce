package core

import (
	"cmp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// Category groups notes. Notes point at categories by ID only; a category
// owns no notes.
type Category struct {
	ID         string    `validate:"required"`
	Name       string    `validate:"required"`
	Icon       string    // symbolic icon token, opaque to this layer
	Color      string    // hex-like color token, opaque to this layer
	CreatedAt  time.Time `validate:"required"`
	ModifiedAt time.Time `validate:"required"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func entityValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// NewCategory creates a category with a fresh ID and both timestamps set to now.
func NewCategory(name, icon, color string) Category {
	now := time.Now()
	return Category{
		ID:         NewID(),
		Name:       name,
		Icon:       icon,
		Color:      color,
		CreatedAt:  now,
		ModifiedAt: now,
	}
}

// EnsureIdentity fills in the ID and timestamps if they are not set yet.
func (c Category) EnsureIdentity(now time.Time) Category {
	if c.ID == "" {
		c.ID = NewID()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.ModifiedAt.IsZero() {
		c.ModifiedAt = c.CreatedAt
	}
	return c
}

// Validate checks the structural constraints of the entity.
func (c Category) Validate() error {
	return entityValidator().Struct(c)
}

// CompareCategoryNames orders categories case-insensitively by name, falling
// back to the ID so the order is total.
func CompareCategoryNames(a, b Category) int {
	if c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// SortCategories sorts categories in place by name.
func SortCategories(categories []Category) {
	slices.SortStableFunc(categories, CompareCategoryNames)
}
