package memory

import (
	"github.com/aretw0/quicknotes/pkg/core"
)

type options struct {
	notes      []core.Note
	categories []core.Category
	resolver   core.CategoryRepository
	seed       bool
}

// Option configures an in-memory repository.
type Option func(*options)

func defaultOptions() options {
	return options{seed: true}
}

// WithNotes sets the initial notes of a NoteRepository.
func WithNotes(notes ...core.Note) Option {
	return func(o *options) {
		o.notes = append(o.notes, notes...)
	}
}

// WithCategories sets the initial categories of a CategoryRepository.
func WithCategories(categories ...core.Category) Option {
	return func(o *options) {
		o.categories = append(o.categories, categories...)
	}
}

// WithResolver makes the NoteRepository attach categories from repo at read time.
func WithResolver(repo core.CategoryRepository) Option {
	return func(o *options) {
		o.resolver = repo
	}
}

// WithoutSeed keeps a repository empty when no initial records are given.
func WithoutSeed() Option {
	return func(o *options) {
		o.seed = false
	}
}
