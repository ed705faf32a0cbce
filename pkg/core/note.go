package core

import (
	"time"

	"github.com/google/uuid"
)

// Note is the central entity of the domain.
// It is a value: every mutator returns a copy with the same ID and CreatedAt
// and a refreshed ModifiedAt.
type Note struct {
	ID      string
	Title   string
	Content string

	// CategoryID is a weak reference to a Category. Empty means no category.
	CategoryID string
	// Category is resolved from CategoryID at read time. It is nil when the
	// note has no category or the category no longer exists.
	Category *Category

	IsPinned    bool
	IsArchived  bool
	IsCompleted bool

	CreatedAt  time.Time
	ModifiedAt time.Time
}

// NewID returns a fresh opaque identifier.
func NewID() string {
	return uuid.NewString()
}

// NewNote creates a note with a fresh ID and both timestamps set to now.
func NewNote(title, content, categoryID string) Note {
	now := time.Now()
	return Note{
		ID:         NewID(),
		Title:      title,
		Content:    content,
		CategoryID: categoryID,
		CreatedAt:  now,
		ModifiedAt: now,
	}
}

// EnsureIdentity fills in the ID and timestamps if they are not set yet.
func (n Note) EnsureIdentity(now time.Time) Note {
	if n.ID == "" {
		n.ID = NewID()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = now
	}
	if n.ModifiedAt.IsZero() {
		n.ModifiedAt = n.CreatedAt
	}
	return n
}

// Touch returns a copy whose ModifiedAt is at, or one nanosecond after the
// previous ModifiedAt when at is not strictly later.
func (n Note) Touch(at time.Time) Note {
	if !at.After(n.ModifiedAt) {
		at = n.ModifiedAt.Add(time.Nanosecond)
	}
	n.ModifiedAt = at
	return n
}

// WithTitle returns a copy with a new title.
func (n Note) WithTitle(title string, at time.Time) Note {
	n.Title = title
	return n.Touch(at)
}

// WithContent returns a copy with new content.
func (n Note) WithContent(content string, at time.Time) Note {
	n.Content = content
	return n.Touch(at)
}

// WithCategory returns a copy referencing categoryID. An empty id clears the
// reference.
func (n Note) WithCategory(categoryID string, at time.Time) Note {
	n.CategoryID = categoryID
	n.Category = nil
	return n.Touch(at)
}

// WithPinned returns a copy with the pinned flag set to pinned.
func (n Note) WithPinned(pinned bool, at time.Time) Note {
	n.IsPinned = pinned
	return n.Touch(at)
}

// WithArchived returns a copy with the archived flag set to archived.
func (n Note) WithArchived(archived bool, at time.Time) Note {
	n.IsArchived = archived
	return n.Touch(at)
}

// WithCompleted returns a copy with the completed flag set to completed.
func (n Note) WithCompleted(completed bool, at time.Time) Note {
	n.IsCompleted = completed
	return n.Touch(at)
}

// IsHidden reports whether the note is archived or completed.
func (n Note) IsHidden() bool {
	return n.IsArchived || n.IsCompleted
}
