package core

import "time"

// UserProfile is a read-only aggregate rebuilt on every load.
// It is never persisted.
type UserProfile struct {
	DisplayName     string
	Email           string
	JoinedAt        time.Time
	NotesCount      int
	CategoriesCount int
}
