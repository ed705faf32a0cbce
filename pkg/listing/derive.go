// Package listing derives the note list shown to the user from raw note
// state: filtering, search and ordering.
package listing

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/quicknotes/pkg/core"
)

// SortOrder is the secondary key of the derived list. Pinned notes always
// come first.
type SortOrder int

const (
	DateDescending SortOrder = iota
	DateAscending
	TitleAscending
	TitleDescending
)

var sortOrderNames = map[SortOrder]string{
	DateDescending:  "date-desc",
	DateAscending:   "date-asc",
	TitleAscending:  "title-asc",
	TitleDescending: "title-desc",
}

func (s SortOrder) String() string {
	if name, ok := sortOrderNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SortOrder(%d)", int(s))
}

// ParseSortOrder accepts the names produced by SortOrder.String. An empty
// string means DateDescending.
func ParseSortOrder(s string) (SortOrder, error) {
	if s == "" {
		return DateDescending, nil
	}
	for order, name := range sortOrderNames {
		if strings.EqualFold(name, s) {
			return order, nil
		}
	}
	return 0, fmt.Errorf("unknown sort order %q (want date-desc, date-asc, title-asc or title-desc)", s)
}

// Compare orders two notes by s alone, without the pinned rule.
func (s SortOrder) Compare(a, b core.Note) int {
	switch s {
	case DateAscending:
		return a.ModifiedAt.Compare(b.ModifiedAt)
	case TitleAscending:
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	case TitleDescending:
		return strings.Compare(strings.ToLower(b.Title), strings.ToLower(a.Title))
	default:
		return b.ModifiedAt.Compare(a.ModifiedAt)
	}
}

// Sort sorts notes in place by s. Equal notes keep their order.
func (s SortOrder) Sort(notes []core.Note) {
	slices.SortStableFunc(notes, s.Compare)
}

// Filter is every input of the derived list besides the notes themselves.
type Filter struct {
	CategoryID               string // empty means all categories
	ShowArchivedAndCompleted bool
	Query                    string
	Sort                     SortOrder
}

// Derive returns the visible notes for f. It does not modify notes.
func Derive(notes []core.Note, f Filter) []core.Note {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]core.Note, 0, len(notes))
	for _, n := range notes {
		if !f.ShowArchivedAndCompleted && n.IsHidden() {
			continue
		}
		if f.CategoryID != "" && n.CategoryID != f.CategoryID {
			continue
		}
		if query != "" && !matches(n, query) {
			continue
		}
		out = append(out, n)
	}

	slices.SortStableFunc(out, func(a, b core.Note) int {
		if a.IsPinned != b.IsPinned {
			if a.IsPinned {
				return -1
			}
			return 1
		}
		return f.Sort.Compare(a, b)
	})
	return out
}

// matches reports whether the lowercased query occurs in the title or content.
func matches(n core.Note, query string) bool {
	return strings.Contains(strings.ToLower(n.Title), query) ||
		strings.Contains(strings.ToLower(n.Content), query)
}
