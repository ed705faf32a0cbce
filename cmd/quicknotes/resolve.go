package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/quicknotes/pkg/core"
)

const shortIDLen = 8

var errEmptyRef = errors.New("empty reference")

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

// findNote matches ref against note IDs, exactly or as a unique prefix.
func findNote(notes []core.Note, ref string) (core.Note, error) {
	if strings.TrimSpace(ref) == "" {
		return core.Note{}, fmt.Errorf("note: %w", errEmptyRef)
	}
	var matches []core.Note
	for _, n := range notes {
		if n.ID == ref {
			return n, nil
		}
		if strings.HasPrefix(n.ID, ref) {
			matches = append(matches, n)
		}
	}
	switch len(matches) {
	case 0:
		return core.Note{}, fmt.Errorf("no note matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		return core.Note{}, fmt.Errorf("%q matches %d notes", ref, len(matches))
	}
}

// findCategory matches ref against category IDs (exact or unique prefix)
// and, failing that, names (case-insensitive).
func findCategory(categories []core.Category, ref string) (core.Category, error) {
	if strings.TrimSpace(ref) == "" {
		return core.Category{}, fmt.Errorf("category: %w", errEmptyRef)
	}
	var matches []core.Category
	for _, c := range categories {
		if c.ID == ref {
			return c, nil
		}
		if strings.HasPrefix(c.ID, ref) {
			matches = append(matches, c)
		}
	}
	if len(matches) == 1 {
		return matches[0], nil
	}
	if len(matches) > 1 {
		return core.Category{}, fmt.Errorf("%q matches %d categories", ref, len(matches))
	}
	for _, c := range categories {
		if strings.EqualFold(c.Name, ref) {
			return c, nil
		}
	}
	return core.Category{}, fmt.Errorf("no category matches %q", ref)
}

// formatNote renders one list line: short ID, flags, title and category.
func formatNote(n core.Note) string {
	flags := []byte("---")
	if n.IsPinned {
		flags[0] = 'P'
	}
	if n.IsArchived {
		flags[1] = 'A'
	}
	if n.IsCompleted {
		flags[2] = 'C'
	}
	line := fmt.Sprintf("%s  %s  %s", shortID(n.ID), flags, n.Title)
	if n.Category != nil {
		line += fmt.Sprintf("  [%s]", n.Category.Name)
	}
	return line
}
