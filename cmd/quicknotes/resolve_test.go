package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quicknotes/pkg/core"
)

func TestFindNote(t *testing.T) {
	notes := []core.Note{{ID: "abc123"}, {ID: "abd456"}, {ID: "abc"}}

	n, err := findNote(notes, "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", n.ID, "exact match wins over prefix")

	n, err = findNote(notes, "abd")
	require.NoError(t, err)
	assert.Equal(t, "abd456", n.ID)

	_, err = findNote(notes, "ab")
	assert.ErrorContains(t, err, "matches 3 notes")

	_, err = findNote(notes, "zzz")
	assert.ErrorContains(t, err, "no note")

	for _, ref := range []string{"", "  "} {
		_, err = findNote([]core.Note{{ID: "only"}}, ref)
		assert.ErrorIs(t, err, errEmptyRef, "a blank reference never selects a note")
	}
}

func TestFindCategory(t *testing.T) {
	categories := []core.Category{{ID: "c1-work", Name: "Work"}, {ID: "c2-home", Name: "Personal"}}

	c, err := findCategory(categories, "c2")
	require.NoError(t, err)
	assert.Equal(t, "Personal", c.Name)

	c, err = findCategory(categories, "work")
	require.NoError(t, err)
	assert.Equal(t, "c1-work", c.ID)

	_, err = findCategory(categories, "c")
	assert.Error(t, err)

	_, err = findCategory(categories, "Ideas")
	assert.Error(t, err)

	_, err = findCategory(categories[:1], "")
	assert.ErrorIs(t, err, errEmptyRef)
}

func TestFormatNote(t *testing.T) {
	n := core.Note{
		ID:       "0123456789abcdef",
		Title:    "Groceries",
		IsPinned: true,
		Category: &core.Category{Name: "Personal"},
	}
	assert.Equal(t, "01234567  P--  Groceries  [Personal]", formatNote(n))

	n = core.Note{ID: "x", Title: "Old", IsArchived: true, IsCompleted: true}
	assert.Equal(t, "x  -AC  Old", formatNote(n))
}
