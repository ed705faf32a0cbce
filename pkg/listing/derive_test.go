package listing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quicknotes/pkg/core"
	"github.com/aretw0/quicknotes/pkg/listing"
)

var t0 = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

func sample() []core.Note {
	at := func(m int) time.Time { return t0.Add(time.Duration(m) * time.Minute) }
	return []core.Note{
		{ID: "shop", Title: "Shopping List", Content: "Milk, Eggs", CategoryID: "personal", ModifiedAt: at(5)},
		{ID: "meet", Title: "Meeting Notes", Content: "Q4 roadmap", CategoryID: "work", ModifiedAt: at(4)},
		{ID: "pin", Title: "pinned idea", Content: "widgets", CategoryID: "ideas", IsPinned: true, ModifiedAt: at(1)},
		{ID: "arch", Title: "Archived plan", Content: "old shopping", CategoryID: "work", IsArchived: true, ModifiedAt: at(3)},
		{ID: "done", Title: "Done task", CategoryID: "personal", IsCompleted: true, IsPinned: true, ModifiedAt: at(2)},
		{ID: "none", Title: "apple", Content: "", ModifiedAt: at(0)},
	}
}

func ids(notes []core.Note) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.ID)
	}
	return out
}

func TestDerive(t *testing.T) {
	t.Run("Hides Archived And Completed By Default", func(t *testing.T) {
		got := listing.Derive(sample(), listing.Filter{})
		assert.Equal(t, []string{"pin", "shop", "meet", "none"}, ids(got))
	})

	t.Run("Toggle Only Grows The Set", func(t *testing.T) {
		for _, cat := range []string{"", "work", "personal", "ideas", "nope"} {
			hidden := listing.Derive(sample(), listing.Filter{CategoryID: cat})
			shown := listing.Derive(sample(), listing.Filter{CategoryID: cat, ShowArchivedAndCompleted: true})
			assert.GreaterOrEqual(t, len(shown), len(hidden), "category %q", cat)
		}
		assert.Len(t, listing.Derive(sample(), listing.Filter{ShowArchivedAndCompleted: true}), 6)
	})

	t.Run("Category Filter Is Exact", func(t *testing.T) {
		got := listing.Derive(sample(), listing.Filter{CategoryID: "work", ShowArchivedAndCompleted: true})
		require.NotEmpty(t, got)
		for _, n := range got {
			assert.Equal(t, "work", n.CategoryID)
		}
	})

	t.Run("Search", func(t *testing.T) {
		for _, q := range []string{"shop", "SHOP", "  Shop "} {
			got := listing.Derive(sample(), listing.Filter{Query: q})
			assert.Equal(t, []string{"shop"}, ids(got), "query %q", q)
		}

		got := listing.Derive(sample(), listing.Filter{Query: "shop", ShowArchivedAndCompleted: true})
		assert.ElementsMatch(t, []string{"shop", "arch"}, ids(got), "content matches too")

		all := listing.Derive(sample(), listing.Filter{Query: "   "})
		assert.Equal(t, ids(listing.Derive(sample(), listing.Filter{})), ids(all))
	})

	t.Run("Pinned First For Every Order", func(t *testing.T) {
		for _, order := range []listing.SortOrder{listing.DateDescending, listing.DateAscending, listing.TitleAscending, listing.TitleDescending} {
			got := listing.Derive(sample(), listing.Filter{ShowArchivedAndCompleted: true, Sort: order})
			seenUnpinned := false
			for _, n := range got {
				if !n.IsPinned {
					seenUnpinned = true
				} else {
					assert.False(t, seenUnpinned, "%s: pinned note %s after an unpinned one", order, n.ID)
				}
			}
		}
	})

	t.Run("Secondary Order", func(t *testing.T) {
		f := listing.Filter{ShowArchivedAndCompleted: true}

		f.Sort = listing.DateAscending
		assert.Equal(t, []string{"pin", "done", "none", "arch", "meet", "shop"}, ids(listing.Derive(sample(), f)))

		f.Sort = listing.TitleAscending
		assert.Equal(t, []string{"done", "pin", "none", "arch", "meet", "shop"}, ids(listing.Derive(sample(), f)), "case-insensitive title")

		f.Sort = listing.TitleDescending
		assert.Equal(t, []string{"pin", "done", "shop", "meet", "arch", "none"}, ids(listing.Derive(sample(), f)))
	})

	t.Run("Does Not Modify Input", func(t *testing.T) {
		in := sample()
		listing.Derive(in, listing.Filter{Sort: listing.TitleAscending})
		assert.Equal(t, ids(sample()), ids(in))
	})
}

func TestParseSortOrder(t *testing.T) {
	cases := map[string]listing.SortOrder{
		"":           listing.DateDescending,
		"date-desc":  listing.DateDescending,
		"date-asc":   listing.DateAscending,
		"Title-Asc":  listing.TitleAscending,
		"title-desc": listing.TitleDescending,
	}
	for in, want := range cases {
		got, err := listing.ParseSortOrder(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := listing.ParseSortOrder("newest")
	assert.Error(t, err)

	for _, order := range []listing.SortOrder{listing.DateDescending, listing.DateAscending, listing.TitleAscending, listing.TitleDescending} {
		back, err := listing.ParseSortOrder(order.String())
		require.NoError(t, err)
		assert.Equal(t, order, back)
	}
}
