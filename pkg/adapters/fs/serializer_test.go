package fs

import (
	"strings"
	"testing"
	"time"

	"github.com/aretw0/quicknotes/pkg/core"
)

func TestMarkdownSerializer(t *testing.T) {
	ts := time.Date(2026, 2, 3, 4, 5, 6, 789, time.UTC)
	s := markdownSerializer{}

	t.Run("Round Trip Keeps Body Verbatim", func(t *testing.T) {
		n := core.Note{
			ID:         "n1",
			Title:      "Multi\n---\nline",
			Content:    "first\n---\nnot: frontmatter\n\n",
			CategoryID: "c1",
			IsArchived: true,
			CreatedAt:  ts,
			ModifiedAt: ts.Add(time.Hour),
		}

		data, err := s.Serialize(n)
		if err != nil {
			t.Fatalf("Serialize failed: %v", err)
		}
		got, err := s.Parse("n1", data)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}

		if got.Title != n.Title {
			t.Errorf("title: got %q, want %q", got.Title, n.Title)
		}
		if got.Content != n.Content {
			t.Errorf("content: got %q, want %q", got.Content, n.Content)
		}
		if got.CategoryID != "c1" || !got.IsArchived || got.IsPinned || got.IsCompleted {
			t.Errorf("flags or category lost: %+v", got)
		}
		if !got.CreatedAt.Equal(n.CreatedAt) || !got.ModifiedAt.Equal(n.ModifiedAt) {
			t.Errorf("timestamps lost: %v %v", got.CreatedAt, got.ModifiedAt)
		}
	})

	t.Run("Empty Content", func(t *testing.T) {
		data, err := s.Serialize(core.Note{ID: "n2", Title: "x", CreatedAt: ts, ModifiedAt: ts})
		if err != nil {
			t.Fatal(err)
		}
		got, err := s.Parse("n2", data)
		if err != nil {
			t.Fatal(err)
		}
		if got.Content != "" {
			t.Errorf("expected empty content, got %q", got.Content)
		}
	})

	t.Run("Writes Readable Header", func(t *testing.T) {
		data, _ := s.Serialize(core.Note{ID: "n3", Title: "Hello", CreatedAt: ts, ModifiedAt: ts})
		if !strings.HasPrefix(string(data), "---\ntitle: Hello\n") {
			t.Errorf("unexpected header:\n%s", data)
		}
	})

	t.Run("Rejects Malformed Files", func(t *testing.T) {
		for name, input := range map[string]string{
			"no frontmatter": "just text",
			"unterminated":   "---\ntitle: x\n",
			"bad yaml":       "---\ntitle: [unclosed\n---\n",
		} {
			if _, err := s.Parse("bad", []byte(input)); err == nil {
				t.Errorf("%s: expected error", name)
			}
		}
	})
}

func TestYAMLSerializer(t *testing.T) {
	ts := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	s := yamlSerializer{}

	c := core.Category{ID: "c1", Name: "Work", Icon: "briefcase.fill", Color: "F59E0B", CreatedAt: ts, ModifiedAt: ts}
	data, err := s.Serialize(c)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if strings.Contains(string(data), "c1") {
		t.Errorf("id must live in the file name, not the body:\n%s", data)
	}

	got, err := s.Parse("c1", data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got.ID != "c1" || got.Name != "Work" || got.Icon != c.Icon || got.Color != c.Color {
		t.Errorf("got %+v", got)
	}
	if !got.CreatedAt.Equal(ts) {
		t.Errorf("created_at: got %v", got.CreatedAt)
	}
}
