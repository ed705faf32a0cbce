// Package seed holds the fixed sample data used when no other data exists.
package seed

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/quicknotes/pkg/core"
)

type categorySpec struct {
	name  string
	icon  string
	color string
}

type noteSpec struct {
	title    string
	content  string
	category string // category name, resolved by lookup
}

var defaultCategories = []categorySpec{
	{"Work", "briefcase.fill", "F59E0B"},
	{"Personal", "person.fill", "3B82F6"},
	{"Ideas", "lightbulb.fill", "10B981"},
}

var defaultNotes = []noteSpec{
	{"Welcome to QuickNotes", "This is your first note. Tap + to create more!", ""},
	{"Shopping List", "Milk, Eggs, Bread, Butter", "Personal"},
	{"Meeting Notes", "Discuss Q4 roadmap with the team.", "Work"},
	{"Project Alpha ideas", "Consider dark mode, widgets, and offline sync.", "Ideas"},
	{"Weekly standup", "• Backend API on track\n• Design review Thursday\n• Deploy to staging Friday", "Work"},
	{"Books to read", "1. Deep Work\n2. Atomic Habits\n3. The Pragmatic Programmer", "Personal"},
	{"Feature brainstorm", "Tags, reminders, rich text, export to PDF.", "Ideas"},
	{"Vacation packing", "Passport, charger, adapters, meds, sunscreen.", "Personal"},
	{"Sprint retrospective", "What went well: shipping on time. Improve: earlier QA involvement.", "Work"},
	{"App name ideas", "NoteFlow, QuickJot, MemoBox, Scribble.", "Ideas"},
}

// stableID derives a deterministic identifier so independently seeded stores
// agree on the IDs of the sample records.
func stableID(kind, name string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("quicknotes://"+kind+"/"+name)).String()
}

// Categories returns the default categories stamped with now.
func Categories(now time.Time) []core.Category {
	out := make([]core.Category, 0, len(defaultCategories))
	for _, s := range defaultCategories {
		out = append(out, core.Category{
			ID:         stableID("category", s.name),
			Name:       s.name,
			Icon:       s.icon,
			Color:      s.color,
			CreatedAt:  now,
			ModifiedAt: now,
		})
	}
	return out
}

// Notes returns the default notes. Category references are resolved by name
// against categories; a name with no match leaves the note uncategorized.
// Notes are stamped one minute apart, newest first.
func Notes(categories []core.Category, now time.Time) []core.Note {
	byName := make(map[string]string, len(categories))
	for _, c := range categories {
		byName[c.Name] = c.ID
	}

	out := make([]core.Note, 0, len(defaultNotes))
	for i, s := range defaultNotes {
		ts := now.Add(-time.Duration(i) * time.Minute)
		out = append(out, core.Note{
			ID:         stableID("note", s.title),
			Title:      s.title,
			Content:    s.content,
			CategoryID: byName[s.category],
			CreatedAt:  ts,
			ModifiedAt: ts,
		})
	}
	return out
}

// Apply seeds an empty pair of stores. It is idempotent and never fails:
// any error, including a failure to inspect the stores, is taken to mean the
// stores are already initialized. It reports whether seed data was written.
func Apply(ctx context.Context, notes core.NoteRepository, categories core.CategoryRepository, logger *slog.Logger) bool {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	existingCats, err := categories.FetchAll(ctx)
	if err != nil {
		logger.Debug("seed skipped", "reason", "categories unreadable", "error", err)
		return false
	}
	existingNotes, err := notes.FetchAll(ctx)
	if err != nil {
		logger.Debug("seed skipped", "reason", "notes unreadable", "error", err)
		return false
	}
	if len(existingCats) > 0 || len(existingNotes) > 0 {
		logger.Debug("seed skipped", "reason", "store not empty")
		return false
	}

	now := time.Now()
	cats := Categories(now)
	for _, c := range cats {
		if err := categories.Add(ctx, c); err != nil {
			logger.Debug("seed category ignored", "name", c.Name, "error", err)
		}
	}
	for _, n := range Notes(cats, now) {
		if err := notes.Save(ctx, n); err != nil {
			logger.Debug("seed note ignored", "title", n.Title, "error", err)
		}
	}

	logger.Info("seeded store", "categories", len(cats), "notes", len(defaultNotes))
	return true
}
