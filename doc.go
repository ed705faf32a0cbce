// Package quicknotes is the composition root of QuickNotes, a small note
// taking core with categories.
//
// It connects the domain (pkg/core), the application operations
// (pkg/usecase) and the list view state (pkg/listing) with one of the
// storage adapters:
//
//   - memory: process-local, for tests and demos.
//   - fs: one Markdown file per note and one YAML file per category.
//   - sqlite: a single database file.
//
// An empty store is seeded with sample categories and notes unless
// WithSeed(false) is given.
//
// Usage:
//
//	app, err := quicknotes.New(ctx,
//		quicknotes.WithAdapter(quicknotes.AdapterSQLite),
//		quicknotes.WithPath("./notes.db"),
//		quicknotes.WithLogger(logger),
//	)
//	defer app.Close()
//
//	note, err := app.SaveNote.Execute(ctx, core.NewNote("Groceries", "milk", ""))
package quicknotes
