package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/quicknotes"
	"github.com/aretw0/quicknotes/pkg/core"
	"github.com/aretw0/quicknotes/pkg/listing"
)

var (
	noteJSON     bool
	noteContent  string
	noteCategory string
	noteTitle    string
	notePinned   bool
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Create a note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		app := mustOpenApp(ctx)
		defer app.Close()

		categoryID := ""
		if noteCategory != "" {
			categoryID = mustFindCategory(ctx, app, noteCategory).ID
		}

		n := core.NewNote(args[0], noteContent, categoryID)
		n.IsPinned = notePinned
		saved, err := app.SaveNote.Execute(ctx, n)
		if err != nil {
			fatal("Failed to save note", err)
		}
		fmt.Printf("Note '%s' saved (%s).\n", saved.Title, saved.ID)
	},
}

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a note",
	Long:  `Show a note by its ID or a unique ID prefix. Prints the content by default, or the whole note with --json.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		app := mustOpenApp(ctx)
		defer app.Close()

		n := mustFindNote(ctx, app, args[0])

		if noteJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(n); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		fmt.Printf("# %s\n", n.Title)
		if n.Category != nil {
			fmt.Printf("Category: %s\n", n.Category.Name)
		}
		fmt.Printf("Modified: %s\n\n", n.ModifiedAt.Format(time.DateTime))
		fmt.Println(n.Content)
	},
}

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Change the title, content or category of a note",
	Long:  `Change a note. Only the given flags are applied; --category "" removes the category.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		app := mustOpenApp(ctx)
		defer app.Close()

		n := mustFindNote(ctx, app, args[0])
		now := time.Now()
		flags := cmd.Flags()

		if flags.Changed("title") {
			n = n.WithTitle(noteTitle, now)
		}
		if flags.Changed("content") {
			n = n.WithContent(noteContent, now)
		}
		if flags.Changed("category") {
			categoryID := ""
			if noteCategory != "" {
				categoryID = mustFindCategory(ctx, app, noteCategory).ID
			}
			n = n.WithCategory(categoryID, now)
		}

		if _, err := app.SaveNote.Execute(ctx, n); err != nil {
			fatal("Failed to save note", err)
		}
		fmt.Printf("Note '%s' updated.\n", n.Title)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		app := mustOpenApp(ctx)
		defer app.Close()

		n := mustFindNote(ctx, app, args[0])
		if err := app.DeleteNote.Execute(ctx, n.ID); err != nil {
			fatal("Failed to delete note", err)
		}
		fmt.Printf("Note '%s' deleted.\n", n.Title)
	},
}

// toggleCmd builds pin, archive and complete, which flip one flag through
// the list view model.
func toggleCmd(use, short, done string, toggle func(*listing.ViewModel, context.Context, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [id]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			app := mustOpenApp(ctx)
			defer app.Close()

			n := mustFindNote(ctx, app, args[0])
			vm := app.NewListViewModel()
			if err := vm.Load(ctx); err != nil {
				fatal("Error loading notes", err)
			}
			if err := toggle(vm, ctx, n.ID); err != nil {
				fatal("Failed to update note", err)
			}
			fmt.Printf("Note '%s' %s.\n", n.Title, done)
		},
	}
}

func mustFindNote(ctx context.Context, app *quicknotes.App, ref string) core.Note {
	notes, err := app.GetNotes.Execute(ctx)
	if err != nil {
		fatal("Error listing notes", err)
	}
	n, err := findNote(notes, ref)
	if err != nil {
		fatal("Note not found", err)
	}
	return n
}

func mustFindCategory(ctx context.Context, app *quicknotes.App, ref string) core.Category {
	categories, err := app.GetCategories.Execute(ctx)
	if err != nil {
		fatal("Error listing categories", err)
	}
	c, err := findCategory(categories, ref)
	if err != nil {
		fatal("Category not found", err)
	}
	return c
}

func init() {
	rootCmd.AddCommand(addCmd, showCmd, editCmd, deleteCmd,
		toggleCmd("pin", "Pin or unpin a note", "toggled pin", (*listing.ViewModel).TogglePin),
		toggleCmd("archive", "Archive or unarchive a note", "toggled archive", (*listing.ViewModel).ToggleArchive),
		toggleCmd("complete", "Mark a note completed or not", "toggled completion", (*listing.ViewModel).ToggleComplete),
	)

	addCmd.Flags().StringVar(&noteContent, "content", "", "Note content")
	addCmd.Flags().StringVarP(&noteCategory, "category", "c", "", "Category ID or name")
	addCmd.Flags().BoolVar(&notePinned, "pinned", false, "Pin the new note")

	showCmd.Flags().BoolVar(&noteJSON, "json", false, "Output in JSON format")

	editCmd.Flags().StringVar(&noteTitle, "title", "", "New title")
	editCmd.Flags().StringVar(&noteContent, "content", "", "New content")
	editCmd.Flags().StringVarP(&noteCategory, "category", "c", "", "New category ID or name")
}
