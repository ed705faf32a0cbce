package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/quicknotes"
	qlifecycle "github.com/aretw0/quicknotes/pkg/adapters/lifecycle"
	"github.com/aretw0/quicknotes/pkg/listing"
)

var (
	listJSON     bool
	listCategory string
	listSearch   string
	listAll      bool
	listSort     string
	listWatch    bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	Long: `List notes, pinned first. Archived and completed notes are hidden
unless --all is given. With --watch the list is printed again whenever the
store changes.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		app := mustOpenApp(ctx)
		defer app.Close()

		vm := app.NewListViewModel()
		if err := vm.Load(ctx); err != nil {
			fatal("Error listing notes", err)
		}

		if listCategory != "" {
			categories, err := app.GetCategories.Execute(ctx)
			if err != nil {
				fatal("Error listing categories", err)
			}
			c, err := findCategory(categories, listCategory)
			if err != nil {
				fatal("Invalid --category", err)
			}
			vm.SetCategoryFilter(c.ID)
		}
		if cmd.Flags().Changed("all") {
			vm.SetShowArchivedAndCompleted(listAll)
		}
		if listSearch != "" {
			vm.SetSearchQuery(listSearch)
		}
		if listSort != "" {
			order, err := listing.ParseSortOrder(listSort)
			if err != nil {
				fatal("Invalid --sort", err)
			}
			vm.SetSortOrder(order)
		}

		if err := printList(vm.State()); err != nil {
			fatal("Error printing notes", err)
		}

		if listWatch {
			watchList(ctx, app, vm)
		}
	},
}

func printList(s listing.State) error {
	if listJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(s.Filtered)
	}
	for _, n := range s.Filtered {
		fmt.Println(formatNote(n))
	}
	return nil
}

// watchList reloads and reprints the list after each store change until
// interrupted.
func watchList(ctx context.Context, app *quicknotes.App, vm *listing.ViewModel) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	src := qlifecycle.NewSource(app, func(err error) {
		slog.Error("watch failed", "error", err)
	})
	if err := src.Start(ctx); err != nil {
		fatal("Failed to start watching", err)
	}
	fmt.Fprintln(os.Stderr, "Watching for changes. Press Ctrl+C to stop.")

	for e := range src.Events() {
		slog.Debug("reloading", "event", e.String())
		if err := vm.Load(ctx); err != nil {
			slog.Error("reload failed", "error", err)
			vm.DismissError()
			continue
		}
		if !listJSON {
			fmt.Println()
		}
		if err := printList(vm.State()); err != nil {
			fatal("Error printing notes", err)
		}
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "Only notes in this category (ID or name)")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Only notes whose title or content contains this text")
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "Include archived and completed notes")
	listCmd.Flags().StringVar(&listSort, "sort", "", "Sort order: date-desc, date-asc, title-asc or title-desc")
	listCmd.Flags().BoolVarP(&listWatch, "watch", "w", false, "Print the list again whenever the store changes")
}
