package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/quicknotes"
	"github.com/aretw0/quicknotes/internal/config"
	"github.com/aretw0/quicknotes/pkg/listing"
)

var (
	verbose    bool
	configFile string
	adapter    string
	storePath  string
	noSeed     bool

	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "quicknotes",
	Short: "Notes with categories, pins and archives from the terminal",
	Long: `QuickNotes keeps short notes grouped by category.
Notes live in a local store: Markdown files (fs), a SQLite database (sqlite)
or process memory (memory). An empty store starts with sample data.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(config.LoadOptions{File: configFile, SearchDirs: searchDirs()})
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("adapter") {
			loaded.Store.Adapter = adapter
		}
		if cmd.Flags().Changed("path") {
			loaded.Store.Path = storePath
		}
		if noSeed {
			loaded.Store.Seed = false
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded

		level := cfg.Log.SlogLevel()
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: .quicknotes.yaml in the workspace or home)")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "", "Storage adapter: memory, fs or sqlite")
	rootCmd.PersistentFlags().StringVar(&storePath, "path", "", "Store location (directory for fs, file or directory for sqlite)")
	rootCmd.PersistentFlags().BoolVar(&noSeed, "no-seed", false, "Do not fill an empty store with sample data")
}

// searchDirs lists where the config file is looked up, most specific first.
func searchDirs() []string {
	var dirs []string
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
		if root, err := quicknotes.FindRoot(wd); err == nil && root != wd {
			dirs = append(dirs, root)
		}
	}
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(dir, "quicknotes"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}
	return dirs
}

// openApp opens the configured store.
func openApp(ctx context.Context) (*quicknotes.App, error) {
	loadOrder, err := listing.ParseSortOrder(cfg.List.LoadSort)
	if err != nil {
		return nil, err
	}
	sort, err := listing.ParseSortOrder(cfg.List.Sort)
	if err != nil {
		return nil, err
	}

	return quicknotes.New(ctx,
		quicknotes.WithAdapter(cfg.Store.Adapter),
		quicknotes.WithPath(cfg.Store.Path),
		quicknotes.WithSeed(cfg.Store.Seed),
		quicknotes.WithLogger(slog.Default()),
		quicknotes.WithLoadOrder(loadOrder),
		quicknotes.WithFilter(listing.Filter{ShowArchivedAndCompleted: cfg.List.ShowArchived, Sort: sort}),
		quicknotes.WithIdentity(quicknotes.Identity{
			DisplayName: cfg.Profile.DisplayName,
			Email:       cfg.Profile.Email,
			JoinedAt:    cfg.Profile.Joined(),
		}),
	)
}

// mustOpenApp is openApp for commands that cannot continue without a store.
func mustOpenApp(ctx context.Context) *quicknotes.App {
	app, err := openApp(ctx)
	if err != nil {
		fatal("Failed to open store", err)
	}
	return app
}
