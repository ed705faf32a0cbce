package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/quicknotes"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a QuickNotes workspace in the current directory",
	Long: `Create a .quicknotes directory in the current directory. Commands run
here or in any subdirectory use it as their store unless --path is given.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cwd, err := os.Getwd()
		if err != nil {
			fatal("Failed to get CWD", err)
		}
		if !cmd.Flags().Changed("path") && cfg.Store.Path == "" {
			cfg.Store.Path = filepath.Join(cwd, quicknotes.StoreDir)
			if cfg.Store.Adapter == quicknotes.AdapterSQLite {
				if err := os.MkdirAll(cfg.Store.Path, 0o755); err != nil {
					fatal("Failed to create workspace", err)
				}
			}
		}

		app := mustOpenApp(cmd.Context())
		defer app.Close()

		fmt.Printf("Initialized QuickNotes %s store in %s\n", app.Adapter, app.Path)
		if app.Seeded() {
			fmt.Println("Added sample notes and categories.")
		}
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
