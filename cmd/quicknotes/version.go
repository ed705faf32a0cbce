package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/quicknotes"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of quicknotes",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("quicknotes version %s\n", strings.TrimSpace(quicknotes.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
