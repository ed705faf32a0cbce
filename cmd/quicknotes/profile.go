package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var profileJSON bool

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the profile and note counts",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		app := mustOpenApp(ctx)
		defer app.Close()

		p, err := app.GetProfile.Execute(ctx)
		if err != nil {
			fatal("Error loading profile", err)
		}

		if profileJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(p); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		fmt.Println(p.DisplayName)
		if p.Email != "" {
			fmt.Println(p.Email)
		}
		if !p.JoinedAt.IsZero() {
			fmt.Printf("Joined %s\n", p.JoinedAt.Format(time.DateOnly))
		}
		fmt.Printf("%d notes, %d categories\n", p.NotesCount, p.CategoriesCount)
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.Flags().BoolVar(&profileJSON, "json", false, "Output in JSON format")
}
