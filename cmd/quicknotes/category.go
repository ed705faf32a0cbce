package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/quicknotes/pkg/core"
)

var (
	categoryJSON bool

	addIcon  string
	addColor string

	updateName  string
	updateIcon  string
	updateColor string
)

var categoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"categories", "cat"},
	Short:   "Manage categories",
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories by name",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		app := mustOpenApp(ctx)
		defer app.Close()

		categories, err := app.GetCategories.Execute(ctx)
		if err != nil {
			fatal("Error listing categories", err)
		}

		if categoryJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(categories); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}
		for _, c := range categories {
			fmt.Printf("%s  %s  (%s, #%s)\n", shortID(c.ID), c.Name, c.Icon, c.Color)
		}
	},
}

var categoryAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a category",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		app := mustOpenApp(ctx)
		defer app.Close()

		c, err := app.AddCategory.Execute(ctx, core.NewCategory(args[0], addIcon, addColor))
		if err != nil {
			fatal("Failed to add category", err)
		}
		fmt.Printf("Category '%s' added (%s).\n", c.Name, c.ID)
	},
}

var categoryUpdateCmd = &cobra.Command{
	Use:   "update [id|name]",
	Short: "Rename or restyle a category",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		app := mustOpenApp(ctx)
		defer app.Close()

		c := mustFindCategory(ctx, app, args[0])
		flags := cmd.Flags()
		if flags.Changed("name") {
			c.Name = updateName
		}
		if flags.Changed("icon") {
			c.Icon = updateIcon
		}
		if flags.Changed("color") {
			c.Color = updateColor
		}
		c.ModifiedAt = time.Now()

		if err := app.UpdateCategory.Execute(ctx, c); err != nil {
			fatal("Failed to update category", err)
		}
		fmt.Printf("Category '%s' updated.\n", c.Name)
	},
}

var categoryDeleteCmd = &cobra.Command{
	Use:   "delete [id|name]",
	Short: "Delete a category; its notes become uncategorized",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		app := mustOpenApp(ctx)
		defer app.Close()

		c := mustFindCategory(ctx, app, args[0])
		if err := app.DeleteCategory.Execute(ctx, c.ID); err != nil {
			fatal("Failed to delete category", err)
		}
		fmt.Printf("Category '%s' deleted.\n", c.Name)
	},
}

func init() {
	rootCmd.AddCommand(categoryCmd)
	categoryCmd.AddCommand(categoryListCmd, categoryAddCmd, categoryUpdateCmd, categoryDeleteCmd)

	categoryListCmd.Flags().BoolVar(&categoryJSON, "json", false, "Output in JSON format")

	categoryAddCmd.Flags().StringVar(&addIcon, "icon", "folder.fill", "Icon token")
	categoryAddCmd.Flags().StringVar(&addColor, "color", "6B7280", "Color token (hex)")

	categoryUpdateCmd.Flags().StringVar(&updateName, "name", "", "New name")
	categoryUpdateCmd.Flags().StringVar(&updateIcon, "icon", "", "New icon token")
	categoryUpdateCmd.Flags().StringVar(&updateColor, "color", "", "New color token")
}
