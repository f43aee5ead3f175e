// Category subcommands manage the barcode prefix table.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vkarlsson/scantrack/internal/scanner"
	"github.com/vkarlsson/scantrack/pkg/types"
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage barcode prefix categories",
}

func init() {
	categoryCmd.AddCommand(categoryAddCmd)
	categoryCmd.AddCommand(categoryListCmd)
	categoryCmd.AddCommand(categoryUpdateCmd)
	categoryCmd.AddCommand(categoryRemoveCmd)
}

var (
	categoryName        string
	categoryDescription string
	categoryColor       string
)

var categoryAddCmd = &cobra.Command{
	Use:   "add PREFIX",
	Short: "Add a category under a barcode prefix",
	Long: `Add registers a category keyed by the uppercased prefix and persists
the table immediately.

Example:
  scantrack category add ÖNHX --name "Öron-näsa-hals" --color "#14B8A6"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := openSettings()
		if err != nil {
			return fmt.Errorf("open settings: %w", err)
		}
		resolver, err := newResolver(set)
		if err != nil {
			return err
		}

		cat := types.Category{
			Name:        categoryName,
			Prefix:      args[0],
			Description: categoryDescription,
			Color:       categoryColor,
		}
		if err := resolver.Add(cat); err != nil {
			return fmt.Errorf("add category: %w", err)
		}

		fmt.Printf("Added category %q under prefix %s\n", categoryName, strings.ToUpper(args[0]))
		return nil
	},
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := openSettings()
		if err != nil {
			return fmt.Errorf("open settings: %w", err)
		}
		resolver, err := newResolver(set)
		if err != nil {
			return err
		}

		categories := resolver.All()
		if flagJSON {
			return printJSON(categories)
		}

		if len(categories) == 0 {
			fmt.Println("No categories registered.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PREFIX\tNAME\tDESCRIPTION")
		for _, cat := range categories {
			fmt.Fprintf(w, "%s\t%s\t%s\n", cat.Prefix, cat.Name, cat.Description)
		}
		return w.Flush()
	},
}

var categoryUpdateCmd = &cobra.Command{
	Use:   "update PREFIX",
	Short: "Update fields of an existing category",
	Long: `Update changes only the fields whose flags are given; other fields
are left as they are. The prefix key itself cannot change.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := openSettings()
		if err != nil {
			return fmt.Errorf("open settings: %w", err)
		}
		resolver, err := newResolver(set)
		if err != nil {
			return err
		}

		var update scanner.CategoryUpdate
		if cmd.Flags().Changed("name") {
			update.Name = &categoryName
		}
		if cmd.Flags().Changed("description") {
			update.Description = &categoryDescription
		}
		if cmd.Flags().Changed("color") {
			update.Color = &categoryColor
		}

		if err := resolver.Update(args[0], update); err != nil {
			return fmt.Errorf("update category: %w", err)
		}

		fmt.Printf("Updated category %s\n", strings.ToUpper(args[0]))
		return nil
	},
}

var categoryRemoveCmd = &cobra.Command{
	Use:   "remove PREFIX",
	Short: "Remove a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := openSettings()
		if err != nil {
			return fmt.Errorf("open settings: %w", err)
		}
		resolver, err := newResolver(set)
		if err != nil {
			return err
		}

		removed, err := resolver.Remove(args[0])
		if err != nil {
			return fmt.Errorf("remove category: %w", err)
		}
		if !removed {
			return fmt.Errorf("remove category: %w", types.ErrCategoryNotFound)
		}

		fmt.Printf("Removed category %s\n", strings.ToUpper(args[0]))
		return nil
	},
}

func init() {
	categoryAddCmd.Flags().StringVar(&categoryName, "name", "", "category display name (required)")
	categoryAddCmd.Flags().StringVar(&categoryDescription, "description", "", "category description")
	categoryAddCmd.Flags().StringVar(&categoryColor, "color", "", "display color (hex)")
	_ = categoryAddCmd.MarkFlagRequired("name")

	categoryUpdateCmd.Flags().StringVar(&categoryName, "name", "", "category display name")
	categoryUpdateCmd.Flags().StringVar(&categoryDescription, "description", "", "category description")
	categoryUpdateCmd.Flags().StringVar(&categoryColor, "color", "", "display color (hex)")
}
