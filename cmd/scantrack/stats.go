package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate scan statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openLog()
		if err != nil {
			return fmt.Errorf("open scan log: %w", err)
		}
		defer store.Close()

		stats, err := store.Aggregate(cmd.Context())
		if err != nil {
			return fmt.Errorf("aggregate scan log: %w", err)
		}

		if flagJSON {
			return printJSON(stats)
		}

		fmt.Printf("Total scans:      %d\n", stats.Total)
		fmt.Printf("Checkouts:        %d\n", stats.Checkouts)
		fmt.Printf("Checkins:         %d\n", stats.Checkins)
		fmt.Printf("Categories used:  %d\n", stats.CategoriesUsed)
		fmt.Printf("Scans today:      %d\n", stats.Today)

		if len(stats.PerCategory) > 0 {
			names := make([]string, 0, len(stats.PerCategory))
			for name := range stats.PerCategory {
				names = append(names, name)
			}
			sort.Strings(names)

			fmt.Println()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CATEGORY\tSCANS")
			for _, name := range names {
				fmt.Fprintf(w, "%s\t%d\n", name, stats.PerCategory[name])
			}
			w.Flush()
		}
		return nil
	},
}
