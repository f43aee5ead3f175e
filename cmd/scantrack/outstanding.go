package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var outstandingCmd = &cobra.Command{
	Use:   "outstanding",
	Short: "List items currently checked out",
	Long: `Outstanding lists every item whose most recent scan is a checkout
with no later checkin.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openLog()
		if err != nil {
			return fmt.Errorf("open scan log: %w", err)
		}
		defer store.Close()

		entries, err := store.Outstanding(cmd.Context())
		if err != nil {
			return fmt.Errorf("query outstanding items: %w", err)
		}

		if flagJSON {
			return printJSON(entries)
		}

		if len(entries) == 0 {
			fmt.Println("No items checked out.")
			return nil
		}
		printEntryTable(entries)
		return nil
	},
}
