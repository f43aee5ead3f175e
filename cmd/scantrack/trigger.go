// Trigger subcommands manage the control barcode set.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vkarlsson/scantrack/internal/scanner"
)

var triggerCmd = &cobra.Command{
	Use:   "trigger",
	Short: "Manage trigger barcode codes",
}

func init() {
	triggerCmd.AddCommand(triggerListCmd)
	triggerCmd.AddCommand(triggerSetCmd)
}

var triggerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List trigger codes",
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := openSettings()
		if err != nil {
			return fmt.Errorf("open settings: %w", err)
		}
		codes, err := set.LoadTriggers()
		if err != nil {
			return fmt.Errorf("load triggers: %w", err)
		}

		if flagJSON {
			return printJSON(codes)
		}
		for _, code := range codes {
			fmt.Println(code)
		}
		return nil
	},
}

var triggerSetCmd = &cobra.Command{
	Use:   "set CODE...",
	Short: "Replace the trigger code set",
	Long: `Set replaces the whole trigger set with the given codes, normalized
to uppercase.

Example:
  scantrack trigger set SCAN_START ACTIVATE`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := openSettings()
		if err != nil {
			return fmt.Errorf("open settings: %w", err)
		}

		// Normalize through the trigger set so the persisted codes match
		// what the detector will match against.
		ts := scanner.NewTriggerSet(args)
		codes := ts.List()
		if err := set.SaveTriggers(codes); err != nil {
			return fmt.Errorf("save triggers: %w", err)
		}

		fmt.Printf("Trigger codes: %s\n", strings.Join(codes, ", "))
		return nil
	},
}
