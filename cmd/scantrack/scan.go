package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vkarlsson/scantrack/internal/sqlite"
	"github.com/vkarlsson/scantrack/pkg/types"
)

var scanDryRun bool

var scanCmd = &cobra.Command{
	Use:   "scan BARCODE...",
	Short: "Process one or more scanned barcodes",
	Long: `Scan classifies each barcode and records the resulting checkout or
checkin event in the scan log.

Trigger codes and unrecognized barcodes are reported but never logged.
With --dry-run nothing is recorded and the action defaults to checkout.

Example:
  scantrack scan KÄKX001A
  scantrack scan SCAN_START ORTO042 KÄKX001A
  scantrack scan --dry-run ZZZZ999`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&scanDryRun, "dry-run", false, "classify without recording")
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	set, err := openSettings()
	if err != nil {
		return fmt.Errorf("open settings: %w", err)
	}
	proc, err := newProcessor(set)
	if err != nil {
		return err
	}

	store, err := openLog()
	if err != nil {
		return fmt.Errorf("open scan log: %w", err)
	}
	defer store.Close()

	var outcomes []types.Outcome
	for _, raw := range args {
		var outcome types.Outcome
		if scanDryRun {
			outcome = proc.Process(ctx, raw, nil)
		} else {
			outcome = proc.Process(ctx, raw, store)
		}
		outcomes = append(outcomes, outcome)

		if outcome.Kind == types.KindScan && !scanDryRun {
			entry, err := outcome.Entry(time.Now())
			if err != nil {
				return err
			}
			// Classification succeeded but the event must also be
			// recorded; a failed append is a hard failure so the two
			// are never conflated.
			if _, err := store.Append(ctx, &entry); err != nil {
				return fmt.Errorf("recording scan for %s: %w", outcome.Barcode, err)
			}
		}

		if !flagJSON {
			printOutcome(cmd, outcome, store)
		}
	}

	if flagJSON {
		return printJSON(outcomes)
	}
	return nil
}

// printOutcome writes a single human-readable result line per barcode.
func printOutcome(cmd *cobra.Command, outcome types.Outcome, store *sqlite.Store) {
	switch outcome.Kind {
	case types.KindTrigger:
		fmt.Println("Scanner activated")
	case types.KindUnknown:
		fmt.Println("Unknown barcode format")
	case types.KindScan:
		line := fmt.Sprintf("%s  %s  %s", strings.ToUpper(outcome.Action), outcome.Category, outcome.Barcode)
		if name, err := store.ItemName(cmd.Context(), outcome.Barcode); err == nil && name != "" {
			line += fmt.Sprintf(" (%s)", name)
		}
		fmt.Println(line)
	}
}
