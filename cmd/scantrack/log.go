package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/vkarlsson/scantrack/pkg/types"
)

var (
	logFrom     string
	logTo       string
	logCategory string
	logAction   string
	logLimit    int
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "List scan log entries, newest first",
	Long: `Log lists scan events, optionally filtered by date range, category,
or action.

Example:
  scantrack log --limit 20
  scantrack log --from 2026-08-01 --to 2026-08-31 --category Ortopedi
  scantrack log --action checkout --json`,
	RunE: runLog,
}

func init() {
	logCmd.Flags().StringVar(&logFrom, "from", "", "start date (YYYY-MM-DD)")
	logCmd.Flags().StringVar(&logTo, "to", "", "end date (YYYY-MM-DD, inclusive)")
	logCmd.Flags().StringVar(&logCategory, "category", "", "filter by category name")
	logCmd.Flags().StringVar(&logAction, "action", "", "filter by action (checkout, checkin)")
	logCmd.Flags().IntVar(&logLimit, "limit", 0, "maximum number of results (0 = no limit)")
}

func runLog(cmd *cobra.Command, args []string) error {
	filters, err := buildFilters()
	if err != nil {
		return err
	}

	store, err := openLog()
	if err != nil {
		return fmt.Errorf("open scan log: %w", err)
	}
	defer store.Close()

	entries, err := store.Query(cmd.Context(), filters)
	if err != nil {
		return fmt.Errorf("query scan log: %w", err)
	}

	if flagJSON {
		return printJSON(entries)
	}

	printEntryTable(entries)
	return nil
}

// buildFilters converts the log command flags into store filters.
func buildFilters() (types.Filters, error) {
	var filters types.Filters

	if logFrom != "" {
		start, err := time.ParseInLocation("2006-01-02", logFrom, time.Local)
		if err != nil {
			return filters, fmt.Errorf("parse --from: %w", err)
		}
		filters.Start = &start
	}
	if logTo != "" {
		end, err := time.ParseInLocation("2006-01-02", logTo, time.Local)
		if err != nil {
			return filters, fmt.Errorf("parse --to: %w", err)
		}
		// Inclusive end of day.
		end = end.Add(24*time.Hour - time.Nanosecond)
		filters.End = &end
	}
	filters.Category = logCategory
	filters.Action = logAction
	filters.Limit = logLimit

	return filters, nil
}

// printEntryTable prints entries in a human-readable table format.
func printEntryTable(entries []types.Entry) {
	if len(entries) == 0 {
		fmt.Println("No scan log entries found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tACTION\tCATEGORY\tBARCODE\tITEM")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			e.ID,
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.Action,
			e.Category,
			e.Barcode,
			e.ItemName,
		)
	}
	w.Flush()

	fmt.Printf("Total: %d entr%s\n", len(entries), pluralY(len(entries)))
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
