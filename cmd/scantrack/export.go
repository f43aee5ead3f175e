package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vkarlsson/scantrack/internal/export"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the scan log to CSV or JSON",
	Long: `Export serializes scan log entries to a file. The log command's
filter flags apply here too.

Example:
  scantrack export --format csv
  scantrack export --format json --output /tmp/logs.json
  scantrack export --format csv --from 2026-08-01 --category Ortopedi`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", export.FormatCSV, "export format (csv, json)")
	exportCmd.Flags().StringVar(&exportOutput, "output", "", "output file (default: scantrack-<timestamp>.<format>)")
	exportCmd.Flags().StringVar(&logFrom, "from", "", "start date (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&logTo, "to", "", "end date (YYYY-MM-DD, inclusive)")
	exportCmd.Flags().StringVar(&logCategory, "category", "", "filter by category name")
	exportCmd.Flags().StringVar(&logAction, "action", "", "filter by action (checkout, checkin)")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != export.FormatCSV && exportFormat != export.FormatJSON {
		return fmt.Errorf("unknown export format %q (want csv or json)", exportFormat)
	}

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

	path := exportOutput
	if path == "" {
		path = export.FileName(exportFormat, time.Now())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	switch exportFormat {
	case export.FormatCSV:
		err = export.WriteCSV(f, entries)
	case export.FormatJSON:
		err = export.WriteJSON(f, entries, time.Now())
	}
	if err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}

	fmt.Printf("Exported %d entries to %s\n", len(entries), path)
	return nil
}
