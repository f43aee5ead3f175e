package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vkarlsson/scantrack/internal/export"
	"github.com/vkarlsson/scantrack/internal/sqlite"
	"github.com/vkarlsson/scantrack/pkg/types"
)

var importLogs bool

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import an item catalogue or exported scan logs",
	Long: `Import reads an item catalogue: one item per line, barcode first,
display name after. Catalogued names show up in scan results and log
listings.

With --logs the file is instead a CSV or JSON export produced by the
export command, and its entries are appended to the scan log (for moving
a log between machines).

Example:
  scantrack import items.txt
  scantrack import --logs scantrack-2026-08-30_10-00-00.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importLogs, "logs", false, "import exported scan logs instead of an item catalogue")
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	store, err := openLog()
	if err != nil {
		return fmt.Errorf("open scan log: %w", err)
	}
	defer store.Close()

	if importLogs {
		return importLogEntries(cmd, args[0], f, store)
	}

	items, err := export.ParseItemList(f)
	if err != nil {
		return fmt.Errorf("parse item list: %w", err)
	}

	count, err := store.ImportItems(cmd.Context(), items)
	if err != nil {
		return fmt.Errorf("import items: %w", err)
	}

	fmt.Printf("Imported %d item(s)\n", count)
	return nil
}

// importLogEntries appends entries from an exported CSV or JSON file. Store
// ids are reassigned on insert.
func importLogEntries(cmd *cobra.Command, path string, f *os.File, store *sqlite.Store) error {
	var entries []types.Entry
	var err error

	switch filepath.Ext(path) {
	case ".csv":
		entries, err = export.ReadCSV(f)
	case ".json":
		entries, err = export.ReadJSON(f)
	default:
		return fmt.Errorf("unknown export file extension %q (want .csv or .json)", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("read export file: %w", err)
	}

	for i := range entries {
		entry := entries[i]
		entry.ID = 0
		if _, err := store.Append(cmd.Context(), &entry); err != nil {
			return fmt.Errorf("append imported entry for %s: %w", entry.Barcode, err)
		}
	}

	fmt.Printf("Imported %d log entr%s\n", len(entries), pluralY(len(entries)))
	return nil
}
