// Shared helpers for scantrack CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vkarlsson/scantrack/internal/scanner"
	"github.com/vkarlsson/scantrack/internal/settings"
	"github.com/vkarlsson/scantrack/internal/sqlite"
)

// dbFileName is the scan log database file inside the data directory.
const dbFileName = "scantrack.db"

// openSettings loads settings.yaml from the resolved config directory,
// seeding defaults on first run.
func openSettings() (*settings.Store, error) {
	configDir, err := resolveConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	return settings.Open(configDir)
}

// openLog opens the scan log database in the resolved data directory,
// creating the directory if needed. The caller must defer Close.
func openLog() (*sqlite.Store, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return sqlite.Open(filepath.Join(dataDir, dbFileName))
}

// newProcessor builds the scan processor from the persisted category table
// and trigger set. The resolver persists category mutations back through the
// settings store.
func newProcessor(set *settings.Store) (*scanner.Processor, error) {
	categories, err := set.LoadCategories()
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	triggers, err := set.LoadTriggers()
	if err != nil {
		return nil, fmt.Errorf("load triggers: %w", err)
	}

	return scanner.NewProcessor(
		scanner.NewTriggerSet(triggers),
		scanner.NewResolver(categories, set),
		slog.Default(),
	), nil
}

// newResolver builds just the category resolver, for commands that only
// touch the prefix table.
func newResolver(set *settings.Store) (*scanner.Resolver, error) {
	categories, err := set.LoadCategories()
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	return scanner.NewResolver(categories, set), nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}
