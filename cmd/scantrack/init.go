package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration and the scan log database",
	Long: `Init creates the configuration directory with default categories and
trigger codes, and creates the scan log database in the data directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := openSettings()
		if err != nil {
			return fmt.Errorf("open settings: %w", err)
		}

		store, err := openLog()
		if err != nil {
			return fmt.Errorf("open scan log: %w", err)
		}
		defer store.Close()

		fmt.Printf("Settings: %s\n", set.Path())
		dataDir, err := resolveDataDir()
		if err != nil {
			return err
		}
		fmt.Printf("Scan log: %s\n", dataDir)
		return nil
	},
}
