package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var clearForce bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every scan log entry",
	Long: `Clear removes all entries from the scan log. The category table,
trigger codes, and item catalogue are kept. This cannot be undone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearForce {
			fmt.Print("Delete ALL scan log entries? This cannot be undone. [y/N] ")
			reader := bufio.NewReader(os.Stdin)
			answer, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("read confirmation: %w", err)
			}
			if strings.ToLower(strings.TrimSpace(answer)) != "y" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		store, err := openLog()
		if err != nil {
			return fmt.Errorf("open scan log: %w", err)
		}
		defer store.Close()

		if err := store.Clear(cmd.Context()); err != nil {
			return fmt.Errorf("clear scan log: %w", err)
		}

		fmt.Println("Scan log cleared.")
		return nil
	},
}

func init() {
	clearCmd.Flags().BoolVar(&clearForce, "force", false, "skip confirmation prompt")
}
