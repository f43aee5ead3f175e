// Package main provides the scantrack CLI: a barcode check-in/check-out
// tracker for categorized inventory items.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
