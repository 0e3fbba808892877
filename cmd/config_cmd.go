// Package cmd implements the budgetsplit CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/budgetsplit/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Daily formula:   %s\n", formula())
	fmt.Printf("    Currency symbol: %s\n", cfg.General.CurrencySymbol)
	fmt.Println()

	fmt.Println("  [Store]")
	path := flagDB
	if path == "" {
		path = config.StorePath(cfg)
	}
	fmt.Printf("    Ledger database: %s\n", path)
	if os.Getenv("BUDGETSPLIT_DB") != "" {
		fmt.Println("    (from BUDGETSPLIT_DB)")
	}
	fmt.Println()

	fmt.Println("  [Sync]")
	if cfg.Sync.BaseURL != "" {
		fmt.Printf("    Base URL: %s\n", cfg.Sync.BaseURL)
	} else {
		fmt.Println("    Base URL: not configured")
	}
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level: %s\n", config.LogLevel(cfg))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)

	return nil
}
