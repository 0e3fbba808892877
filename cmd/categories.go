package cmd

import (
	"fmt"

	"github.com/theirongolddev/budgetsplit/internal/pipeline"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Daily spending by category over the last 30 days",
	RunE:  runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(_ *cobra.Command, _ []string) error {
	b, closeFn, err := openBook()
	if err != nil {
		return err
	}
	defer closeFn()

	shares := pipeline.Breakdown(b.Ledger(), b.Now())
	if len(shares) == 0 {
		fmt.Printf("\n  No daily spending in the last %dd.\n", pipeline.WindowDays)
		return nil
	}

	fmt.Println()
	fmt.Print(renderCategories(shares, currency()))
	return nil
}
