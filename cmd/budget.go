package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/budgetsplit/internal/cli"
	"github.com/theirongolddev/budgetsplit/internal/model"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Show or set the segment budgets",
	Long: `Show or set the three budget knobs. Bills and specials are monthly
amounts, daily is an amount per day.`,
	Example: `  budgetsplit budget
  budgetsplit budget --bills 1200 --daily 25`,
	RunE: runBudget,
}

var budgetValues = map[model.Segment]*string{
	model.SegmentBills:    new(string),
	model.SegmentSpecials: new(string),
	model.SegmentDaily:    new(string),
}

func init() {
	budgetCmd.Flags().StringVar(budgetValues[model.SegmentBills], "bills", "", "Monthly bills budget")
	budgetCmd.Flags().StringVar(budgetValues[model.SegmentSpecials], "specials", "", "Monthly specials budget")
	budgetCmd.Flags().StringVar(budgetValues[model.SegmentDaily], "daily", "", "Daily budget per day")
	rootCmd.AddCommand(budgetCmd)
}

func runBudget(cmd *cobra.Command, _ []string) error {
	b, closeFn, err := openBook()
	if err != nil {
		return err
	}
	defer closeFn()

	for _, s := range model.Segments {
		if !cmd.Flags().Changed(string(s)) {
			continue
		}
		v, err := parseKnob(*budgetValues[s])
		if err != nil {
			return fmt.Errorf("--%s: %w", s, err)
		}
		if err := b.SetKnob(s, v); err != nil {
			return err
		}
	}

	l := b.Ledger()
	sym := currency()
	rows := [][]string{
		{"Bills", cli.FormatMoney(l.Bills, sym) + cli.Muted(" /month")},
		{"Specials", cli.FormatMoney(l.Specials, sym) + cli.Muted(" /month")},
		{"Daily", cli.FormatMoney(l.Daily, sym) + cli.Muted(" /day")},
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Budgets",
		Headers: []string{"Segment", "Budget"},
		Rows:    rows,
	}))
	return nil
}

func parseKnob(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
}
