package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/theirongolddev/budgetsplit/internal/cli"
	"github.com/theirongolddev/budgetsplit/internal/model"
	"github.com/theirongolddev/budgetsplit/internal/pipeline"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List transactions, newest first",
	RunE:    runList,
}

var (
	listSegment string
	listDays    int
	listLimit   int
)

func init() {
	listCmd.Flags().StringVarP(&listSegment, "segment", "s", "", "Only this segment")
	listCmd.Flags().IntVarP(&listDays, "days", "n", 0, "Only the last N days (0 = all)")
	listCmd.Flags().IntVarP(&listLimit, "limit", "l", 50, "Number of transactions to show (0 = all)")
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
	b, closeFn, err := openBook()
	if err != nil {
		return err
	}
	defer closeFn()

	txs := b.Ledger().Expenses
	title := "TRANSACTIONS"
	if listSegment != "" {
		seg, err := model.ParseSegment(listSegment)
		if err != nil {
			return err
		}
		txs = pipeline.FilterBySegment(txs, seg)
		title += "  " + seg.Title()
	}
	if listDays > 0 {
		txs = pipeline.FilterByTime(txs, b.Now().AddDate(0, 0, -listDays), time.Time{})
		title += fmt.Sprintf("  Last %dd", listDays)
	}

	if len(txs) == 0 {
		fmt.Println("\n  No transactions found.")
		return nil
	}

	total := len(txs)
	if listLimit > 0 && len(txs) > listLimit {
		txs = txs[:listLimit]
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s (showing %d of %d)", title, len(txs), total)))
	fmt.Println()

	sym := currency()
	rows := make([][]string, 0, len(txs))
	for _, t := range txs {
		rows = append(rows, []string{
			strconv.FormatInt(t.ID, 10),
			cli.FormatDate(t.Date),
			t.Segment.Title(),
			string(t.Category),
			t.Label,
			cli.FormatSigned(t, sym),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"ID", "Date", "Segment", "Category", "Label", "Amount"},
		Rows:    rows,
	}))
	return nil
}
