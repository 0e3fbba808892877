package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/budgetsplit/internal/book"
	"github.com/theirongolddev/budgetsplit/internal/cli"
	"github.com/theirongolddev/budgetsplit/internal/model"
	"github.com/theirongolddev/budgetsplit/internal/pipeline"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show ledger store and data health",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	st, closeFn, err := openStore()
	if err != nil {
		return err
	}
	defer closeFn()

	now, _ := clock()
	b, err := book.Open(st, now, logger.With("component", "book"))
	if err != nil {
		return err
	}
	l := b.Ledger()

	fmt.Println()
	fmt.Println(cli.RenderTitle("LEDGER STATUS"))
	fmt.Println()

	saved := "never"
	if ts, ok, err := st.UpdatedAt(st.Key()); err != nil {
		logger.Warn("reading save time", "err", err)
	} else if ok {
		saved = fmt.Sprintf("%s (%s)", ts.Local().Format("2006-01-02 15:04"), cli.FormatAge(ts, b.Now()))
	}

	rows := [][]string{
		{"Database", st.Path()},
		{"Schema version", fmt.Sprintf("%d", st.Version())},
		{"Last saved", saved},
		{"Transactions", cli.FormatNumber(int64(len(l.Expenses)))},
	}
	for _, s := range model.Segments {
		n := len(pipeline.FilterBySegment(l.Expenses, s))
		rows = append(rows, []string{"  " + s.Title(), cli.FormatNumber(int64(n))})
	}
	if len(l.Expenses) > 0 {
		newest, oldest := dateRange(l.Expenses)
		rows = append(rows,
			[]string{"Newest", cli.FormatDate(newest)},
			[]string{"Oldest", cli.FormatDate(oldest)},
		)
	}

	w := pipeline.DailyWindow(l, b.Now())
	window := fmt.Sprintf("%d transactions", w.Transactions)
	if w.Transactions > 0 {
		window += " over " + cli.FormatDays(w.DaysOfData)
	}
	rows = append(rows, []string{fmt.Sprintf("Daily window (%dd)", pipeline.WindowDays), window})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Item", "Value"},
		Rows:    rows,
	}))
	return nil
}

// dateRange returns the newest and oldest transaction dates.
func dateRange(txs []model.Transaction) (newest, oldest time.Time) {
	newest, oldest = txs[0].Date, txs[0].Date
	for _, t := range txs[1:] {
		if t.Date.After(newest) {
			newest = t.Date
		}
		if t.Date.Before(oldest) {
			oldest = t.Date
		}
	}
	return newest, oldest
}
