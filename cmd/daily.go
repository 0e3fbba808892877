package cmd

import (
	"fmt"

	"github.com/theirongolddev/budgetsplit/internal/cli"
	"github.com/theirongolddev/budgetsplit/internal/pipeline"

	"github.com/spf13/cobra"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Daily spending per day against the daily budget",
	RunE:  runDaily,
}

var dailyDays int

func init() {
	dailyCmd.Flags().IntVarP(&dailyDays, "days", "n", int(pipeline.WindowDays), "Number of days to show")
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(_ *cobra.Command, _ []string) error {
	if dailyDays < 1 {
		return fmt.Errorf("--days must be at least 1")
	}

	b, closeFn, err := openBook()
	if err != nil {
		return err
	}
	defer closeFn()

	l := b.Ledger()
	now := b.Now()
	days := pipeline.AggregateDays(l.Expenses, now.AddDate(0, 0, -(dailyDays-1)), now)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("DAILY SPENDING  Last %dd", dailyDays)))
	fmt.Println()

	sym := currency()
	rows := make([][]string, 0, len(days))
	for _, d := range days {
		net := d.Net()
		status := ""
		if l.Daily.IsPositive() || net.IsPositive() {
			status = cli.RenderStatus(net.GreaterThan(l.Daily))
		}
		rows = append(rows, []string{
			d.Date.Format("2006-01-02"),
			d.Date.Format("Mon"),
			cli.FormatNumber(int64(d.Transactions)),
			cli.FormatMoney(d.Spent, sym),
			cli.FormatMoney(d.Income, sym),
			cli.FormatMoney(net, sym),
			status,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Day", "Txns", "Spent", "Income", "Net", "Status"},
		Rows:    rows,
	}))

	fmt.Printf("\n  Daily budget %s · %d of %d days over\n",
		cli.FormatMoney(l.Daily, sym), pipeline.DaysOverAllowance(days, l.Daily), len(days))
	return nil
}
