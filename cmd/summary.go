package cmd

import (
	"fmt"

	"github.com/theirongolddev/budgetsplit/internal/cli"
	"github.com/theirongolddev/budgetsplit/internal/model"
	"github.com/theirongolddev/budgetsplit/internal/pipeline"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Projected month per segment (default command)",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	b, closeFn, err := openBook()
	if err != nil {
		return err
	}
	defer closeFn()

	f := formula()
	p := b.Project(f)
	sym := currency()

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BUDGET  %s", cli.FormatDate(p.At))))
	fmt.Println()

	rows := make([][]string, 0, len(model.Segments)+2)
	for _, s := range model.Segments {
		st := p.Segment(s)
		rows = append(rows, []string{
			s.Title(),
			cli.FormatMoney(st.Nominal, sym),
			cli.FormatMoney(st.Total, sym),
			cli.FormatMoney(st.Display, sym),
			cli.FormatPercent(st.Percent),
			cli.RenderStatus(st.OverBudget),
		})
	}
	rows = append(rows,
		[]string{"---"},
		[]string{"Total", "", "", cli.FormatMoney(p.TotalBudget, sym), "", ""},
	)

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Segment", "Budget", "Projected", "Display", "Share", "Status"},
		Rows:    rows,
	}))
	fmt.Println()
	fmt.Printf("  %s\n", cli.RenderAllocationBar(p, 53))
	fmt.Printf("  %s\n", cli.RenderLegend(p))
	fmt.Println()

	w := p.Window
	if w.Transactions == 0 {
		fmt.Println(cli.Muted(fmt.Sprintf("  No daily spending in the last %dd; daily uses the full budget.", pipeline.WindowDays)))
	} else {
		fmt.Println(cli.Muted(fmt.Sprintf("  Daily: %d transactions over %s, net %s (%s formula)",
			w.Transactions, cli.FormatDays(w.DaysOfData), cli.FormatMoney(w.Actual, sym), f)))
	}

	if len(p.Categories) > 0 {
		fmt.Println()
		fmt.Print(renderCategories(p.Categories, sym))
	}
	return nil
}

func renderCategories(shares []model.CategoryShare, sym string) string {
	rows := make([][]string, 0, len(shares))
	for _, c := range shares {
		rows = append(rows, []string{
			string(c.Category),
			cli.FormatMoney(c.Amount, sym),
			cli.FormatPercent(c.Percent),
			cli.RenderShareBar(c.Percent, 20),
		})
	}
	return cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Daily spending by category (last %dd)", pipeline.WindowDays),
		Headers: []string{"Category", "Amount", "Share", ""},
		Rows:    rows,
	})
}
