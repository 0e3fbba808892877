package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/budgetsplit/internal/cli"
	"github.com/theirongolddev/budgetsplit/internal/ledger"
	"github.com/theirongolddev/budgetsplit/internal/model"
	"github.com/theirongolddev/budgetsplit/internal/pipeline"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <amount> <label...>",
	Short: "Record an expense or income",
	Example: `  budgetsplit add 12.50 lunch --category "out food"
  budgetsplit add 900 rent -s bills
  budgetsplit add 40 refund --income`,
	RunE: runAdd,
}

var (
	addSegment  string
	addCategory string
	addIncome   bool
	addDate     string
)

func init() {
	addCmd.Flags().StringVarP(&addSegment, "segment", "s", "daily", "Segment: daily, bills or specials")
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "Daily category (default Others)")
	addCmd.Flags().BoolVar(&addIncome, "income", false, "Record as income instead of an expense")
	addCmd.Flags().StringVar(&addDate, "date", "", "Transaction date (RFC3339 or YYYY-MM-DD, default now)")
	rootCmd.AddCommand(addCmd)
}

func runAdd(_ *cobra.Command, args []string) error {
	seg, err := model.ParseSegment(addSegment)
	if err != nil {
		return err
	}

	d := ledger.Draft{
		Segment:  seg,
		Category: addCategory,
		Income:   addIncome,
	}
	if len(args) > 0 {
		d.Amount = args[0]
	}
	if len(args) > 1 {
		d.Label = strings.Join(args[1:], " ")
	}
	if addDate != "" {
		d.Date, err = parseTime(addDate)
		if err != nil {
			return fmt.Errorf("--date: %w", err)
		}
	}

	b, closeFn, err := openBook()
	if err != nil {
		return err
	}
	defer closeFn()

	t, err := b.Add(d)
	if err != nil {
		return err
	}

	sym := currency()
	desc := t.Segment.Title()
	if t.Category != "" {
		desc += " / " + string(t.Category)
	}
	fmt.Printf("  Added %s %s  %s  %s\n",
		cli.FormatSigned(t, sym), t.Label, cli.Muted(desc), cli.Muted(fmt.Sprintf("#%d", t.ID)))

	st := b.Project(formula()).Segment(t.Segment)
	line := fmt.Sprintf("  %s now projects %s of %s", t.Segment.Title(),
		cli.FormatMoney(st.Total, sym), cli.FormatMoney(st.Nominal, sym))
	if st.OverBudget {
		fmt.Println(cli.Warn(line + " (over budget)"))
	} else {
		fmt.Println(cli.Muted(line))
	}
	if t.Segment == model.SegmentDaily && !pipeline.InWindow(t, b.Now()) {
		fmt.Println(cli.Muted(fmt.Sprintf("  Dated outside the last %dd, so the daily projection ignores it.", pipeline.WindowDays)))
	}
	return nil
}
