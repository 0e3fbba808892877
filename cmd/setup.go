package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/budgetsplit/internal/config"
	"github.com/theirongolddev/budgetsplit/internal/model"
	"github.com/theirongolddev/budgetsplit/internal/pipeline"
	"github.com/theirongolddev/budgetsplit/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	b, closeFn, err := openBook()
	if err != nil {
		return err
	}
	defer closeFn()

	l := b.Ledger()
	knobs := map[model.Segment]*string{}
	for _, s := range model.Segments {
		v := l.Knob(s).String()
		knobs[s] = &v
	}

	next := cfg
	themes := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themes = append(themes, huh.NewOption(t.Name, t.Name))
	}

	validKnob := func(s string) error {
		v, err := parseKnob(s)
		if err != nil {
			return errors.New("enter a number")
		}
		if v.IsNegative() {
			return errors.New("must be zero or more")
		}
		return nil
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to budgetsplit").
				Description("Three budgets: monthly bills, monthly specials\nand a per-day allowance for everything else."),
			huh.NewInput().Title("Monthly bills budget").Value(knobs[model.SegmentBills]).Validate(validKnob),
			huh.NewInput().Title("Monthly specials budget").Value(knobs[model.SegmentSpecials]).Validate(validKnob),
			huh.NewInput().Title("Daily budget (per day)").Value(knobs[model.SegmentDaily]).Validate(validKnob),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Daily projection").
				Options(
					huh.NewOption("Blend: budget for unseen days plus actual spend", pipeline.FormulaBlend.String()),
					huh.NewOption("Ratio: scale actual spend to 30 days", pipeline.FormulaRatio.String()),
				).
				Value(&next.General.DailyFormula),
			huh.NewInput().Title("Currency symbol").Value(&next.General.CurrencySymbol),
			huh.NewInput().
				Title("Share link base URL").
				Description("Used by export --url. Leave blank to skip.").
				Value(&next.Sync.BaseURL),
			huh.NewSelect[string]().Title("Color theme").Options(themes...).Value(&next.Appearance.Theme),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing changed.")
			return nil
		}
		return err
	}

	for _, s := range model.Segments {
		v, _ := parseKnob(*knobs[s])
		if v.Equal(l.Knob(s)) {
			continue
		}
		if err := b.SetKnob(s, v); err != nil {
			return err
		}
	}

	if err := config.Save(next); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	cfg = next

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `budgetsplit setup` anytime to reconfigure.")
	return nil
}
