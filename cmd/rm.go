package cmd

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/budgetsplit/internal/cli"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove", "delete"},
	Short:   "Delete a transaction by id",
	Args:    cobra.ExactArgs(1),
	RunE:    runRm,
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

func runRm(_ *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", args[0])
	}

	b, closeFn, err := openBook()
	if err != nil {
		return err
	}
	defer closeFn()

	t, err := b.Remove(id)
	if err != nil {
		return err
	}
	fmt.Printf("  Removed %s %s  %s\n", cli.FormatSigned(t, currency()), t.Label, cli.Muted(t.Segment.Title()))
	return nil
}
