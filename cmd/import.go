package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/theirongolddev/budgetsplit/internal/cli"
	"github.com/theirongolddev/budgetsplit/internal/codec"
	"github.com/theirongolddev/budgetsplit/internal/ledger"
	"github.com/theirongolddev/budgetsplit/internal/model"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [token|url|json|-]",
	Short: "Bring in a ledger exported from another device",
	Long: `Import a token, a link carrying a token after '#', or a JSON backup.
With no argument or "-" the input is read from stdin.

Tokens can be merged (imported budgets win, local entries win on id clash) or
replace the local ledger. JSON backups can only replace it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

var (
	importMerge   bool
	importReplace bool
	importYes     bool
	importFile    string
)

func init() {
	importCmd.Flags().BoolVar(&importMerge, "merge", false, "Merge without asking")
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "Replace without asking")
	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "Accept the default (merge for tokens, replace for JSON)")
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "Read the input from a file")
	importCmd.MarkFlagsMutuallyExclusive("merge", "replace")
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	input, fromStdin, err := readImportInput(args)
	if err != nil {
		return err
	}

	imported, env, err := codec.DecodeAny(input)
	switch {
	case errors.Is(err, codec.ErrDecodeFailure):
		return fmt.Errorf("could not decode the %s, nothing was changed: %w", env, err)
	case errors.Is(err, ledger.ErrMalformedImport):
		return fmt.Errorf("the %s is not a valid ledger, nothing was changed: %w", env, err)
	case err != nil:
		return err
	}

	b, closeFn, err := openBook()
	if err != nil {
		return err
	}
	defer closeFn()

	local := b.Ledger()
	printImportPreview(local, imported)

	choice, err := importChoice(env, fromStdin)
	if err != nil {
		return err
	}

	result, err := b.Import(imported, choice)
	if err != nil {
		return err
	}
	if choice == ledger.ChoiceSkip {
		fmt.Println("  Import skipped, nothing changed.")
		return nil
	}
	fmt.Printf("  Import (%s) done: %d transactions, was %d\n",
		choice, len(result.Expenses), len(local.Expenses))
	return nil
}

func readImportInput(args []string) (string, bool, error) {
	switch {
	case importFile != "":
		data, err := os.ReadFile(importFile)
		if err != nil {
			return "", false, fmt.Errorf("reading import file: %w", err)
		}
		return string(data), false, nil
	case len(args) == 1 && args[0] != "-":
		return args[0], false, nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", true, fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), true, nil
}

func printImportPreview(local, imported model.Ledger) {
	sym := currency()
	fresh := 0
	for _, t := range imported.Expenses {
		if _, ok := local.Find(t.ID); !ok {
			fresh++
		}
	}
	fmt.Println()
	fmt.Printf("  Incoming: %d transactions, %d not on this device\n", len(imported.Expenses), fresh)
	fmt.Printf("  Budgets:  bills %s  specials %s  daily %s/day\n",
		cli.FormatMoney(imported.Bills, sym),
		cli.FormatMoney(imported.Specials, sym),
		cli.FormatMoney(imported.Daily, sym))
	fmt.Println(cli.Muted(fmt.Sprintf("  Local:    %d transactions", len(local.Expenses))))
	fmt.Println()
}

// importChoice resolves the flags, prompting only when nothing was decided
// on the command line and stdin is free for the prompt.
func importChoice(env codec.Envelope, fromStdin bool) (ledger.ImportChoice, error) {
	if importMerge && env == codec.EnvelopeJSON {
		return ledger.ChoiceSkip, errors.New("JSON backups can only replace the ledger, use --replace")
	}
	switch {
	case importMerge:
		return ledger.ChoiceMerge, nil
	case importReplace:
		return ledger.ChoiceReplace, nil
	case importYes && env == codec.EnvelopeJSON:
		return ledger.ChoiceReplace, nil
	case importYes:
		return ledger.ChoiceMerge, nil
	case fromStdin:
		return ledger.ChoiceSkip, errors.New("input came from stdin, pass --merge, --replace or --yes")
	}

	options := []huh.Option[ledger.ImportChoice]{
		huh.NewOption("Merge with this device", ledger.ChoiceMerge),
		huh.NewOption("Replace this device's ledger", ledger.ChoiceReplace),
		huh.NewOption("Skip", ledger.ChoiceSkip),
	}
	if env == codec.EnvelopeJSON {
		options = options[1:]
	}

	choice := options[0].Value
	err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[ledger.ImportChoice]().
			Title("Import ledger").
			Options(options...).
			Value(&choice),
	)).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return ledger.ChoiceSkip, nil
	}
	return choice, err
}
