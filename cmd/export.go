package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/budgetsplit/internal/codec"
	"github.com/theirongolddev/budgetsplit/internal/config"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print a shareable token, link or JSON backup",
	Long: `Print the ledger for another device.

By default this prints a compact token holding the budgets, every bill and
special, and daily transactions from the last 30 days. --url wraps the token
in a link using sync.base_url. --json prints the full ledger as JSON.`,
	RunE: runExport,
}

var (
	exportJSON bool
	exportURL  bool
	exportOut  string
)

func init() {
	exportCmd.Flags().BoolVar(&exportJSON, "json", false, "Full ledger as indented JSON")
	exportCmd.Flags().BoolVar(&exportURL, "url", false, "Wrap the token in a link (needs sync.base_url)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Write to a file instead of stdout")
	exportCmd.MarkFlagsMutuallyExclusive("json", "url")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	b, closeFn, err := openBook()
	if err != nil {
		return err
	}
	defer closeFn()

	var out string
	switch {
	case exportJSON:
		out, err = codec.EncodeJSON(b.Ledger())
	default:
		out, err = codec.Encode(b.Ledger(), b.Now())
		if err == nil && exportURL {
			if cfg.Sync.BaseURL == "" {
				return fmt.Errorf("--url needs sync.base_url in %s", config.ConfigPath())
			}
			out = codec.Link(cfg.Sync.BaseURL, out)
		}
	}
	if err != nil {
		return fmt.Errorf("encoding ledger: %w", err)
	}

	if exportOut == "" {
		fmt.Println(out)
		return nil
	}
	if err := os.WriteFile(exportOut, []byte(out+"\n"), 0o600); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	logger.Info("export written", "path", exportOut, "bytes", len(out))
	return nil
}
