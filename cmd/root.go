package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/theirongolddev/budgetsplit/internal/book"
	"github.com/theirongolddev/budgetsplit/internal/config"
	"github.com/theirongolddev/budgetsplit/internal/pipeline"
	"github.com/theirongolddev/budgetsplit/internal/store"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	flagDB      string
	flagNow     string
	flagQuiet   bool
	flagVerbose bool
)

var (
	cfg    = config.DefaultConfig()
	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "budgetsplit"})
)

var rootCmd = &cobra.Command{
	Use:               "budgetsplit",
	Short:             "Three-segment budget calculator",
	Long:              "Track daily spending, bills and specials against their budgets and see where the month is heading.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Ledger database path (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagNow, "now", "", "Evaluate as of this time (RFC3339 or YYYY-MM-DD)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log errors")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")
}

// setup loads .env and the config file and configures logging. It runs
// before every command.
func setup(_ *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	loaded, err := config.Load()
	if err != nil {
		return err
	}
	cfg = loaded

	level, err := log.ParseLevel(config.LogLevel(cfg))
	if err != nil {
		level = log.WarnLevel
	}
	switch {
	case flagVerbose:
		level = log.DebugLevel
	case flagQuiet:
		level = log.ErrorLevel
	}
	logger.SetLevel(level)

	if _, err := clock(); err != nil {
		return err
	}
	return nil
}

// openStore opens the ledger database named by --db or the config. The
// returned func closes it.
func openStore() (*store.Store, func(), error) {
	path := flagDB
	if path == "" {
		path = config.StorePath(cfg)
	}

	st, err := store.Open(path, store.LedgerKey, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("opening ledger store: %w", err)
	}
	closeFn := func() {
		if err := st.Close(); err != nil {
			logger.Warn("closing store", "err", err)
		}
	}
	return st, closeFn, nil
}

// openBook opens the ledger store and loads the book. The returned func
// closes the store.
func openBook() (*book.Book, func(), error) {
	st, closeFn, err := openStore()
	if err != nil {
		return nil, nil, err
	}

	now, _ := clock()
	b, err := book.Open(st, now, logger.With("component", "book"))
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return b, closeFn, nil
}

// clock returns the time source for projections: --now when given, the
// wall clock otherwise.
func clock() (book.Clock, error) {
	if flagNow == "" {
		return time.Now, nil
	}
	t, err := parseTime(flagNow)
	if err != nil {
		return nil, fmt.Errorf("--now: %w", err)
	}
	return func() time.Time { return t }, nil
}

// parseTime accepts RFC3339 or a local date.
func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (want RFC3339 or YYYY-MM-DD)", s)
	}
	return t, nil
}

func formula() pipeline.Formula {
	f, err := pipeline.ParseFormula(cfg.General.DailyFormula)
	if err != nil {
		logger.Warn("falling back to blend formula", "err", err)
	}
	return f
}

func currency() string {
	return cfg.General.CurrencySymbol
}
