package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tradejournal/config"
	"tradejournal/internal/adapters/csvfile"
	"tradejournal/internal/adapters/logger"
	"tradejournal/internal/adapters/sqlite"
	"tradejournal/internal/app"
	"tradejournal/internal/ports"
)

var rootCmd = &cobra.Command{
	Use:   "tradejournal",
	Short: "Personal trade ledger with running performance analytics",
	Long: `tradejournal keeps an append-only ledger of executed trades and derives
running performance metrics from it.

Every read recomputes cumulative equity, peak equity, drawdown and per-trade
return from the raw records, plus aggregate indicators (hit rate, expectancy,
profit factor, Sharpe-like and Sortino-like ratios) over the whole ledger.

Examples:
  tradejournal add 05/05/2024 WIN 2 12,50
  tradejournal list
  tradejournal stats --drawdowns
  tradejournal export trades.csv`,
}

var (
	flagStorage    string
	flagDBPath     string
	flagCSVPath    string
	flagLogLevel   string
	flagSortByDate bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagStorage, "storage", "", "ledger storage backend: sqlite or csv (default from env)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "sqlite database path")
	rootCmd.PersistentFlags().StringVar(&flagCSVPath, "csv", "", "csv ledger path")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: DEBUG, INFO, WARN or ERROR")
	rootCmd.PersistentFlags().BoolVar(&flagSortByDate, "sort-by-date", false, "order the ledger by trade date before computing metrics")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newService wires config, logger, storage and the ledger service, and loads
// the persisted ledger. The returned func releases the storage handle.
func newService(ctx context.Context) (*app.LedgerService, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if flagStorage != "" {
		cfg.Storage = flagStorage
	}
	if flagDBPath != "" {
		cfg.DBPath = flagDBPath
	}
	if flagCSVPath != "" {
		cfg.CSVPath = flagCSVPath
	}
	if flagLogLevel != "" {
		cfg.LogLevel = logger.ParseLevel(flagLogLevel)
	}
	if flagSortByDate {
		cfg.SortByDate = true
	}

	appLogger := logger.NewStdLogger(cfg.LogLevel)

	var repo ports.LedgerRepository
	switch cfg.Storage {
	case config.StorageCSV:
		repo, err = csvfile.NewRepository(csvfile.Config{Path: cfg.CSVPath, Logger: appLogger})
	case config.StorageSQLite:
		repo, err = sqlite.NewRepository(sqlite.Config{DBPath: cfg.DBPath, Logger: appLogger})
	default:
		err = fmt.Errorf("%w: unknown storage backend %q", ports.ErrConfigurationError, cfg.Storage)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize ledger storage: %w", err)
	}

	svc, err := app.NewLedgerService(app.Config{
		Repo:       repo,
		Logger:     appLogger,
		SortByDate: cfg.SortByDate,
	})
	if err != nil {
		repo.Close()
		return nil, nil, err
	}
	if err := svc.Load(ctx); err != nil {
		repo.Close()
		return nil, nil, fmt.Errorf("failed to load trade ledger: %w", err)
	}

	cleanup := func() {
		if err := repo.Close(); err != nil {
			appLogger.Error(ctx, err, "Error closing ledger storage")
		}
	}
	return svc, cleanup, nil
}
