package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"tradejournal/internal/adapters/csvfile"
	"tradejournal/internal/adapters/logger"
)

var exportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Export the raw ledger to a CSV file",
	Long: `Export the raw trade records to a CSV file at the given path.

Only the raw columns are written; derived columns are a display convenience
and are recomputed on load, never persisted as a source of truth.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, cleanup, err := newService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	out, err := csvfile.NewRepository(csvfile.Config{
		Path:   args[0],
		Logger: logger.NewStdLogger(logger.LevelWarn),
	})
	if err != nil {
		return err
	}

	records := svc.Records()
	if err := out.Save(ctx, records); err != nil {
		return err
	}
	fmt.Printf("Exported %d trades to %s\n", len(records), args[0])
	return nil
}
