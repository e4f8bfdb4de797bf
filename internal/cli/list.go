package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the annotated trade ledger",
	Long: `Show every trade with its derived running columns: cumulative equity,
peak equity, drawdown percent and per-trade return percent. The columns are
recomputed from the raw records on every invocation.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := newService(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	annotated := svc.AnnotatedLedger()
	if len(annotated) == 0 {
		fmt.Println("Ledger is empty.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tDATE\tASSET\tQTY\tNET\tEQUITY\tPEAK\tDD%\tRET%")
	for i, at := range annotated {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\n",
			i+1, at.Date.Format("02/01/2006"), at.Asset, at.Contracts,
			at.NetProfit, at.CumulativeEquity, at.PeakEquity, at.DrawdownPct, at.PercentReturn)
	}
	return w.Flush()
}
