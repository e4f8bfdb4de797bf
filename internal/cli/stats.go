package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"tradejournal/internal/analytics"
)

var statsDrawdowns bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate performance indicators",
	Long: `Show the aggregate indicator set computed over the whole ledger.

Indicators with a degenerate denominator (profit factor without losses,
Sharpe-like ratio with zero deviation, Sortino-like ratio below two losses)
are reported as N/A rather than a misleading number.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsDrawdowns, "drawdowns", false, "also list drawdown events")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := newService(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	ind := svc.Indicators()
	if ind == nil {
		fmt.Println("Ledger is empty.")
		return nil
	}

	fmt.Printf("Trades:            %d (%d wins / %d losses / %d break-even)\n",
		ind.TotalTrades, ind.WinningTrades, ind.LosingTrades, ind.BreakEvenTrades)
	fmt.Printf("Hit rate:          %.2f%%\n", ind.HitRatePct)
	fmt.Printf("Net profit:        %.2f\n", ind.NetProfit)
	fmt.Printf("Gross profit:      %.2f\n", ind.GrossProfit)
	fmt.Printf("Gross loss:        %.2f\n", ind.GrossLoss)
	fmt.Printf("Avg per trade:     %.2f\n", ind.AvgReturn)
	fmt.Printf("Std deviation:     %.2f\n", ind.StdDev)
	fmt.Printf("Expectancy:        %.2f\n", ind.Expectancy)
	fmt.Printf("Profit factor:     %s\n", fmtRatio(ind.ProfitFactor))
	fmt.Printf("Sharpe-like:       %s\n", fmtRatio(ind.SharpeLike))
	fmt.Printf("Sortino-like:      %s\n", fmtRatio(ind.SortinoLike))
	fmt.Printf("Max drawdown:      %.2f%%\n", ind.MaxDrawdownPct)
	fmt.Printf("Win/loss streaks:  %d / %d\n", ind.MaxConsecutiveWins, ind.MaxConsecutiveLosses)

	if len(ind.ByAsset) > 0 {
		fmt.Println("\nPer asset:")
		assets := make([]string, 0, len(ind.ByAsset))
		for asset := range ind.ByAsset {
			assets = append(assets, asset)
		}
		sort.Strings(assets)
		for _, asset := range assets {
			tally := ind.ByAsset[asset]
			fmt.Printf("  %-6s %3d trades  %10.2f\n", asset, tally.Trades, tally.NetProfit)
		}
	}

	if statsDrawdowns {
		printDrawdowns(svc.Drawdowns())
	}
	return nil
}

func printDrawdowns(events []analytics.DrawdownEvent) {
	fmt.Println("\nDrawdown events:")
	if len(events) == 0 {
		fmt.Println("  none")
		return
	}
	for _, ev := range events {
		recovery := "open"
		if ev.RecoveryIndex >= 0 {
			recovery = fmt.Sprintf("trade %d", ev.RecoveryIndex+1)
		}
		fmt.Printf("  trade %d -> %s: peak %.2f, trough %.2f (%.2f%%)\n",
			ev.StartIndex+1, recovery, ev.PeakEquity, ev.TroughEquity, ev.DepthPct)
	}
}

// fmtRatio renders an undefined ratio as N/A, never as a number.
func fmtRatio(r analytics.Ratio) string {
	if !r.Valid {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", r.Float64)
}
