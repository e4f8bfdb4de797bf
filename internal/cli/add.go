package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <date> <asset> <contracts> <net-profit>",
	Short: "Append a closed trade to the ledger",
	Long: `Append a closed trade to the end of the ledger.

The date is DD/MM (current year) or DD/MM/YYYY. Net profit accepts either
"." or "," as the decimal separator and is already net of fees. The record
lands after all existing records regardless of its date.

Example:
  tradejournal add 05/05/2024 WIN 2 12,50`,
	Args: cobra.ExactArgs(4),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	dateText, asset, contractsText, amountText := args[0], args[1], args[2], args[3]

	contracts, err := strconv.Atoi(contractsText)
	if err != nil {
		return fmt.Errorf("contracts must be a whole number, got %q", contractsText)
	}

	ctx := cmd.Context()
	svc, cleanup, err := newService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	annotated, err := svc.AppendTrade(ctx, dateText, asset, contracts, amountText)
	if err != nil {
		return err
	}

	last := annotated[len(annotated)-1]
	fmt.Printf("Recorded trade #%d: %s %s %dx %.2f (equity %.2f)\n",
		len(annotated), last.Date.Format("02/01/2006"), last.Asset, last.Contracts, last.NetProfit, last.CumulativeEquity)
	return nil
}
