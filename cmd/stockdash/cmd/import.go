package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/stockdash/feed/csvfile"
	"github.com/rustyeddy/stockdash/market"
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Validate an offline CSV export and summarize its contents",
	Long: `Load a CSV export (.csv, .csv.xz, or a .zip of CSVs) and report what
it contains. Useful before pointing analyze or serve at it with --csv.

Examples:
  stockdash import exports/AAPL.csv
  stockdash import exports/history.zip`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	candles, err := csvfile.Load(args[0])
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	if len(candles) == 0 {
		return fmt.Errorf("import: %s holds no bars", args[0])
	}

	closes := market.Closes(candles)
	lo, hi := closes[0], closes[0]
	for _, c := range closes {
		if c < lo {
			lo = c
		}
		if c > hi {
			hi = c
		}
	}

	fmt.Printf("✓ %s\n", args[0])
	fmt.Printf("  Bars:   %d (%s .. %s)\n", len(candles), candles[0].Date(), candles[len(candles)-1].Date())
	fmt.Printf("  Close:  %.2f .. %.2f\n", lo, hi)
	fmt.Printf("  Sorted: %v\n", market.Ascending(candles))
	return nil
}
