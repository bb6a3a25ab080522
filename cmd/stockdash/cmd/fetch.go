package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var (
	fetchStart string
	fetchEnd   string
	fetchOut   string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch SYMBOL",
	Short: "Fetch raw daily bars and print or export them as CSV",
	Long: `Fetch the raw OHLCV history for a ticker and date range. Without
--out the CSV goes to stdout; with it, to a file reloadable later through
--csv or the import command.

Examples:
  stockdash fetch AAPL --start 2024-01-01 --end 2024-06-30
  stockdash fetch MSFT --out MSFT.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().StringVar(&fetchStart, "start", "", "start date YYYY-MM-DD (default: two years ago)")
	fetchCmd.Flags().StringVar(&fetchEnd, "end", "", "end date YYYY-MM-DD (default: today)")
	fetchCmd.Flags().StringVarP(&fetchOut, "out", "o", "", "write CSV to this file instead of stdout")
}

func runFetch(cmd *cobra.Command, args []string) error {
	symbol := strings.ToUpper(args[0])

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	start, end, err := parseDates(fetchStart, fetchEnd)
	if err != nil {
		return err
	}

	svc, jour, err := newService(cfg, symbol)
	if err != nil {
		return err
	}
	defer jour.Close()

	candles, err := svc.History(cmd.Context(), symbol, start, end)
	if err != nil {
		return err
	}

	out := os.Stdout
	if fetchOut != "" {
		f, err := os.Create(fetchOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", fetchOut, err)
		}
		defer f.Close()
		out = f
	}

	w := csv.NewWriter(out)
	if err := w.Write([]string{"Date", "Open", "High", "Low", "Close", "Volume"}); err != nil {
		return err
	}
	for _, c := range candles {
		rec := []string{
			c.Date(),
			strconv.FormatFloat(c.Open, 'f', -1, 64),
			strconv.FormatFloat(c.High, 'f', -1, 64),
			strconv.FormatFloat(c.Low, 'f', -1, 64),
			strconv.FormatFloat(c.Close, 'f', -1, 64),
			strconv.FormatFloat(c.Volume, 'f', -1, 64),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	if fetchOut != "" {
		fmt.Printf("✓ Wrote %d bars to %s\n", len(candles), fetchOut)
	}
	return nil
}
