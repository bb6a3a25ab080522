package cmd

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/stockdash/analysis"
)

var (
	analyzeStart  string
	analyzeEnd    string
	analyzeShort  int
	analyzeLong   int
	analyzeWindow int
	analyzeK      float64
	analyzeTail   int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze SYMBOL",
	Short: "Fetch prices and print moving averages and Bollinger Bands",
	Long: `One-shot analysis: fetch the closing-price history for a ticker and
date range, compute both moving averages and the Bollinger Bands, and print
the tail of the resulting table.

Examples:
  stockdash analyze AAPL
  stockdash analyze MSFT --start 2024-01-01 --end 2024-06-30 --short 10 --long 30
  stockdash analyze AAPL --csv exports/AAPL.csv.xz`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeStart, "start", "", "start date YYYY-MM-DD (default: two years ago)")
	analyzeCmd.Flags().StringVar(&analyzeEnd, "end", "", "end date YYYY-MM-DD (default: today)")
	analyzeCmd.Flags().IntVar(&analyzeShort, "short", 0, "short SMA window (default from config)")
	analyzeCmd.Flags().IntVar(&analyzeLong, "long", 0, "long SMA window (default from config)")
	analyzeCmd.Flags().IntVar(&analyzeWindow, "window", 0, "Bollinger window (default from config)")
	analyzeCmd.Flags().Float64Var(&analyzeK, "k", 0, "Bollinger std multiplier (default from config)")
	analyzeCmd.Flags().IntVar(&analyzeTail, "tail", 10, "rows of the result table to print")
}

// parseDates resolves --start/--end, defaulting to the last two years.
func parseDates(startStr, endStr string) (start, end time.Time, err error) {
	end = time.Now().UTC().Truncate(24 * time.Hour)
	start = end.AddDate(-2, 0, 0)

	if startStr != "" {
		start, err = time.Parse("2006-01-02", startStr)
		if err != nil {
			return start, end, fmt.Errorf("bad --start: %w", err)
		}
	}
	if endStr != "" {
		end, err = time.Parse("2006-01-02", endStr)
		if err != nil {
			return start, end, fmt.Errorf("bad --end: %w", err)
		}
	}
	return start, end, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	symbol := strings.ToUpper(args[0])

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	start, end, err := parseDates(analyzeStart, analyzeEnd)
	if err != nil {
		return err
	}

	svc, jour, err := newService(cfg, symbol)
	if err != nil {
		return err
	}
	defer jour.Close()

	p := analysis.Params{
		Symbol:      symbol,
		Start:       start,
		End:         end,
		ShortWindow: analyzeShort,
		LongWindow:  analyzeLong,
		BollWindow:  analyzeWindow,
		BollK:       analyzeK,
	}
	if p.ShortWindow == 0 {
		p.ShortWindow = cfg.Analysis.ShortWindow
	}
	if p.LongWindow == 0 {
		p.LongWindow = cfg.Analysis.LongWindow
	}
	if p.BollWindow == 0 {
		p.BollWindow = cfg.Analysis.BollWindow
	}
	if p.BollK == 0 {
		p.BollK = cfg.Analysis.BollK
	}

	report, err := svc.Analyze(cmd.Context(), p)
	if err != nil {
		return err
	}

	fmt.Printf("Analysis for %s (%s .. %s, %d bars)\n\n",
		report.Symbol, report.Dates[0], report.Dates[len(report.Dates)-1], len(report.Dates))

	fmt.Printf("%-12s %10s %10s %10s %10s %10s\n",
		"Date", "Close",
		fmt.Sprintf("SMA%d", report.ShortWindow),
		fmt.Sprintf("SMA%d", report.LongWindow),
		"BollUp", "BollLow")

	from := len(report.Dates) - analyzeTail
	if from < 0 {
		from = 0
	}
	for i := from; i < len(report.Dates); i++ {
		fmt.Printf("%-12s %10.2f %10s %10s %10s %10s\n",
			report.Dates[i], report.Close[i],
			cell(report.SMAShort[i]), cell(report.SMALong[i]),
			cell(report.BollUpper[i]), cell(report.BollLower[i]))
	}

	return nil
}

// cell formats a derived value, dash for undefined positions.
func cell(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.2f", v)
}
