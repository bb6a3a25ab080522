package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var journalLimit int

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "List recent data-provider fetches",
	Long: `Show the most recent entries of the fetch journal: which symbols and
ranges were fetched, from where, how many bars came back, and how long the
fetch took.

Example:
  stockdash journal --limit 50`,
	RunE: runJournal,
}

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.Flags().IntVar(&journalLimit, "limit", 20, "number of entries to show")
}

func runJournal(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Journal.Type == "none" {
		return fmt.Errorf("journaling is disabled (journal.type: none)")
	}

	jour, err := newJournal(cfg)
	if err != nil {
		return err
	}
	defer jour.Close()

	recs, err := jour.RecentFetches(journalLimit)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Println("No fetches recorded yet.")
		return nil
	}

	fmt.Printf("%-8s %-24s %-8s %6s %8s  %s\n", "Symbol", "Range", "Source", "Bars", "Took", "At")
	for _, rec := range recs {
		fmt.Printf("%-8s %-24s %-8s %6d %8s  %s\n",
			rec.Symbol,
			rec.Start.Format("2006-01-02")+" .. "+rec.End.Format("2006-01-02"),
			rec.Source,
			rec.Bars,
			rec.Duration.Round(time.Millisecond).String(),
			rec.FetchedAt.Format("2006-01-02 15:04:05"),
		)
	}
	return nil
}
