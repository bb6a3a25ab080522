package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/stockdash/analysis"
	"github.com/rustyeddy/stockdash/cache"
	"github.com/rustyeddy/stockdash/config"
	"github.com/rustyeddy/stockdash/feed"
	"github.com/rustyeddy/stockdash/feed/csvfile"
	"github.com/rustyeddy/stockdash/feed/yahoo"
	"github.com/rustyeddy/stockdash/journal"
)

var (
	cfgFile string
	csvPath string
)

var rootCmd = &cobra.Command{
	Use:   "stockdash",
	Short: "A stock analysis dashboard: moving averages and Bollinger Bands over Yahoo Finance data",
	Long: `Stockdash fetches historical daily stock prices for a ticker and date
range, computes simple moving averages and Bollinger Bands, and serves two
interactive charts plus a raw-data table on a single-page web dashboard.

It provides tools for:
  - Serving the dashboard and its JSON API
  - One-shot analysis and raw-data fetches from the command line
  - Importing offline CSV exports (.csv, .csv.xz, .zip)
  - Inspecting the provider fetch journal`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "stockdash.yaml", "config file path")
	rootCmd.PersistentFlags().StringVar(&csvPath, "csv", "", "analyze an offline CSV export instead of the network provider")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log_level: %w", err)
	}
	log.SetLevel(level)

	return cfg, nil
}

// newProvider selects the data source: an offline CSV export when --csv is
// given (symbol names the ticker it holds), otherwise Yahoo Finance.
func newProvider(cfg *config.Config, symbol string) (feed.Provider, error) {
	if csvPath != "" {
		return csvfile.Open(symbol, csvPath)
	}

	timeout, err := cfg.Provider.ParseTimeout()
	if err != nil {
		return nil, err
	}
	return yahoo.NewClient(cfg.Provider.BaseURL, timeout), nil
}

func newJournal(cfg *config.Config) (journal.Journal, error) {
	if cfg.Journal.Type == "none" {
		return journal.Noop{}, nil
	}
	return journal.NewSQLite(cfg.Journal.DBPath)
}

func newService(cfg *config.Config, symbol string) (*analysis.Service, journal.Journal, error) {
	provider, err := newProvider(cfg, symbol)
	if err != nil {
		return nil, nil, err
	}
	jour, err := newJournal(cfg)
	if err != nil {
		return nil, nil, err
	}

	ttl, err := cfg.Cache.ParseTTL()
	if err != nil {
		return nil, nil, err
	}
	return analysis.NewService(provider, cache.New(ttl), jour), jour, nil
}
