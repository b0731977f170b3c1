package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sawpanic/stockpulse/internal/config"
)

var (
	flagConfigPath string
	flagLogLevel   string
)

// rootCmd is the base command for the stockpulse CLI
var rootCmd = &cobra.Command{
	Use:   "stockpulse",
	Short: "Stock social sentiment collector",
	Long: `stockpulse collects recent chatter about a stock ticker from X, Reddit,
YouTube and StockTwits, scores its sentiment, and attaches Finnhub's
aggregated social sentiment. Sources without credentials degrade to
clearly-marked mock data instead of failing the run.`,
	PersistentPreRunE: setupLogging,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("stockpulse - stock social sentiment collector")
		fmt.Println("Use 'stockpulse fetch <ticker>' to collect sentiment for a ticker")
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to YAML config file (defaults apply when empty)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (trace|debug|info|warn|error)")
}

func setupLogging(cmd *cobra.Command, args []string) error {
	level, err := zerolog.ParseLevel(strings.ToLower(flagLogLevel))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	return nil
}

// loadConfig reads the config file named by --config, or defaults.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
