package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sawpanic/stockpulse/internal/config"
)

// keysCmd implements the 'stockpulse keys' command
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Show which provider credentials are configured",
	Long: `Report which provider credentials are present in the environment.
Missing credentials are not errors: the affected source falls back to
clearly-marked mock data.

Credentials are read from:
  TWITTER_BEARER_TOKEN
  REDDIT_CLIENT_ID, REDDIT_CLIENT_SECRET, REDDIT_USER_AGENT
  YOUTUBE_API_KEY
  FINNHUB_API_KEY
  STOCKTWITS_TOKEN (optional; StockTwits works anonymously)`,
	RunE: runKeys,
}

func init() {
	rootCmd.AddCommand(keysCmd)
}

func runKeys(cmd *cobra.Command, args []string) error {
	status := config.LoadKeys().Status()

	names := make([]string, 0, len(status))
	for name := range status {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Credential\tStatus")
	fmt.Fprintln(w, "----------\t------")
	for _, name := range names {
		state := "missing"
		if status[name] {
			state = "configured"
		}
		fmt.Fprintf(w, "%s\t%s\n", name, state)
	}
	return w.Flush()
}
