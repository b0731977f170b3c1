package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sawpanic/stockpulse/internal/analysis"
	"github.com/sawpanic/stockpulse/internal/config"
	"github.com/sawpanic/stockpulse/internal/models"
	"github.com/sawpanic/stockpulse/internal/pipeline"
)

// fetchCmd implements the 'stockpulse fetch' command
var fetchCmd = &cobra.Command{
	Use:   "fetch <ticker>",
	Short: "Collect and score social sentiment for a ticker",
	Long: `Collect recent posts and comments mentioning a ticker from all
configured sources, deduplicate them, score their sentiment, and print a
summary.

Examples:
  stockpulse fetch AAPL
  stockpulse fetch AAPL --company "Apple"
  stockpulse fetch TSLA --x-limit 50 --format json
  stockpulse fetch NVDA --timeout 3m`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

// Fetch command flags
var (
	fetchCompany     string
	fetchFormat      string
	fetchTimeout     time.Duration
	fetchXLimit      int
	fetchRedditPosts int
	fetchYTComments  int
	fetchSTLimit     int
	fetchShowAll     bool
)

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVar(&fetchCompany, "company", "", "Company name to widen source queries")
	fetchCmd.Flags().StringVar(&fetchFormat, "format", "table", "Output format (table|json)")
	fetchCmd.Flags().DurationVar(&fetchTimeout, "timeout", 5*time.Minute, "Overall collection timeout")
	fetchCmd.Flags().IntVar(&fetchXLimit, "x-limit", 0, "Override the X tweet limit")
	fetchCmd.Flags().IntVar(&fetchRedditPosts, "reddit-posts", 0, "Override posts per subreddit")
	fetchCmd.Flags().IntVar(&fetchYTComments, "youtube-comments", 0, "Override comments per video")
	fetchCmd.Flags().IntVar(&fetchSTLimit, "stocktwits-limit", 0, "Override the StockTwits message limit")
	fetchCmd.Flags().BoolVar(&fetchShowAll, "all", false, "Print every collected item, not just the summary")
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if fetchXLimit > 0 {
		cfg.Collection.X.Limit = fetchXLimit
	}
	if fetchRedditPosts > 0 {
		cfg.Collection.Reddit.PostsPerSubreddit = fetchRedditPosts
	}
	if fetchYTComments > 0 {
		cfg.Collection.YouTube.CommentsPerVideo = fetchYTComments
	}
	if fetchSTLimit > 0 {
		cfg.Collection.StockTwits.Limit = fetchSTLimit
	}
	keys := config.LoadKeys()

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	log.Info().
		Str("command", "fetch").
		Str("ticker", args[0]).
		Str("company", fetchCompany).
		Msg("starting collection")

	p := pipeline.New(keys, cfg.Collection)
	result, err := p.Fetch(ctx, args[0], fetchCompany)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	scored := analysis.Analyze(result.Items, analysis.NewLexiconScorer())

	switch fetchFormat {
	case "json":
		return outputFetchJSON(scored, result)
	default:
		return outputFetchTable(scored, result)
	}
}

func outputFetchJSON(scored []analysis.ScoredItem, result models.FetchResult) error {
	out := struct {
		Items        []analysis.ScoredItem       `json:"items"`
		Summary      analysis.Summary            `json:"summary"`
		ByPlatform   map[string]analysis.Summary `json:"by_platform"`
		Distribution map[string]int              `json:"distribution"`
		Warnings     []string                    `json:"warnings"`
		Finnhub      *models.AggregatedSentiment `json:"finnhub,omitempty"`
	}{
		Items:        scored,
		Summary:      analysis.Summarize(scored),
		ByPlatform:   analysis.PlatformBreakdown(scored),
		Distribution: analysis.Distribution(scored),
		Warnings:     result.Warnings,
		Finnhub:      result.Finnhub,
	}
	if out.Warnings == nil {
		out.Warnings = []string{}
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func outputFetchTable(scored []analysis.ScoredItem, result models.FetchResult) error {
	summary := analysis.Summarize(scored)

	for _, warning := range result.Warnings {
		fmt.Printf("WARNING: %s\n", warning)
	}
	if len(result.Warnings) > 0 {
		fmt.Println()
	}

	fmt.Printf("Collected %d items (positive %d / negative %d / neutral %d)\n",
		summary.Total, summary.Positive, summary.Negative, summary.Neutral)
	fmt.Printf("Overall sentiment: %s (mean compound %.3f)\n", summary.OverallLabel, summary.MeanCompound)
	if summary.SyntheticOnly {
		fmt.Println("NOTE: all items are mock fallback data; no live source responded")
	}
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Platform\tItems\tPositive\tNegative\tNeutral\tMean")
	fmt.Fprintln(w, "--------\t-----\t--------\t--------\t-------\t----")
	for platform, s := range analysis.PlatformBreakdown(scored) {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%.3f\n",
			platform, s.Total, s.Positive, s.Negative, s.Neutral, s.MeanCompound)
	}
	w.Flush()

	if agg := result.Finnhub; agg != nil {
		fmt.Println()
		fmt.Printf("Finnhub aggregated sentiment for %s:\n", agg.Symbol)
		fmt.Printf("  Reddit:  %d mentions (pos %.3f / neg %.3f)\n",
			agg.RedditMentions, agg.RedditPositiveScore, agg.RedditNegativeScore)
		fmt.Printf("  Twitter: %d mentions (pos %.3f / neg %.3f)\n",
			agg.TwitterMentions, agg.TwitterPositiveScore, agg.TwitterNegativeScore)
	}

	if fetchShowAll {
		fmt.Println()
		for _, it := range scored {
			ts := ""
			if it.CreatedAt != nil {
				ts = it.CreatedAt.Format(time.RFC3339)
			}
			fmt.Printf("[%s] %s %s (%.3f)\n  %s\n", it.Platform, ts, it.Label, it.Scores.Compound, it.Text)
		}
	}
	return nil
}
