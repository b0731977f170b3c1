// Package pipeline composes the five source adapters into one fetch. The
// pipeline itself performs no error recovery: adapters degrade internally
// and the merge here is a total function over their closed outcome set.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sawpanic/stockpulse/internal/config"
	"github.com/sawpanic/stockpulse/internal/metrics"
	"github.com/sawpanic/stockpulse/internal/models"
	"github.com/sawpanic/stockpulse/internal/net/ratelimit"
	"github.com/sawpanic/stockpulse/internal/normalize"
	"github.com/sawpanic/stockpulse/internal/sources"
)

// AggregatedSource produces provider-aggregated sentiment instead of text
// items. A non-empty warning signals an unavailable or degraded fetch.
type AggregatedSource interface {
	Fetch(ctx context.Context, ticker string) (*models.AggregatedSentiment, string)
}

// Pipeline runs all configured sources sequentially, in a fixed order,
// each paced by its own rate limiter.
type Pipeline struct {
	sources []sources.TextSource
	finnhub AggregatedSource
	metrics *metrics.Collector
}

// New builds the production pipeline: X, Reddit, YouTube, StockTwits in
// invocation order plus Finnhub for aggregated sentiment, honoring the
// enable flags in cfg. Every adapter gets a dedicated pacer so one
// throttled source never stalls another's pacing.
func New(keys config.Keys, cfg config.Collection) *Pipeline {
	srcs := []sources.TextSource{
		sources.NewXClient(keys.TwitterBearerToken, cfg.X.Limit, ratelimit.NewPacer(cfg.X.MinInterval())),
		sources.NewRedditClient(
			keys.RedditClientID, keys.RedditClientSecret, keys.RedditUserAgent,
			cfg.Reddit.Subreddits, cfg.Reddit.PostsPerSubreddit, cfg.Reddit.CommentsPerPost,
			ratelimit.NewPacer(cfg.Reddit.MinInterval()),
		),
		sources.NewYouTubeClient(keys.YouTubeAPIKey, cfg.YouTube.Videos, cfg.YouTube.CommentsPerVideo,
			ratelimit.NewPacer(cfg.YouTube.MinInterval())),
	}
	if cfg.StockTwits.Enabled {
		srcs = append(srcs, sources.NewStockTwitsClient(keys.StockTwitsToken, cfg.StockTwits.Limit,
			ratelimit.NewPacer(cfg.StockTwits.MinInterval())))
	}

	p := &Pipeline{sources: srcs}
	if cfg.Finnhub.Enabled {
		p.finnhub = sources.NewFinnhubClient(keys.FinnhubAPIKey, cfg.Finnhub.Days,
			ratelimit.NewPacer(cfg.Finnhub.MinInterval()))
	}
	return p
}

// NewWithSources builds a pipeline over explicit sources, for tests and
// alternative wirings. finnhub may be nil.
func NewWithSources(srcs []sources.TextSource, finnhub AggregatedSource) *Pipeline {
	return &Pipeline{sources: srcs, finnhub: finnhub}
}

// SetMetrics attaches a metrics collector. A nil collector disables
// recording.
func (p *Pipeline) SetMetrics(c *metrics.Collector) { p.metrics = c }

// Fetch runs every source for one ticker and returns the merged,
// deduplicated result. Source-level failures never surface as errors; the
// only error returned is an invalid ticker, caught before any source runs.
func (p *Pipeline) Fetch(ctx context.Context, ticker, company string) (models.FetchResult, error) {
	t := normalize.Ticker(ticker)
	if t == "" {
		return models.FetchResult{}, fmt.Errorf("invalid ticker %q", ticker)
	}

	start := time.Now()
	q := sources.Query{Ticker: t, Company: company}

	var items []models.TextItem
	var warnings []string

	for _, src := range p.sources {
		res := src.Fetch(ctx, q)
		items = append(items, res.Items...)
		if res.Reason != "" {
			warnings = append(warnings, res.Reason)
		}
		p.metrics.RecordSource(string(res.Platform), res.Status.String(), len(res.Items))
		log.Info().
			Str("platform", string(res.Platform)).
			Str("status", res.Status.String()).
			Int("items", len(res.Items)).
			Msg("source complete")
	}

	var finnhub *models.AggregatedSentiment
	if p.finnhub != nil {
		var warn string
		finnhub, warn = p.finnhub.Fetch(ctx, t)
		if warn != "" {
			warnings = append(warnings, warn)
		}
	}

	before := len(items)
	items = Dedupe(items)
	p.metrics.RecordDedupeDropped(before - len(items))
	p.metrics.ObserveFetch(time.Since(start))

	log.Info().
		Str("ticker", t).
		Int("items", len(items)).
		Int("duplicates_dropped", before-len(items)).
		Int("warnings", len(warnings)).
		Dur("elapsed", time.Since(start)).
		Msg("fetch complete")

	return models.FetchResult{Items: items, Warnings: warnings, Finnhub: finnhub}, nil
}
