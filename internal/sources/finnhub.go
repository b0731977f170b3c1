package sources

import (
	"context"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sawpanic/stockpulse/internal/models"
	"github.com/sawpanic/stockpulse/internal/net/circuit"
	"github.com/sawpanic/stockpulse/internal/net/httpx"
	"github.com/sawpanic/stockpulse/internal/net/ratelimit"
)

// FinnhubClient fetches Finnhub's provider-aggregated social sentiment.
// Not a text source: it produces one AggregatedSentiment record, has no
// synthetic fallback, and signals absence purely via warning + nil.
type FinnhubClient struct {
	BaseURL string

	apiKey  string
	days    int
	pacer   *ratelimit.Pacer
	breaker *circuit.Breaker
	client  *httpx.Client
	now     func() time.Time
}

// NewFinnhubClient creates the Finnhub adapter. days sets the width of the
// trailing window ending today.
func NewFinnhubClient(apiKey string, days int, pacer *ratelimit.Pacer) *FinnhubClient {
	return &FinnhubClient{
		BaseURL: "https://finnhub.io",
		apiKey:  apiKey,
		days:    days,
		pacer:   pacer,
		breaker: circuit.New("finnhub"),
		client:  httpx.New(20*time.Second, userAgent),
		now:     time.Now,
	}
}

// SetNow overrides the clock used for window calculation, for tests.
func (c *FinnhubClient) SetNow(now func() time.Time) { c.now = now }

type finnhubDatapoint struct {
	Mention       int     `json:"mention"`
	PositiveScore float64 `json:"positiveScore"`
	NegativeScore float64 `json:"negativeScore"`
}

type finnhubResponse struct {
	Reddit  []finnhubDatapoint `json:"reddit"`
	Twitter []finnhubDatapoint `json:"twitter"`
}

// Fetch returns the aggregated sentiment for the trailing window, or nil
// plus a non-empty warning when the source is unavailable. The most recent
// datapoint per network is kept, summed in case the provider reports
// several records for that trailing slot.
func (c *FinnhubClient) Fetch(ctx context.Context, ticker string) (*models.AggregatedSentiment, string) {
	if c.apiKey == "" {
		return nil, "Finnhub API key not configured; skipping Finnhub aggregated sentiment."
	}

	if err := c.pacer.Wait(ctx); err != nil {
		return nil, finnhubFailReason(err)
	}

	to := c.now().UTC()
	days := c.days
	if days < 1 {
		days = 1
	}
	from := to.AddDate(0, 0, -days)
	params := url.Values{
		"symbol": {ticker},
		"from":   {from.Format("2006-01-02")},
		"to":     {to.Format("2006-01-02")},
		"token":  {c.apiKey},
	}

	var resp finnhubResponse
	err := c.breaker.Do(func() error {
		return c.client.GetJSON(ctx, c.BaseURL+"/api/v1/stock/social-sentiment", params, nil, &resp)
	})
	if err != nil {
		if httpx.IsRateLimited(err) {
			return nil, "Finnhub rate limit hit; skipping Finnhub aggregated sentiment."
		}
		return nil, finnhubFailReason(err)
	}

	reddit := trailing(resp.Reddit)
	twitter := trailing(resp.Twitter)

	agg := &models.AggregatedSentiment{Symbol: ticker}
	for _, row := range reddit {
		agg.RedditMentions += row.Mention
		agg.RedditPositiveScore += row.PositiveScore
		agg.RedditNegativeScore += row.NegativeScore
	}
	for _, row := range twitter {
		agg.TwitterMentions += row.Mention
		agg.TwitterPositiveScore += row.PositiveScore
		agg.TwitterNegativeScore += row.NegativeScore
	}

	log.Debug().Str("platform", "Finnhub").Int("reddit_mentions", agg.RedditMentions).
		Int("twitter_mentions", agg.TwitterMentions).Msg("aggregated sentiment fetched")
	return agg, ""
}

// trailing keeps the most recent datapoint slot of a network's series.
func trailing(rows []finnhubDatapoint) []finnhubDatapoint {
	if len(rows) == 0 {
		return nil
	}
	return rows[len(rows)-1:]
}

func finnhubFailReason(err error) string {
	return "Finnhub fetch failed (" + err.Error() + "); skipping Finnhub aggregated sentiment."
}
