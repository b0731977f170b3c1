package sources

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sawpanic/stockpulse/internal/models"
	"github.com/sawpanic/stockpulse/internal/net/circuit"
	"github.com/sawpanic/stockpulse/internal/net/httpx"
	"github.com/sawpanic/stockpulse/internal/net/ratelimit"
	"github.com/sawpanic/stockpulse/internal/normalize"
)

// maxMessageChars bounds a StockTwits message body before normalization.
const maxMessageChars = 5000

// StockTwitsClient fetches one page of the symbol stream. Anonymous reads
// are allowed; a configured token is passed through for reliability.
type StockTwitsClient struct {
	BaseURL string

	token   string
	limit   int
	pacer   *ratelimit.Pacer
	breaker *circuit.Breaker
	client  *httpx.Client
}

// NewStockTwitsClient creates the StockTwits adapter.
func NewStockTwitsClient(token string, limit int, pacer *ratelimit.Pacer) *StockTwitsClient {
	return &StockTwitsClient{
		BaseURL: "https://api.stocktwits.com",
		token:   token,
		limit:   limit,
		pacer:   pacer,
		breaker: circuit.New("stocktwits"),
		client:  httpx.New(20*time.Second, userAgent),
	}
}

func (c *StockTwitsClient) Platform() models.Platform { return models.PlatformStockTwits }

type stockTwitsResponse struct {
	Messages []struct {
		ID        int64  `json:"id"`
		Body      string `json:"body"`
		CreatedAt string `json:"created_at"`
		User      struct {
			Username string `json:"username"`
		} `json:"user"`
	} `json:"messages"`
}

// Fetch pulls a single symbol-stream page, truncates each body, and caps
// results at the configured limit. No pagination.
func (c *StockTwitsClient) Fetch(ctx context.Context, q Query) models.Result {
	symbol := q.Ticker
	if err := c.pacer.Wait(ctx); err != nil {
		return c.failed(nil, q, failReason(models.PlatformStockTwits, err))
	}

	params := url.Values{}
	if c.token != "" {
		params.Set("access_token", c.token)
	}
	var resp stockTwitsResponse
	err := c.breaker.Do(func() error {
		return c.client.GetJSON(ctx, fmt.Sprintf("%s/api/2/streams/symbol/%s.json", c.BaseURL, symbol), params, nil, &resp)
	})
	if err != nil {
		reason := failReason(models.PlatformStockTwits, err)
		if httpx.IsRateLimited(err) {
			reason = "StockTwits rate limit hit; using mock StockTwits data."
		}
		return c.failed(nil, q, reason)
	}

	var items []models.TextItem
	for _, msg := range resp.Messages {
		if len(items) >= c.limit {
			break
		}
		body := normalize.CleanText(firstRunes(msg.Body, maxMessageChars))
		if body == "" {
			continue
		}
		item := models.TextItem{
			Platform:  models.PlatformStockTwits,
			Text:      body,
			CreatedAt: normalize.ParseRFC3339(msg.CreatedAt),
			Author:    msg.User.Username,
			Meta:      models.StockTwitsMetadata{Symbol: symbol},
		}
		if msg.ID != 0 {
			item.URL = fmt.Sprintf("https://stocktwits.com/message/%d", msg.ID)
			item.ExternalID = strconv.FormatInt(msg.ID, 10)
		}
		items = append(items, item)
	}

	log.Debug().Str("platform", "StockTwits").Int("items", len(items)).Msg("source fetch complete")
	return models.ResultOK(models.PlatformStockTwits, items)
}

func (c *StockTwitsClient) failed(items []models.TextItem, q Query, reason string) models.Result {
	if len(items) == 0 {
		return models.ResultUnavailable(models.PlatformStockTwits, SyntheticItems(models.PlatformStockTwits, q.Ticker), reason)
	}
	return models.ResultDegraded(models.PlatformStockTwits, items, reason)
}
