package sources

import (
	"context"
	"net/http"
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

// XClient fetches recent tweets via the Twitter API v2 recent-search
// endpoint. Bearer auth only; an absent bearer token is the
// missing-credential condition.
type XClient struct {
	BaseURL string

	bearer  string
	limit   int
	pacer   *ratelimit.Pacer
	breaker *circuit.Breaker
	client  *httpx.Client
}

// NewXClient creates the X adapter. limit caps total tweets per fetch.
func NewXClient(bearerToken string, limit int, pacer *ratelimit.Pacer) *XClient {
	return &XClient{
		BaseURL: "https://api.twitter.com",
		bearer:  bearerToken,
		limit:   limit,
		pacer:   pacer,
		breaker: circuit.New("x"),
		client:  httpx.New(20*time.Second, userAgent),
	}
}

func (c *XClient) Platform() models.Platform { return models.PlatformX }

type xSearchResponse struct {
	Data []struct {
		ID        string `json:"id"`
		Text      string `json:"text"`
		CreatedAt string `json:"created_at"`
	} `json:"data"`
	Meta struct {
		NextToken string `json:"next_token"`
	} `json:"meta"`
}

// Fetch pages through recent-search results in batches of 10-100 until the
// configured limit is reached or no pagination token remains.
func (c *XClient) Fetch(ctx context.Context, q Query) models.Result {
	if c.bearer == "" {
		return models.ResultUnavailable(models.PlatformX, SyntheticItems(models.PlatformX, q.Ticker),
			"X (Twitter) keys not configured; using mock X data.")
	}

	query := xQuery(q)
	header := http.Header{"Authorization": {"Bearer " + c.bearer}}

	var items []models.TextItem
	nextToken := ""
	for len(items) < c.limit {
		if err := c.pacer.Wait(ctx); err != nil {
			return c.failed(items, q, failReason(models.PlatformX, err))
		}

		remaining := c.limit - len(items)
		batch := 100
		if remaining < 100 {
			batch = remaining
			if batch < 10 {
				batch = 10
			}
		}
		params := url.Values{
			"query":        {query},
			"max_results":  {strconv.Itoa(batch)},
			"tweet.fields": {"created_at,lang"},
		}
		if nextToken != "" {
			params.Set("next_token", nextToken)
		}

		var resp xSearchResponse
		err := c.breaker.Do(func() error {
			return c.client.GetJSON(ctx, c.BaseURL+"/2/tweets/search/recent", params, header, &resp)
		})
		if err != nil {
			reason := failReason(models.PlatformX, err)
			if httpx.IsRateLimited(err) {
				reason = "X rate limit hit; using mock X data for remaining results."
			}
			return c.failed(items, q, reason)
		}
		if len(resp.Data) == 0 {
			break
		}

		for _, tw := range resp.Data {
			txt := normalize.CleanText(tw.Text)
			if txt == "" {
				continue
			}
			items = append(items, models.TextItem{
				Platform:   models.PlatformX,
				Text:       txt,
				CreatedAt:  normalize.ParseRFC3339(tw.CreatedAt),
				URL:        "https://x.com/i/web/status/" + tw.ID,
				ExternalID: tw.ID,
				Meta:       models.XMetadata{Query: query},
			})
		}

		nextToken = resp.Meta.NextToken
		if nextToken == "" {
			break
		}
	}

	log.Debug().Str("platform", "X").Int("items", len(items)).Msg("source fetch complete")
	return models.ResultOK(models.PlatformX, items)
}

// failed applies the shared degradation policy: synthetic substitution when
// nothing was collected, partial set otherwise.
func (c *XClient) failed(items []models.TextItem, q Query, reason string) models.Result {
	if len(items) == 0 {
		return models.ResultUnavailable(models.PlatformX, SyntheticItems(models.PlatformX, q.Ticker), reason)
	}
	return models.ResultDegraded(models.PlatformX, items, reason)
}
