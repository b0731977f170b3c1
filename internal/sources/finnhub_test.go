package sources

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawpanic/stockpulse/internal/net/ratelimit"
)

func TestFinnhubClient_MissingKey(t *testing.T) {
	c := NewFinnhubClient("", 7, ratelimit.NewPacer(0))
	agg, warn := c.Fetch(context.Background(), "AAPL")

	assert.Nil(t, agg, "Finnhub has no synthetic fallback")
	assert.Contains(t, warn, "not configured")
}

func TestFinnhubClient_WindowAndSums(t *testing.T) {
	fixedNow := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/stock/social-sentiment", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "AAPL", q.Get("symbol"))
		assert.Equal(t, "2024-03-08", q.Get("from"), "window is exactly 7 days wide")
		assert.Equal(t, "2024-03-15", q.Get("to"), "window ends today")
		assert.Equal(t, "fh-key", q.Get("token"))

		json.NewEncoder(w).Encode(map[string]any{
			"reddit": []map[string]any{
				{"mention": 10, "positiveScore": 0.9, "negativeScore": 0.1},
				{"mention": 42, "positiveScore": 0.6, "negativeScore": 0.4},
			},
			"twitter": []map[string]any{
				{"mention": 7, "positiveScore": 0.8, "negativeScore": 0.2},
			},
		})
	}))
	defer srv.Close()

	c := NewFinnhubClient("fh-key", 7, ratelimit.NewPacer(0))
	c.BaseURL = srv.URL
	c.SetNow(func() time.Time { return fixedNow })

	agg, warn := c.Fetch(context.Background(), "AAPL")
	require.NotNil(t, agg)
	assert.Empty(t, warn)

	assert.Equal(t, "AAPL", agg.Symbol)
	// Only the most recent datapoint per network enters the totals.
	assert.Equal(t, 42, agg.RedditMentions)
	assert.InDelta(t, 0.6, agg.RedditPositiveScore, 1e-9)
	assert.InDelta(t, 0.4, agg.RedditNegativeScore, 1e-9)
	assert.Equal(t, 7, agg.TwitterMentions)
	assert.InDelta(t, 0.8, agg.TwitterPositiveScore, 1e-9)
}

func TestFinnhubClient_MinimumWindowIsOneDay(t *testing.T) {
	fixedNow := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2024-03-14", r.URL.Query().Get("from"))
		json.NewEncoder(w).Encode(map[string]any{})
	}))
	defer srv.Close()

	c := NewFinnhubClient("fh-key", 0, ratelimit.NewPacer(0))
	c.BaseURL = srv.URL
	c.SetNow(func() time.Time { return fixedNow })

	agg, warn := c.Fetch(context.Background(), "AAPL")
	require.NotNil(t, agg)
	assert.Empty(t, warn)
	assert.Zero(t, agg.RedditMentions)
}

func TestFinnhubClient_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewFinnhubClient("fh-key", 7, ratelimit.NewPacer(0))
	c.BaseURL = srv.URL

	agg, warn := c.Fetch(context.Background(), "AAPL")
	assert.Nil(t, agg)
	assert.Contains(t, warn, "Finnhub rate limit hit")
}
