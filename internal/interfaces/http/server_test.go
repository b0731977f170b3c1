package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawpanic/stockpulse/internal/analysis"
	"github.com/sawpanic/stockpulse/internal/config"
	"github.com/sawpanic/stockpulse/internal/models"
)

type stubFetcher struct {
	result    models.FetchResult
	err       error
	calls     int
	gotTicker string
}

func (f *stubFetcher) Fetch(_ context.Context, ticker, _ string) (models.FetchResult, error) {
	f.calls++
	f.gotTicker = ticker
	return f.result, f.err
}

func testServer(t *testing.T, fetcher Fetcher, cacheTTL time.Duration) *Server {
	t.Helper()

	var cache *ResponseCache
	if cacheTTL > 0 {
		cache = NewResponseCache(cacheTTL)
	}
	handlers := NewHandlers(fetcher, analysis.NewLexiconScorer(), config.Keys{}, cache)

	srv, err := NewServer(ServerConfig{
		Host:         "127.0.0.1",
		Port:         0,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  5 * time.Second,
	}, handlers, nil)
	require.NoError(t, err)
	return srv
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	srv := testServer(t, &stubFetcher{}, 0)

	w := get(t, srv, "/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var resp healthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.False(t, resp.Credentials["TWITTER_BEARER_TOKEN"])
	assert.False(t, resp.Credentials["FINNHUB_API_KEY"])
	assert.Contains(t, resp.Credentials, "REDDIT_KEYS")
}

func TestSentimentEndpoint(t *testing.T) {
	fetcher := &stubFetcher{result: models.FetchResult{
		Items: []models.TextItem{
			{Platform: models.PlatformX, Text: "AAPL bullish breakout", ExternalID: "1"},
			{Platform: models.PlatformReddit, Text: "AAPL is going to crash", ExternalID: "2"},
		},
		Warnings: []string{"YouTube keys not configured; using mock YouTube data."},
		Finnhub:  &models.AggregatedSentiment{Symbol: "AAPL", RedditMentions: 7},
	}}
	srv := testServer(t, fetcher, 0)

	w := get(t, srv, "/v1/sentiment/aapl?company=Apple")
	require.Equal(t, http.StatusOK, w.Code)

	var resp sentimentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "AAPL", resp.Ticker, "path ticker is normalized")
	assert.Equal(t, "AAPL", fetcher.gotTicker)
	assert.Equal(t, "Apple", resp.Company)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, analysis.LabelPositive, resp.Items[0].Label)
	assert.Equal(t, analysis.LabelNegative, resp.Items[1].Label)
	assert.Equal(t, 2, resp.Summary.Total)
	assert.Equal(t, 1, resp.ByPlatform["X"].Total)
	require.Len(t, resp.Warnings, 1)
	require.NotNil(t, resp.Finnhub)
	assert.Equal(t, 7, resp.Finnhub.RedditMentions)
	assert.False(t, resp.Cached)
}

func TestSentimentInvalidTicker(t *testing.T) {
	fetcher := &stubFetcher{}
	srv := testServer(t, fetcher, 0)

	w := get(t, srv, "/v1/sentiment/%3F%3F%3F")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, fetcher.calls)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_ticker", resp.Code)
	assert.NotEmpty(t, resp.RequestID)
}

func TestSentimentCachedResponse(t *testing.T) {
	fetcher := &stubFetcher{result: models.FetchResult{
		Items: []models.TextItem{{Platform: models.PlatformX, Text: "steady", ExternalID: "1"}},
	}}
	srv := testServer(t, fetcher, time.Minute)

	first := get(t, srv, "/v1/sentiment/TSLA")
	require.Equal(t, http.StatusOK, first.Code)

	second := get(t, srv, "/v1/sentiment/TSLA")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, 1, fetcher.calls, "second request served from cache")

	var resp sentimentResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
	assert.True(t, resp.Cached)

	// A different company string is a different cache key.
	get(t, srv, "/v1/sentiment/TSLA?company=Tesla")
	assert.Equal(t, 2, fetcher.calls)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := testServer(t, &stubFetcher{}, 0)

	w := get(t, srv, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNotFound(t *testing.T) {
	srv := testServer(t, &stubFetcher{}, 0)

	w := get(t, srv, "/nope")
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "endpoint_not_found", resp.Code)
}

func TestResponseCacheExpiry(t *testing.T) {
	cache := NewResponseCache(10 * time.Millisecond)
	cache.Set("k", sentimentResponse{Ticker: "X"})

	_, ok := cache.Get("k")
	assert.True(t, ok)

	time.Sleep(20 * time.Millisecond)
	_, ok = cache.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 1, cache.CleanExpired())
}

func TestResponseCacheZeroTTLDisabled(t *testing.T) {
	cache := NewResponseCache(0)
	cache.Set("k", sentimentResponse{Ticker: "X"})
	_, ok := cache.Get("k")
	assert.False(t, ok)
}
