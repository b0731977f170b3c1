package sources

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawpanic/stockpulse/internal/models"
	"github.com/sawpanic/stockpulse/internal/net/ratelimit"
)

func ytComment(id, text string) map[string]any {
	return map[string]any{
		"id": id,
		"snippet": map[string]any{
			"topLevelComment": map[string]any{
				"snippet": map[string]any{
					"textDisplay":       text,
					"authorDisplayName": "viewer",
					"publishedAt":       "2024-01-02T08:00:00Z",
				},
			},
		},
	}
}

func TestYouTubeClient_MissingKey(t *testing.T) {
	c := NewYouTubeClient("", 5, 10, ratelimit.NewPacer(0))
	res := c.Fetch(context.Background(), Query{Ticker: "AAPL"})

	assert.Equal(t, models.StatusUnavailable, res.Status)
	require.Len(t, res.Items, 5)
	assert.Contains(t, res.Reason, "not configured")
}

func TestYouTubeClient_SearchThenComments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/youtube/v3/search":
			q := r.URL.Query()
			assert.Equal(t, "video", q.Get("type"))
			assert.Contains(t, q.Get("q"), "AAPL")
			assert.Contains(t, q.Get("q"), "stock analysis")
			assert.Equal(t, "key123", q.Get("key"))
			json.NewEncoder(w).Encode(map[string]any{
				"items": []map[string]any{
					{"id": map[string]string{"videoId": "v1"}},
					{"id": map[string]string{"videoId": "v2"}},
				},
			})
		case "/youtube/v3/commentThreads":
			vid := r.URL.Query().Get("videoId")
			json.NewEncoder(w).Encode(map[string]any{
				"items": []map[string]any{ytComment(vid+"-c1", "great breakdown of "+vid)},
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := NewYouTubeClient("key123", 2, 10, ratelimit.NewPacer(0))
	c.BaseURL = srv.URL
	res := c.Fetch(context.Background(), Query{Ticker: "AAPL"})

	require.Equal(t, models.StatusOK, res.Status)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "https://www.youtube.com/watch?v=v1", res.Items[0].URL)
	meta, ok := res.Items[0].Meta.(models.YouTubeMetadata)
	require.True(t, ok)
	assert.Equal(t, "v1", meta.VideoID)
	assert.Equal(t, "v1-c1", res.Items[0].ExternalID)
}

func TestYouTubeClient_CommentPaginationStopsAtCap(t *testing.T) {
	pages := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/youtube/v3/search":
			json.NewEncoder(w).Encode(map[string]any{
				"items": []map[string]any{{"id": map[string]string{"videoId": "v1"}}},
			})
		case "/youtube/v3/commentThreads":
			pages++
			json.NewEncoder(w).Encode(map[string]any{
				"items": []map[string]any{
					ytComment("c1", "one"), ytComment("c2", "two"),
				},
				"nextPageToken": "next",
			})
		}
	}))
	defer srv.Close()

	c := NewYouTubeClient("key123", 1, 3, ratelimit.NewPacer(0))
	c.BaseURL = srv.URL
	res := c.Fetch(context.Background(), Query{Ticker: "TSLA"})

	require.Equal(t, models.StatusOK, res.Status)
	assert.Len(t, res.Items, 3, "comments_per_video cap applies across pages")
	assert.Equal(t, 2, pages)
}

func TestYouTubeClient_SearchFailure_FallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewYouTubeClient("key123", 5, 10, ratelimit.NewPacer(0))
	c.BaseURL = srv.URL
	res := c.Fetch(context.Background(), Query{Ticker: "AAPL"})

	assert.Equal(t, models.StatusUnavailable, res.Status)
	require.Len(t, res.Items, 5)
	assert.Contains(t, res.Reason, "YouTube fetch failed")
}
