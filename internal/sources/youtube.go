package sources

import (
	"context"
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

// YouTubeClient searches for videos matching the ticker and collects each
// video's top-level comment threads via the YouTube Data API v3.
type YouTubeClient struct {
	BaseURL string

	apiKey      string
	videos      int
	commentsPer int
	pacer       *ratelimit.Pacer
	breaker     *circuit.Breaker
	client      *httpx.Client
}

// NewYouTubeClient creates the YouTube adapter.
func NewYouTubeClient(apiKey string, videos, commentsPerVideo int, pacer *ratelimit.Pacer) *YouTubeClient {
	return &YouTubeClient{
		BaseURL:     "https://www.googleapis.com",
		apiKey:      apiKey,
		videos:      videos,
		commentsPer: commentsPerVideo,
		pacer:       pacer,
		breaker:     circuit.New("youtube"),
		client:      httpx.New(20*time.Second, userAgent),
	}
}

func (c *YouTubeClient) Platform() models.Platform { return models.PlatformYouTube }

type ytSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
}

type ytCommentThreadsResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			TopLevelComment struct {
				Snippet struct {
					TextDisplay       string `json:"textDisplay"`
					AuthorDisplayName string `json:"authorDisplayName"`
					PublishedAt       string `json:"publishedAt"`
				} `json:"snippet"`
			} `json:"topLevelComment"`
		} `json:"snippet"`
	} `json:"items"`
	NextPageToken string `json:"nextPageToken"`
}

// Fetch searches for up to the configured number of videos, then paginates
// each video's top-level comment threads until the per-video cap is
// reached or pagination is exhausted.
func (c *YouTubeClient) Fetch(ctx context.Context, q Query) models.Result {
	if c.apiKey == "" {
		return models.ResultUnavailable(models.PlatformYouTube, SyntheticItems(models.PlatformYouTube, q.Ticker),
			"YouTube API key not configured; using mock YouTube data.")
	}

	query := youtubeQuery(q)
	var items []models.TextItem

	if err := c.pacer.Wait(ctx); err != nil {
		return c.failed(items, q, failReason(models.PlatformYouTube, err))
	}
	maxResults := c.videos
	if maxResults > 10 {
		maxResults = 10
	}
	if maxResults < 1 {
		maxResults = 1
	}
	params := url.Values{
		"part":       {"id,snippet"},
		"q":          {query},
		"type":       {"video"},
		"maxResults": {strconv.Itoa(maxResults)},
		"key":        {c.apiKey},
	}
	var search ytSearchResponse
	err := c.breaker.Do(func() error {
		return c.client.GetJSON(ctx, c.BaseURL+"/youtube/v3/search", params, nil, &search)
	})
	if err != nil {
		return c.failed(items, q, failReason(models.PlatformYouTube, err))
	}

	var videoIDs []string
	for _, it := range search.Items {
		if it.ID.VideoID != "" {
			videoIDs = append(videoIDs, it.ID.VideoID)
		}
	}
	if len(videoIDs) > c.videos {
		videoIDs = videoIDs[:c.videos]
	}

	for _, vid := range videoIDs {
		fetched := 0
		pageToken := ""
		for fetched < c.commentsPer {
			if err := c.pacer.Wait(ctx); err != nil {
				return c.failed(items, q, failReason(models.PlatformYouTube, err))
			}
			batch := c.commentsPer - fetched
			if batch > 100 {
				batch = 100
			}
			params := url.Values{
				"part":       {"snippet"},
				"videoId":    {vid},
				"maxResults": {strconv.Itoa(batch)},
				"textFormat": {"plainText"},
				"key":        {c.apiKey},
			}
			if pageToken != "" {
				params.Set("pageToken", pageToken)
			}
			var threads ytCommentThreadsResponse
			err := c.breaker.Do(func() error {
				return c.client.GetJSON(ctx, c.BaseURL+"/youtube/v3/commentThreads", params, nil, &threads)
			})
			if err != nil {
				return c.failed(items, q, failReason(models.PlatformYouTube, err))
			}

			for _, th := range threads.Items {
				top := th.Snippet.TopLevelComment.Snippet
				txt := normalize.CleanText(top.TextDisplay)
				if txt == "" {
					continue
				}
				items = append(items, models.TextItem{
					Platform:   models.PlatformYouTube,
					Text:       txt,
					CreatedAt:  normalize.ParseRFC3339(top.PublishedAt),
					URL:        "https://www.youtube.com/watch?v=" + vid,
					Author:     top.AuthorDisplayName,
					ExternalID: th.ID,
					Meta:       models.YouTubeMetadata{VideoID: vid, Query: query},
				})
				fetched++
				if fetched >= c.commentsPer {
					break
				}
			}
			pageToken = threads.NextPageToken
			if pageToken == "" {
				break
			}
		}
	}

	log.Debug().Str("platform", "YouTube").Int("items", len(items)).Msg("source fetch complete")
	return models.ResultOK(models.PlatformYouTube, items)
}

func (c *YouTubeClient) failed(items []models.TextItem, q Query, reason string) models.Result {
	if len(items) == 0 {
		return models.ResultUnavailable(models.PlatformYouTube, SyntheticItems(models.PlatformYouTube, q.Ticker), reason)
	}
	return models.ResultDegraded(models.PlatformYouTube, items, reason)
}
