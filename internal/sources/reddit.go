package sources

import (
	"context"
	"fmt"
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

// RedditClient searches a fixed set of finance subreddits for the ticker
// and pulls each matching post plus a shallow slice of its top-level
// comments. Uses app-only OAuth2 (client credentials).
type RedditClient struct {
	BaseURL string // API host, https://oauth.reddit.com in production
	AuthURL string // Token host, https://www.reddit.com in production

	clientID     string
	clientSecret string
	uaHeader     string
	subreddits   []string
	postsPerSub  int
	commentsPer  int
	pacer        *ratelimit.Pacer
	breaker      *circuit.Breaker
	client       *httpx.Client
}

// NewRedditClient creates the Reddit adapter.
func NewRedditClient(clientID, clientSecret, uaHeader string, subreddits []string, postsPerSub, commentsPerPost int, pacer *ratelimit.Pacer) *RedditClient {
	return &RedditClient{
		BaseURL:      "https://oauth.reddit.com",
		AuthURL:      "https://www.reddit.com",
		clientID:     clientID,
		clientSecret: clientSecret,
		uaHeader:     uaHeader,
		subreddits:   subreddits,
		postsPerSub:  postsPerSub,
		commentsPer:  commentsPerPost,
		pacer:        pacer,
		breaker:      circuit.New("reddit"),
		client:       httpx.New(20*time.Second, uaHeader),
	}
}

func (c *RedditClient) Platform() models.Platform { return models.PlatformReddit }

type redditListing struct {
	Data struct {
		Children []redditThing `json:"children"`
	} `json:"data"`
}

type redditThing struct {
	Kind string `json:"kind"`
	Data struct {
		ID         string  `json:"id"`
		Title      string  `json:"title"`
		Selftext   string  `json:"selftext"`
		Body       string  `json:"body"`
		Permalink  string  `json:"permalink"`
		URL        string  `json:"url"`
		Author     string  `json:"author"`
		CreatedUTC float64 `json:"created_utc"`
	} `json:"data"`
}

// Fetch iterates the configured subreddits in order, searching by
// relevance within the last week. A failure partway through keeps whatever
// was already collected: synthetic data is substituted only when the
// failure happened before any item was gathered. Comment fetch failures on
// a single post are swallowed and iteration continues.
func (c *RedditClient) Fetch(ctx context.Context, q Query) models.Result {
	if c.clientID == "" || c.clientSecret == "" || c.uaHeader == "" {
		return models.ResultUnavailable(models.PlatformReddit, SyntheticItems(models.PlatformReddit, q.Ticker),
			"Reddit keys not configured; using mock Reddit data.")
	}

	token, err := c.token(ctx)
	if err != nil {
		return models.ResultUnavailable(models.PlatformReddit, SyntheticItems(models.PlatformReddit, q.Ticker),
			failReason(models.PlatformReddit, err))
	}
	header := http.Header{"Authorization": {"Bearer " + token}}

	query := redditQuery(q)
	var items []models.TextItem

	for _, sub := range c.subreddits {
		if err := c.pacer.Wait(ctx); err != nil {
			return c.failed(items, q, failReason(models.PlatformReddit, err))
		}

		params := url.Values{
			"q":           {query},
			"restrict_sr": {"on"},
			"sort":        {"relevance"},
			"t":           {"week"},
			"limit":       {strconv.Itoa(c.postsPerSub)},
			"raw_json":    {"1"},
		}
		var listing redditListing
		err := c.breaker.Do(func() error {
			return c.client.GetJSON(ctx, fmt.Sprintf("%s/r/%s/search.json", c.BaseURL, sub), params, header, &listing)
		})
		if err != nil {
			reason := failReason(models.PlatformReddit, err)
			if httpx.IsRateLimited(err) {
				reason = "Reddit API error/rate limit hit; using mock Reddit data."
			}
			return c.failed(items, q, reason)
		}

		for _, post := range listing.Data.Children {
			p := post.Data
			title := normalize.CleanText(p.Title)
			body := normalize.CleanText(p.Selftext)
			combined := title
			if body != "" {
				combined = title + " " + body
			}
			created := normalize.FromEpoch(p.CreatedUTC)
			postURL := p.URL
			if postURL == "" {
				postURL = "https://www.reddit.com" + p.Permalink
			}
			if combined != "" {
				items = append(items, models.TextItem{
					Platform:   models.PlatformReddit,
					Text:       combined,
					CreatedAt:  &created,
					URL:        postURL,
					Author:     p.Author,
					ExternalID: p.ID,
					Meta:       models.RedditMetadata{Subreddit: sub, Kind: "post"},
				})
			}

			if c.commentsPer <= 0 {
				continue
			}
			// Locked or deleted threads can fail here; skip to the next
			// post rather than losing the whole subreddit.
			comments, err := c.topLevelComments(ctx, header, p.ID)
			if err != nil {
				log.Debug().Str("platform", "Reddit").Str("post", p.ID).Err(err).Msg("comment fetch skipped")
				continue
			}
			for _, cm := range comments {
				cm.Meta = models.RedditMetadata{Subreddit: sub, Kind: "comment", PostID: p.ID}
				items = append(items, cm)
			}
		}
	}

	log.Debug().Str("platform", "Reddit").Int("items", len(items)).Msg("source fetch complete")
	return models.ResultOK(models.PlatformReddit, items)
}

// token performs the app-only OAuth2 client-credentials exchange.
func (c *RedditClient) token(ctx context.Context) (string, error) {
	if err := c.pacer.Wait(ctx); err != nil {
		return "", err
	}
	basic := "Basic " + basicAuth(c.clientID, c.clientSecret)
	header := http.Header{"Authorization": {basic}}
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	err := c.breaker.Do(func() error {
		return c.client.PostFormJSON(ctx, c.AuthURL+"/api/v1/access_token",
			url.Values{"grant_type": {"client_credentials"}}, header, &resp)
	})
	if err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("empty access token")
	}
	return resp.AccessToken, nil
}

// topLevelComments fetches one post's comment page (depth 1, no recursive
// tree expansion) and returns up to commentsPer normalized items.
func (c *RedditClient) topLevelComments(ctx context.Context, header http.Header, postID string) ([]models.TextItem, error) {
	if err := c.pacer.Wait(ctx); err != nil {
		return nil, err
	}
	params := url.Values{
		"limit":    {strconv.Itoa(c.commentsPer)},
		"depth":    {"1"},
		"raw_json": {"1"},
	}
	var pages []redditListing
	err := c.breaker.Do(func() error {
		return c.client.GetJSON(ctx, fmt.Sprintf("%s/comments/%s.json", c.BaseURL, postID), params, header, &pages)
	})
	if err != nil {
		return nil, err
	}
	if len(pages) < 2 {
		return nil, nil
	}

	var out []models.TextItem
	for _, child := range pages[1].Data.Children {
		if len(out) >= c.commentsPer {
			break
		}
		if child.Kind != "t1" {
			continue
		}
		cm := child.Data
		txt := normalize.CleanText(cm.Body)
		if txt == "" {
			continue
		}
		created := normalize.FromEpoch(cm.CreatedUTC)
		out = append(out, models.TextItem{
			Platform:   models.PlatformReddit,
			Text:       txt,
			CreatedAt:  &created,
			URL:        "https://www.reddit.com" + cm.Permalink,
			Author:     cm.Author,
			ExternalID: cm.ID,
		})
	}
	return out, nil
}

func (c *RedditClient) failed(items []models.TextItem, q Query, reason string) models.Result {
	if len(items) == 0 {
		return models.ResultUnavailable(models.PlatformReddit, SyntheticItems(models.PlatformReddit, q.Ticker), reason)
	}
	return models.ResultDegraded(models.PlatformReddit, items, reason)
}
