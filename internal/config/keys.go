package config

import (
	"os"
	"strings"
)

// Keys is the opaque bag of optional provider credentials. Absence of a
// source's required subset is a recognized condition handled by that
// source's adapter, not an error.
type Keys struct {
	TwitterBearerToken string
	RedditClientID     string
	RedditClientSecret string
	RedditUserAgent    string
	YouTubeAPIKey      string
	FinnhubAPIKey      string
	StockTwitsToken    string
}

func env(name string) string {
	return strings.TrimSpace(os.Getenv(name))
}

// LoadKeys reads credentials from the environment.
func LoadKeys() Keys {
	return Keys{
		TwitterBearerToken: env("TWITTER_BEARER_TOKEN"),
		RedditClientID:     env("REDDIT_CLIENT_ID"),
		RedditClientSecret: env("REDDIT_CLIENT_SECRET"),
		RedditUserAgent:    env("REDDIT_USER_AGENT"),
		YouTubeAPIKey:      env("YOUTUBE_API_KEY"),
		FinnhubAPIKey:      env("FINNHUB_API_KEY"),
		StockTwitsToken:    env("STOCKTWITS_TOKEN"),
	}
}

// HasX reports whether the X adapter can authenticate.
func (k Keys) HasX() bool { return k.TwitterBearerToken != "" }

// HasReddit reports whether the Reddit adapter can authenticate.
func (k Keys) HasReddit() bool {
	return k.RedditClientID != "" && k.RedditClientSecret != "" && k.RedditUserAgent != ""
}

// HasYouTube reports whether the YouTube adapter can authenticate.
func (k Keys) HasYouTube() bool { return k.YouTubeAPIKey != "" }

// HasFinnhub reports whether the Finnhub adapter can authenticate.
func (k Keys) HasFinnhub() bool { return k.FinnhubAPIKey != "" }

// Status maps each credential category to whether it is configured, for
// display by the CLI and the health endpoint.
func (k Keys) Status() map[string]bool {
	return map[string]bool{
		"TWITTER_BEARER_TOKEN": k.HasX(),
		"REDDIT_KEYS":          k.HasReddit(),
		"YOUTUBE_API_KEY":      k.HasYouTube(),
		"FINNHUB_API_KEY":      k.HasFinnhub(),
		"STOCKTWITS_TOKEN":     k.StockTwitsToken != "",
	}
}
