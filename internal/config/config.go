// Package config holds the collection and server configuration plus the
// credential bag. Settings come from an optional YAML file layered over
// defaults; credentials come from the environment only.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete stockpulse configuration.
type Config struct {
	Collection Collection `yaml:"collection"`
	Server     Server     `yaml:"server"`
}

// Collection configures every source adapter's limits and pacing.
type Collection struct {
	X          XConfig          `yaml:"x"`
	Reddit     RedditConfig     `yaml:"reddit"`
	YouTube    YouTubeConfig    `yaml:"youtube"`
	StockTwits StockTwitsConfig `yaml:"stocktwits"`
	Finnhub    FinnhubConfig    `yaml:"finnhub"`
}

// XConfig configures the X (Twitter) recent-search adapter.
type XConfig struct {
	Limit         int `yaml:"limit"`           // Max tweets per fetch
	MinIntervalMS int `yaml:"min_interval_ms"` // Pacing between API calls
}

// RedditConfig configures the Reddit search adapter.
type RedditConfig struct {
	Subreddits        []string `yaml:"subreddits"`
	PostsPerSubreddit int      `yaml:"posts_per_subreddit"`
	CommentsPerPost   int      `yaml:"comments_per_post"`
	MinIntervalMS     int      `yaml:"min_interval_ms"`
}

// YouTubeConfig configures the YouTube comment adapter.
type YouTubeConfig struct {
	Videos           int `yaml:"videos"`             // Videos to scan per fetch
	CommentsPerVideo int `yaml:"comments_per_video"` // Top-level comments per video
	MinIntervalMS    int `yaml:"min_interval_ms"`
}

// StockTwitsConfig configures the StockTwits symbol-stream adapter.
type StockTwitsConfig struct {
	Enabled       bool `yaml:"enabled"`
	Limit         int  `yaml:"limit"` // Max messages per fetch
	MinIntervalMS int  `yaml:"min_interval_ms"`
}

// FinnhubConfig configures the Finnhub aggregated-sentiment adapter.
type FinnhubConfig struct {
	Enabled       bool `yaml:"enabled"`
	Days          int  `yaml:"days"` // Trailing window width
	MinIntervalMS int  `yaml:"min_interval_ms"`
}

// Server configures the read-only HTTP API.
type Server struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	ReadTimeoutSec  int    `yaml:"read_timeout_sec"`
	WriteTimeoutSec int    `yaml:"write_timeout_sec"`
	IdleTimeoutSec  int    `yaml:"idle_timeout_sec"`
	CacheTTLSec     int    `yaml:"cache_ttl_sec"` // Response cache TTL
}

func (x XConfig) MinInterval() time.Duration          { return time.Duration(x.MinIntervalMS) * time.Millisecond }
func (r RedditConfig) MinInterval() time.Duration     { return time.Duration(r.MinIntervalMS) * time.Millisecond }
func (y YouTubeConfig) MinInterval() time.Duration    { return time.Duration(y.MinIntervalMS) * time.Millisecond }
func (s StockTwitsConfig) MinInterval() time.Duration { return time.Duration(s.MinIntervalMS) * time.Millisecond }
func (f FinnhubConfig) MinInterval() time.Duration    { return time.Duration(f.MinIntervalMS) * time.Millisecond }

// Default returns the configuration used when no file is supplied. The
// pacing intervals are per-source: X is the most aggressive limiter
// upstream, StockTwits the most permissive.
func Default() Config {
	return Config{
		Collection: Collection{
			X: XConfig{Limit: 150, MinIntervalMS: 1200},
			Reddit: RedditConfig{
				Subreddits:        []string{"stocks", "investing", "wallstreetbets"},
				PostsPerSubreddit: 25,
				CommentsPerPost:   8,
				MinIntervalMS:     1000,
			},
			YouTube:    YouTubeConfig{Videos: 7, CommentsPerVideo: 50, MinIntervalMS: 1000},
			StockTwits: StockTwitsConfig{Enabled: true, Limit: 80, MinIntervalMS: 700},
			Finnhub:    FinnhubConfig{Enabled: true, Days: 7, MinIntervalMS: 800},
		},
		Server: Server{
			Host:            "127.0.0.1",
			Port:            8080,
			ReadTimeoutSec:  10,
			WriteTimeoutSec: 120,
			IdleTimeoutSec:  60,
			CacheTTLSec:     600,
		},
	}
}

// Load reads a YAML config file layered over Default. An empty path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate ensures the configuration is internally consistent.
func (c *Config) Validate() error {
	col := c.Collection
	if col.X.Limit <= 0 {
		return fmt.Errorf("x limit must be positive, got %d", col.X.Limit)
	}
	if len(col.Reddit.Subreddits) == 0 {
		return fmt.Errorf("reddit subreddits must not be empty")
	}
	if col.Reddit.PostsPerSubreddit <= 0 {
		return fmt.Errorf("reddit posts_per_subreddit must be positive, got %d", col.Reddit.PostsPerSubreddit)
	}
	if col.Reddit.CommentsPerPost < 0 {
		return fmt.Errorf("reddit comments_per_post must not be negative, got %d", col.Reddit.CommentsPerPost)
	}
	if col.YouTube.Videos <= 0 {
		return fmt.Errorf("youtube videos must be positive, got %d", col.YouTube.Videos)
	}
	if col.YouTube.CommentsPerVideo <= 0 {
		return fmt.Errorf("youtube comments_per_video must be positive, got %d", col.YouTube.CommentsPerVideo)
	}
	if col.StockTwits.Limit <= 0 {
		return fmt.Errorf("stocktwits limit must be positive, got %d", col.StockTwits.Limit)
	}
	if col.Finnhub.Days < 1 {
		return fmt.Errorf("finnhub days must be at least 1, got %d", col.Finnhub.Days)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}
	return nil
}
