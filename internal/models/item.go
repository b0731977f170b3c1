package models

import "time"

// Platform identifies which social network a text item came from.
type Platform string

const (
	PlatformX          Platform = "X"
	PlatformReddit     Platform = "Reddit"
	PlatformYouTube    Platform = "YouTube"
	PlatformStockTwits Platform = "StockTwits"
)

// Metadata carries platform-specific fields for a TextItem. Each platform
// has its own variant so callers never reach into an untyped map.
type Metadata interface {
	metadata()
}

// XMetadata records the search query that matched the tweet.
type XMetadata struct {
	Query string `json:"query,omitempty"`
}

// RedditMetadata identifies the subreddit and whether the item is a post or
// a comment. PostID is set for comments only.
type RedditMetadata struct {
	Subreddit string `json:"subreddit"`
	Kind      string `json:"kind"`
	PostID    string `json:"post_id,omitempty"`
}

// YouTubeMetadata identifies the video a comment belongs to.
type YouTubeMetadata struct {
	VideoID string `json:"video_id"`
	Query   string `json:"query,omitempty"`
}

// StockTwitsMetadata records the symbol stream the message came from.
type StockTwitsMetadata struct {
	Symbol string `json:"symbol"`
}

// SyntheticMetadata marks placeholder items produced when a source is
// unavailable. Seq is the item's position in the synthetic set.
type SyntheticMetadata struct {
	Synthetic bool `json:"synthetic"`
	Seq       int  `json:"seq"`
}

func (XMetadata) metadata()          {}
func (RedditMetadata) metadata()     {}
func (YouTubeMetadata) metadata()    {}
func (StockTwitsMetadata) metadata() {}
func (SyntheticMetadata) metadata()  {}

// TextItem is the canonical normalized unit produced by every source
// adapter. Text is non-empty after normalization; items that normalize to
// empty are dropped before they reach the merged set. Immutable once built.
type TextItem struct {
	Platform   Platform   `json:"platform"`
	Text       string     `json:"text"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
	URL        string     `json:"url,omitempty"`
	Author     string     `json:"author,omitempty"`
	ExternalID string     `json:"external_id,omitempty"`
	Meta       Metadata   `json:"meta,omitempty"`
}

// Synthetic reports whether the item is fallback placeholder data.
func (it TextItem) Synthetic() bool {
	_, ok := it.Meta.(SyntheticMetadata)
	return ok
}
