package models

// AggregatedSentiment is Finnhub's provider-computed sentiment summary.
// It carries no raw text and is kept structurally separate from TextItem so
// it never enters the per-item scoring path.
type AggregatedSentiment struct {
	Symbol               string  `json:"symbol"`
	RedditMentions       int     `json:"reddit_mentions"`
	RedditPositiveScore  float64 `json:"reddit_positive_score"`
	RedditNegativeScore  float64 `json:"reddit_negative_score"`
	TwitterMentions      int     `json:"twitter_mentions"`
	TwitterPositiveScore float64 `json:"twitter_positive_score"`
	TwitterNegativeScore float64 `json:"twitter_negative_score"`
}

// FetchResult is the unified output of one pipeline run. Warnings holds
// exactly one entry per source that was unavailable, rate limited, or
// errored; a source's absence from Items without a warning is a contract
// violation.
type FetchResult struct {
	Items    []TextItem           `json:"items"`
	Warnings []string             `json:"warnings"`
	Finnhub  *AggregatedSentiment `json:"finnhub,omitempty"`
}
