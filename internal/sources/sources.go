// Package sources contains one adapter per social platform. Every adapter
// follows the same policy: check credentials before touching the network,
// pace every outbound request (pagination pages included), normalize raw
// records into models.TextItem, and fold every failure into a Result
// instead of returning an error. A source can degrade, never abort a fetch.
package sources

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/sawpanic/stockpulse/internal/models"
)

const userAgent = "stockpulse/1.0"

// Query is the search input shared by all adapters. Ticker is already
// sanitized by the pipeline; Company is optional and broadens recall.
type Query struct {
	Ticker  string
	Company string
}

func (q Query) company() string {
	return strings.TrimSpace(q.Company)
}

// TextSource is one platform adapter producing canonical text items.
type TextSource interface {
	Platform() models.Platform
	Fetch(ctx context.Context, q Query) models.Result
}

// xQuery builds the X recent-search query: quoted cashtag, optionally
// OR-combined with the company name, excluding retweets and non-English.
func xQuery(q Query) string {
	parts := []string{fmt.Sprintf(`("$%s")`, q.Ticker)}
	if c := q.company(); c != "" {
		parts = append(parts, fmt.Sprintf("%q", c))
	}
	return strings.Join(parts, " OR ") + " -is:retweet lang:en"
}

// redditQuery builds the Reddit search query: quoted ticker, cashtag, and
// optional company name, OR-combined.
func redditQuery(q Query) string {
	parts := []string{q.Ticker, "$" + q.Ticker}
	if c := q.company(); c != "" {
		parts = append(parts, c)
	}
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = fmt.Sprintf("%q", p)
	}
	return strings.Join(quoted, " OR ")
}

// youtubeQuery builds the YouTube video search string.
func youtubeQuery(q Query) string {
	if c := q.company(); c != "" {
		return fmt.Sprintf("%s %s stock analysis", q.Ticker, c)
	}
	return fmt.Sprintf("%s stock analysis", q.Ticker)
}

// failReason formats the warning used when a live fetch errors out.
func failReason(platform models.Platform, err error) string {
	return fmt.Sprintf("%s fetch failed (%v); using mock %s data.", platform, err, platform)
}

// basicAuth encodes HTTP basic-auth credentials.
func basicAuth(user, pass string) string {
	return base64.StdEncoding.EncodeToString([]byte(user + ":" + pass))
}

// firstRunes bounds a provider-sourced string to at most n runes.
func firstRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
