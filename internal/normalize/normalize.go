// Package normalize provides the text cleanup applied to every raw record
// before it becomes a canonical TextItem. Cleanup is deliberately light:
// polarity scoring and topic extraction both want cashtags and ordinary
// alphanumerics untouched, so only URLs and whitespace artifacts go.
package normalize

import (
	"regexp"
	"strings"
	"time"
)

var (
	urlRE    = regexp.MustCompile(`https?://\S+|www\.\S+`)
	wsRE     = regexp.MustCompile(`\s+`)
	tickerRE = regexp.MustCompile(`[^A-Z0-9.\-]`)
)

// invisibleReplacer maps zero-width and other invisible whitespace
// characters to plain spaces so the whitespace collapse pass removes them.
var invisibleReplacer = strings.NewReplacer(
	"​", " ", // zero-width space
	"‌", " ", // zero-width non-joiner
	"‍", " ", // zero-width joiner
	"⁠", " ", // word joiner
	"\uFEFF", " ", // BOM / zero-width no-break space
	" ", " ", // no-break space
)

// CleanText strips embedded URLs, collapses whitespace runs to single
// spaces, and trims. Cashtags ($AAPL) and all ordinary text survive.
// Returns "" for empty, whitespace-only, or URL-only input; callers must
// drop items whose text cleans to empty. Idempotent.
func CleanText(text string) string {
	text = urlRE.ReplaceAllString(text, "")
	text = invisibleReplacer.Replace(text)
	text = wsRE.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Ticker sanitizes a user-supplied ticker: uppercased, with everything
// outside A-Z, 0-9, '.' and '-' removed.
func Ticker(ticker string) string {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	return tickerRE.ReplaceAllString(t, "")
}

// FromEpoch converts Unix seconds to a UTC timestamp.
func FromEpoch(seconds float64) time.Time {
	sec := int64(seconds)
	nsec := int64((seconds - float64(sec)) * 1e9)
	return time.Unix(sec, nsec).UTC()
}

// ParseRFC3339 parses a provider timestamp such as "2024-01-01T12:34:56Z",
// returning nil when the value is absent or unparseable. Naive timestamps
// are treated as UTC.
func ParseRFC3339(ts string) *time.Time {
	if ts == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, ts); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
