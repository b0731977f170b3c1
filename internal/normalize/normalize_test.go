package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText_RemovesURLs(t *testing.T) {
	cases := map[string]string{
		"check https://example.com/x?y=1 out":  "check out",
		"www.example.com only":                 "only",
		"https://a.b":                          "",
		"$AAPL to the moon https://chart.io/1": "$AAPL to the moon",
	}
	for in, want := range cases {
		assert.Equal(t, want, CleanText(in), "input %q", in)
	}
}

func TestCleanText_CollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", CleanText("  a\t\tb\n\nc  "))
	assert.Equal(t, "zero width gone", CleanText("zero​width​ \uFEFF gone"))
	assert.Equal(t, "", CleanText("   \n\t "))
	assert.Equal(t, "", CleanText(""))
}

func TestCleanText_PreservesCashtags(t *testing.T) {
	got := CleanText("$AAPL and $MSFT both up 3%")
	assert.Equal(t, "$AAPL and $MSFT both up 3%", got)
}

func TestCleanText_Idempotent(t *testing.T) {
	inputs := []string{
		"mixed  ​ text https://x.co/a and www.b.c tail",
		"$TSLA\n\nearnings   beat",
		"",
	}
	for _, in := range inputs {
		once := CleanText(in)
		assert.Equal(t, once, CleanText(once), "input %q", in)
	}
}

func TestTicker(t *testing.T) {
	assert.Equal(t, "AAPL", Ticker(" aapl "))
	assert.Equal(t, "BRK.B", Ticker("brk.b"))
	assert.Equal(t, "AAPL", Ticker("$AAPL!"))
	assert.Equal(t, "", Ticker("  "))
}

func TestFromEpoch(t *testing.T) {
	got := FromEpoch(1704110400)
	assert.Equal(t, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestParseRFC3339(t *testing.T) {
	got := ParseRFC3339("2024-01-01T12:34:56Z")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 1, 1, 12, 34, 56, 0, time.UTC), *got)

	naive := ParseRFC3339("2024-01-01T12:34:56")
	require.NotNil(t, naive)
	assert.Equal(t, time.UTC, naive.Location())

	assert.Nil(t, ParseRFC3339(""))
	assert.Nil(t, ParseRFC3339("not-a-time"))
}
