package sources

import (
	"fmt"
	"strings"
	"time"

	"github.com/sawpanic/stockpulse/internal/models"
)

// syntheticPhrases are the canned sentiment-bearing texts substituted when
// a source is unavailable. They span bullish, bearish, and neutral takes so
// downstream summaries stay meaningful without credentials.
var syntheticPhrases = []string{
	"$%[1]s looks strong after earnings. Guidance was better than expected.",
	"I'm worried %[1]s is overvalued here. Macro headwinds are real.",
	"Neutral take: %[1]s might trade sideways until the next catalyst.",
	"Bull case: %[1]s product cycle + margin expansion could drive upside.",
	"Bear case: %[1]s competition increasing; watch revenue growth.",
}

// SyntheticItems produces the fixed fallback set for one platform: five
// deterministic items spaced six hours apart ending now, each tagged
// synthetic in Meta. Performs no I/O.
func SyntheticItems(platform models.Platform, ticker string) []models.TextItem {
	now := time.Now().UTC()
	ticker = strings.ToUpper(ticker)
	items := make([]models.TextItem, 0, len(syntheticPhrases))
	for i, phrase := range syntheticPhrases {
		created := now.Add(-time.Duration(i*6) * time.Hour)
		items = append(items, models.TextItem{
			Platform:   platform,
			Text:       fmt.Sprintf(phrase, ticker),
			CreatedAt:  &created,
			Author:     "mock",
			ExternalID: fmt.Sprintf("mock-%s-%d", platform, i),
			Meta:       models.SyntheticMetadata{Synthetic: true, Seq: i},
		})
	}
	return items
}
