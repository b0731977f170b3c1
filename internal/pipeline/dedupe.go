package pipeline

import (
	"fmt"

	"github.com/sawpanic/stockpulse/internal/models"
)

// dedupePrefixLen is how much normalized text enters the composite key.
// Keying on a prefix (rather than text alone) tolerates items that share a
// URL but differ in body, while still catching exact cross-pagination and
// cross-adapter duplicates.
const dedupePrefixLen = 200

// Dedupe removes duplicate items, keeping the first occurrence per
// composite key and preserving relative order. Idempotent.
func Dedupe(items []models.TextItem) []models.TextItem {
	seen := make(map[string]struct{}, len(items))
	out := make([]models.TextItem, 0, len(items))
	for _, it := range items {
		key := dedupeKey(it)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, it)
	}
	return out
}

func dedupeKey(it models.TextItem) string {
	text := it.Text
	if runes := []rune(text); len(runes) > dedupePrefixLen {
		text = string(runes[:dedupePrefixLen])
	}
	return fmt.Sprintf("%s|%s|%s|%s", it.Platform, it.ExternalID, it.URL, text)
}
