// Package analysis turns collected text items into polarity scores and
// per-ticker summaries.
package analysis

import (
	"sort"
	"time"

	"github.com/sawpanic/stockpulse/internal/models"
)

// Scores holds one item's polarity breakdown. Compound is the overall
// polarity in [-1, 1]; Pos, Neu, Neg are the fraction of the text in each
// class and sum to roughly 1.
type Scores struct {
	Compound float64 `json:"compound"`
	Pos      float64 `json:"pos"`
	Neu      float64 `json:"neu"`
	Neg      float64 `json:"neg"`
}

// Scorer assigns polarity scores to a single cleaned text.
type Scorer interface {
	Score(text string) Scores
}

// ScoredItem pairs an item with its scores and label.
type ScoredItem struct {
	models.TextItem
	Scores Scores `json:"scores"`
	Label  string `json:"label"`
}

// Polarity labels. The compound thresholds follow the common VADER
// convention of +/-0.05.
const (
	LabelPositive = "positive"
	LabelNegative = "negative"
	LabelNeutral  = "neutral"

	labelThreshold = 0.05
)

// Label classifies a compound score.
func Label(compound float64) string {
	switch {
	case compound >= labelThreshold:
		return LabelPositive
	case compound <= -labelThreshold:
		return LabelNegative
	default:
		return LabelNeutral
	}
}

// Analyze scores every item with the given scorer, preserving order.
func Analyze(items []models.TextItem, scorer Scorer) []ScoredItem {
	out := make([]ScoredItem, 0, len(items))
	for _, it := range items {
		s := scorer.Score(it.Text)
		out = append(out, ScoredItem{TextItem: it, Scores: s, Label: Label(s.Compound)})
	}
	return out
}

// Summary aggregates scored items for one ticker.
type Summary struct {
	Total         int     `json:"total"`
	Positive      int     `json:"positive"`
	Negative      int     `json:"negative"`
	Neutral       int     `json:"neutral"`
	MeanCompound  float64 `json:"mean_compound"`
	OverallLabel  string  `json:"overall_label"`
	SyntheticOnly bool    `json:"synthetic_only"`
}

// Summarize computes the overall sentiment summary. SyntheticOnly is true
// when every item came from a fallback generator, which a caller should
// surface rather than present as live market read.
func Summarize(items []ScoredItem) Summary {
	s := Summary{Total: len(items), SyntheticOnly: len(items) > 0}
	var sum float64
	for _, it := range items {
		sum += it.Scores.Compound
		switch it.Label {
		case LabelPositive:
			s.Positive++
		case LabelNegative:
			s.Negative++
		default:
			s.Neutral++
		}
		if !it.Synthetic() {
			s.SyntheticOnly = false
		}
	}
	if s.Total > 0 {
		s.MeanCompound = sum / float64(s.Total)
	}
	s.OverallLabel = Label(s.MeanCompound)
	return s
}

// PlatformBreakdown computes one Summary per platform, keyed by platform
// name.
func PlatformBreakdown(items []ScoredItem) map[string]Summary {
	byPlatform := make(map[string][]ScoredItem)
	for _, it := range items {
		key := string(it.Platform)
		byPlatform[key] = append(byPlatform[key], it)
	}
	out := make(map[string]Summary, len(byPlatform))
	for k, group := range byPlatform {
		out[k] = Summarize(group)
	}
	return out
}

// Distribution counts items per label.
func Distribution(items []ScoredItem) map[string]int {
	out := map[string]int{LabelPositive: 0, LabelNegative: 0, LabelNeutral: 0}
	for _, it := range items {
		out[it.Label]++
	}
	return out
}

// TimeBucket is one point of the sentiment time series.
type TimeBucket struct {
	Start        time.Time `json:"start"`
	Count        int       `json:"count"`
	MeanCompound float64   `json:"mean_compound"`
}

// TimeSeries buckets dated items into fixed windows and returns the
// buckets in chronological order. Items without a timestamp are skipped.
func TimeSeries(items []ScoredItem, window time.Duration) []TimeBucket {
	if window <= 0 {
		window = time.Hour
	}
	type acc struct {
		count int
		sum   float64
	}
	buckets := make(map[time.Time]*acc)
	for _, it := range items {
		if it.CreatedAt == nil {
			continue
		}
		start := it.CreatedAt.UTC().Truncate(window)
		a := buckets[start]
		if a == nil {
			a = &acc{}
			buckets[start] = a
		}
		a.count++
		a.sum += it.Scores.Compound
	}

	out := make([]TimeBucket, 0, len(buckets))
	for start, a := range buckets {
		out = append(out, TimeBucket{Start: start, Count: a.count, MeanCompound: a.sum / float64(a.count)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}
