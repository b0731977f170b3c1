package analysis

import (
	"math"
	"strings"
)

// LexiconScorer is a small weighted-lexicon polarity scorer tuned for
// finance chatter. It understands simple negation ("not", "no", "never"
// directly before a scored token) and the usual market slang.
type LexiconScorer struct {
	weights map[string]float64
}

// NewLexiconScorer builds the default scorer.
func NewLexiconScorer() *LexiconScorer {
	return &LexiconScorer{weights: defaultLexicon}
}

// normalization constant from the VADER compound formula.
const compoundAlpha = 15.0

// Score tokenizes on whitespace, sums token valences with negation
// flipping, and squashes the sum into [-1, 1].
func (s *LexiconScorer) Score(text string) Scores {
	tokens := strings.Fields(strings.ToLower(text))
	if len(tokens) == 0 {
		return Scores{Neu: 1}
	}

	var sum, posSum, negSum float64
	negated := false
	for _, tok := range tokens {
		tok = strings.Trim(tok, ".,!?;:()[]\"'")
		if tok == "" {
			continue
		}
		if _, ok := negators[tok]; ok {
			negated = true
			continue
		}
		w, ok := s.weights[tok]
		if !ok {
			w = cashtagWeight(tok)
		}
		if negated {
			w = -w
			negated = false
		}
		sum += w
		if w > 0 {
			posSum += w
		} else if w < 0 {
			negSum -= w
		}
	}

	compound := sum / math.Sqrt(sum*sum+compoundAlpha)
	total := posSum + negSum + float64(len(tokens))
	return Scores{
		Compound: compound,
		Pos:      posSum / total,
		Neg:      negSum / total,
		Neu:      float64(len(tokens)) / total,
	}
}

// cashtagWeight gives emoji-style tokens a valence the lexicon map cannot
// hold as plain lowercase words.
func cashtagWeight(tok string) float64 {
	switch tok {
	case "🚀", "📈", "💎":
		return 2.0
	case "📉", "🩸":
		return -2.0
	}
	return 0
}

var negators = map[string]struct{}{
	"not":    {},
	"no":     {},
	"never":  {},
	"n't":    {},
	"won't":  {},
	"don't":  {},
	"isn't":  {},
	"wasn't": {},
	"can't":  {},
}

var defaultLexicon = map[string]float64{
	// General polarity.
	"good": 1.5, "great": 2.0, "excellent": 2.5, "amazing": 2.5,
	"strong": 1.5, "love": 2.0, "like": 1.0, "best": 2.0,
	"win": 1.5, "winning": 1.5, "up": 1.0, "higher": 1.0,
	"bad": -1.5, "terrible": -2.5, "awful": -2.5, "horrible": -2.5,
	"weak": -1.5, "hate": -2.0, "worst": -2.0, "worse": -1.5,
	"lose": -1.5, "losing": -1.5, "down": -1.0, "lower": -1.0,

	// Market slang.
	"bullish": 2.0, "bull": 1.5, "moon": 2.0, "mooning": 2.0,
	"rally": 1.5, "breakout": 1.5, "beat": 1.5, "beats": 1.5,
	"upgrade": 1.5, "upgraded": 1.5, "buy": 1.0, "long": 0.8,
	"undervalued": 1.5, "growth": 1.0, "profit": 1.2, "profits": 1.2,
	"gains": 1.5, "calls": 0.8, "surge": 1.5, "soar": 1.8, "soars": 1.8,

	"bearish": -2.0, "bear": -1.5, "crash": -2.5, "crashing": -2.5,
	"dump": -2.0, "dumping": -2.0, "tank": -2.0, "tanking": -2.0,
	"miss": -1.5, "missed": -1.5, "downgrade": -1.5, "downgraded": -1.5,
	"sell": -1.0, "short": -0.8, "overvalued": -1.5, "bubble": -1.5,
	"loss": -1.2, "losses": -1.2, "puts": -0.8, "bagholder": -1.8,
	"plunge": -1.8, "plunges": -1.8, "bankrupt": -2.5, "bankruptcy": -2.5,
	"risk": -0.8, "risky": -1.0, "fraud": -2.5, "lawsuit": -1.5,
}
