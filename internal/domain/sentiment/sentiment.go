// Package sentiment wraps the VADER polarity analyzer used for engagement scoring.
package sentiment

import (
	"strings"

	"github.com/jonreiter/govader"

	"github.com/okian/introeval/internal/domain/model"
)

// Analyzer returns the polarity breakdown of a text. Implementations must be
// safe for concurrent use; the analyzer is built once at startup and shared.
type Analyzer interface {
	PolarityScores(text string) model.Polarity
}

// VaderAnalyzer implements Analyzer with the VADER lexicon and rules.
// The lexicon is loaded once in NewVaderAnalyzer and only read afterwards.
type VaderAnalyzer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderAnalyzer loads the VADER lexicon.
func NewVaderAnalyzer() *VaderAnalyzer {
	return &VaderAnalyzer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// PolarityScores returns the neg/neu/pos proportions and compound score.
// Blank text yields all zeros.
func (v *VaderAnalyzer) PolarityScores(text string) model.Polarity {
	if strings.TrimSpace(text) == "" {
		return model.Polarity{}
	}
	s := v.analyzer.PolarityScores(text)
	return model.Polarity{
		Neg:      s.Negative,
		Neu:      s.Neutral,
		Pos:      s.Positive,
		Compound: s.Compound,
	}
}

// Fixed always returns the same polarity. It is useful when the lexicon is
// not wanted, e.g. in tests or when engagement scoring is pinned.
type Fixed model.Polarity

// PolarityScores implements Analyzer.
func (f Fixed) PolarityScores(string) model.Polarity {
	return model.Polarity(f)
}
