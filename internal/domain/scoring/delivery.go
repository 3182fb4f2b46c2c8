package scoring

import (
	"fmt"

	"github.com/okian/introeval/internal/domain/lexical"
	"github.com/okian/introeval/internal/domain/model"
	"github.com/okian/introeval/internal/domain/sentiment"
)

// FillerWords are counted as substrings of the lowercased transcript, so
// "so" also counts inside "also".
var FillerWords = []string{
	"um", "uh", "like", "you know", "so", "actually", "basically",
	"right", "i mean", "well", "kinda", "sort of", "okay", "hmm", "ah",
}

var fillerRateBands = []band{
	{threshold: 3, score: 15},
	{threshold: 6, score: 12},
	{threshold: 9, score: 9},
	{threshold: 12, score: 6},
}

const lowestClarityScore = 3

// ScoreClarity scores filler word frequency (3-15 points). FillerRate is a
// percentage of the word count and is 0 when there are no words.
func ScoreClarity(transcript string) model.ClarityResult {
	text := lexical.Normalize(transcript)
	words := lexical.WordCount(transcript)

	count := 0
	for _, f := range FillerWords {
		count += lexical.CountOccurrences(text, f)
	}

	rate := 0.0
	if words > 0 {
		rate = float64(count) / float64(words) * 100
	}

	return model.ClarityResult{
		Score:       scoreAtMost(rate, fillerRateBands, lowestClarityScore),
		FillerCount: count,
		FillerRate:  round(rate, 2),
		Feedback:    fmt.Sprintf("%d filler words found (%.1f%% rate)", count, rate),
	}
}

var positiveBands = []band{
	{threshold: 0.9, score: 15},
	{threshold: 0.7, score: 12},
	{threshold: 0.5, score: 9},
	{threshold: 0.3, score: 6},
}

const lowestEngagementScore = 3

// ScoreEngagement scores the positive share of the sentiment breakdown
// (3-15 points). The analyzer's breakdown is passed through unchanged.
func ScoreEngagement(analyzer sentiment.Analyzer, transcript string) model.EngagementResult {
	polarity := analyzer.PolarityScores(transcript)
	return model.EngagementResult{
		Score:         scoreAtLeast(polarity.Pos, positiveBands, lowestEngagementScore),
		PositiveScore: round(polarity.Pos, 3),
		Sentiment:     polarity,
		Feedback:      fmt.Sprintf("Positive sentiment: %.3f", polarity.Pos),
	}
}
