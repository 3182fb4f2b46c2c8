package scoring

import (
	"context"
	"fmt"

	"github.com/okian/introeval/internal/domain/lexical"
	"github.com/okian/introeval/internal/domain/model"
)

// GrammarIssue is a single problem reported by a GrammarChecker.
type GrammarIssue struct {
	Offset  int
	Length  int
	Rule    string
	Message string
}

// GrammarChecker finds grammar issues in a transcript. Implementations that
// call out to a remote checker should honor ctx.
type GrammarChecker interface {
	Check(ctx context.Context, text string) ([]GrammarIssue, error)
}

// NoopGrammarChecker reports no issues. It is the default checker, which
// makes the grammar line a fixed pass for any transcript.
type NoopGrammarChecker struct{}

// Check implements GrammarChecker.
func (NoopGrammarChecker) Check(context.Context, string) ([]GrammarIssue, error) {
	return nil, nil
}

// errorsPer100Ceiling is the error density at which the grammar ratio hits 0.
const errorsPer100Ceiling = 10

const lowestRatioScore = 2

// ScoreGrammar scores error density (2-10 points).
func ScoreGrammar(ctx context.Context, checker GrammarChecker, transcript string) (model.GrammarResult, error) {
	issues, err := checker.Check(ctx, transcript)
	if err != nil {
		return model.GrammarResult{}, fmt.Errorf("grammar check: %w", err)
	}

	words := lexical.WordCount(transcript)
	errorsPer100 := 0.0
	if words > 0 {
		errorsPer100 = float64(len(issues)) / float64(words) * 100
	}
	ratio := max(0, 1-min(errorsPer100/errorsPer100Ceiling, 1))

	return model.GrammarResult{
		Score:        scoreAtLeast(ratio, ratioBands, lowestRatioScore),
		Errors:       len(issues),
		ErrorsPer100: round(errorsPer100, 2),
		Feedback:     fmt.Sprintf("%d grammar errors found (%.1f per 100 words)", len(issues), errorsPer100),
	}, nil
}

// ScoreVocabulary scores lexical richness by type-token ratio (0-10 points).
// A transcript without words scores 0.
func ScoreVocabulary(transcript string) model.VocabularyResult {
	words := lexical.Words(lexical.Normalize(transcript))
	if len(words) == 0 {
		return model.VocabularyResult{Score: 0, TTR: 0, Feedback: "No words found"}
	}

	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[w] = struct{}{}
	}
	ttr := float64(len(unique)) / float64(len(words))

	return model.VocabularyResult{
		Score:       scoreAtLeast(ttr, ratioBands, lowestRatioScore),
		TTR:         round(ttr, 3),
		UniqueWords: len(unique),
		TotalWords:  len(words),
		Feedback:    fmt.Sprintf("TTR: %.3f (%d/%d unique words)", ttr, len(unique), len(words)),
	}
}
