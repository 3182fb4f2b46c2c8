package scoring

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/introeval/internal/domain/lexical"
	"github.com/okian/introeval/internal/domain/model"
	"github.com/okian/introeval/internal/domain/sentiment"
)

// Option applies a configuration option to the Evaluator.
type Option func(*Evaluator)

// WithSentimentAnalyzer sets the analyzer used for engagement scoring.
func WithSentimentAnalyzer(a sentiment.Analyzer) Option {
	return func(e *Evaluator) {
		if a != nil {
			e.analyzer = a
		}
	}
}

// WithGrammarChecker sets the checker used for grammar scoring.
func WithGrammarChecker(c GrammarChecker) Option {
	return func(e *Evaluator) {
		if c != nil {
			e.grammar = c
		}
	}
}

// Evaluator runs every rubric scorer once and assembles the report.
// It holds only read-only capabilities and is safe for concurrent use.
type Evaluator struct {
	analyzer sentiment.Analyzer
	grammar  GrammarChecker
}

// NewEvaluator creates an evaluator. Without options it uses the VADER
// analyzer and the no-op grammar checker.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{
		grammar: NoopGrammarChecker{},
	}

	// Apply all options
	for _, opt := range opts {
		opt(e)
	}

	// Loading the lexicon is the expensive part; skip it when one was given.
	if e.analyzer == nil {
		e.analyzer = sentiment.NewVaderAnalyzer()
	}

	return e
}

// Validate rejects input that must never reach the scorers.
func Validate(transcript string, durationSec int) error {
	if strings.TrimSpace(transcript) == "" {
		return ErrEmptyTranscript
	}
	if durationSec <= 0 {
		return ErrInvalidDuration
	}
	return nil
}

// Evaluate scores transcript against the full rubric. A failure anywhere in
// the pipeline yields an error and no report.
func (e *Evaluator) Evaluate(ctx context.Context, transcript string, durationSec int) (report *model.Report, err error) {
	if err := Validate(transcript, durationSec); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEvaluation, err)
	}

	defer func() {
		if r := recover(); r != nil {
			report = nil
			err = fmt.Errorf("%w: %v", ErrEvaluation, r)
		}
	}()

	return e.evaluate(ctx, transcript, durationSec)
}

func (e *Evaluator) evaluate(ctx context.Context, transcript string, durationSec int) (*model.Report, error) {
	salutation := ScoreSalutation(transcript)
	keywords := ScoreKeywords(transcript)
	flow := ScoreFlow(transcript)

	speech, err := ScoreSpeechRate(transcript, durationSec)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEvaluation, err)
	}

	grammar, err := ScoreGrammar(ctx, e.grammar, transcript)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEvaluation, err)
	}
	vocabulary := ScoreVocabulary(transcript)

	clarity := ScoreClarity(transcript)
	engagement := ScoreEngagement(e.analyzer, transcript)

	content := salutation.Score + keywords.Score + flow.Score
	language := grammar.Score + vocabulary.Score
	total := content + speech.Score + language + clarity.Score + engagement.Score
	// The rubric is already out of 100, so this equals total.
	percentage := round(float64(total)/MaxScore*100, 2)

	return &model.Report{
		OverallScore: total,
		MaxScore:     MaxScore,
		Percentage:   percentage,
		Categories: model.Categories{
			ContentStructure: model.ContentStructure{
				Score:      content,
				Max:        maxContentStructure,
				Salutation: salutation,
				Keywords:   keywords,
				Flow:       flow,
			},
			SpeechRate: model.SpeechRate{
				Score:   speech.Score,
				Max:     maxSpeechRate,
				Details: speech,
			},
			LanguageGrammar: model.LanguageGrammar{
				Score:      language,
				Max:        maxLanguageGrammar,
				Grammar:    grammar,
				Vocabulary: vocabulary,
			},
			Clarity: model.Clarity{
				Score:   clarity.Score,
				Max:     maxClarity,
				Details: clarity,
			},
			Engagement: model.Engagement{
				Score:   engagement.Score,
				Max:     maxEngagement,
				Details: engagement,
			},
		},
		WordCount:   lexical.WordCount(transcript),
		DurationSec: durationSec,
	}, nil
}
