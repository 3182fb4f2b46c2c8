// Package model contains the evaluation results passed between layers.
// Field names and JSON tags mirror the report shape returned by POST /evaluate.
package model

// SalutationResult classifies the greeting.
type SalutationResult struct {
	Score    int    `json:"score"`
	Level    string `json:"level"`
	Feedback string `json:"feedback"`
}

// KeywordResult lists the topic categories found in the transcript.
// Missing only ever holds required categories.
type KeywordResult struct {
	Score    int      `json:"score"`
	Found    []string `json:"found"`
	Missing  []string `json:"missing"`
	Feedback string   `json:"feedback"`
}

// FlowResult scores the greeting -> name -> closing order.
type FlowResult struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// SpeechRateResult carries words per minute rounded to one decimal.
type SpeechRateResult struct {
	Score    int     `json:"score"`
	WPM      float64 `json:"wpm"`
	Feedback string  `json:"feedback"`
}

// GrammarResult reports the issue count found by the grammar checker.
type GrammarResult struct {
	Score        int     `json:"score"`
	Errors       int     `json:"errors"`
	ErrorsPer100 float64 `json:"errors_per_100"`
	Feedback     string  `json:"feedback"`
}

// VocabularyResult reports lexical richness as a type-token ratio.
type VocabularyResult struct {
	Score       int     `json:"score"`
	TTR         float64 `json:"ttr"`
	UniqueWords int     `json:"unique_words"`
	TotalWords  int     `json:"total_words"`
	Feedback    string  `json:"feedback"`
}

// ClarityResult reports filler word frequency. FillerRate is a percentage.
type ClarityResult struct {
	Score       int     `json:"score"`
	FillerCount int     `json:"filler_count"`
	FillerRate  float64 `json:"filler_rate"`
	Feedback    string  `json:"feedback"`
}

// Polarity is the sentiment breakdown produced by the analyzer.
// Neg, Neu and Pos are proportions in [0,1]; Compound is in [-1,1].
type Polarity struct {
	Neg      float64 `json:"neg"`
	Neu      float64 `json:"neu"`
	Pos      float64 `json:"pos"`
	Compound float64 `json:"compound"`
}

// EngagementResult scores positive affect.
type EngagementResult struct {
	Score         int      `json:"score"`
	PositiveScore float64  `json:"positive_score"`
	Sentiment     Polarity `json:"sentiment"`
	Feedback      string   `json:"feedback"`
}

// ContentStructure groups salutation, keywords and flow.
type ContentStructure struct {
	Score      int              `json:"score"`
	Max        int              `json:"max"`
	Salutation SalutationResult `json:"salutation"`
	Keywords   KeywordResult    `json:"keywords"`
	Flow       FlowResult       `json:"flow"`
}

// SpeechRate wraps the speech rate result.
type SpeechRate struct {
	Score   int              `json:"score"`
	Max     int              `json:"max"`
	Details SpeechRateResult `json:"details"`
}

// LanguageGrammar groups grammar and vocabulary.
type LanguageGrammar struct {
	Score      int              `json:"score"`
	Max        int              `json:"max"`
	Grammar    GrammarResult    `json:"grammar"`
	Vocabulary VocabularyResult `json:"vocabulary"`
}

// Clarity wraps the filler word result.
type Clarity struct {
	Score   int           `json:"score"`
	Max     int           `json:"max"`
	Details ClarityResult `json:"details"`
}

// Engagement wraps the sentiment result.
type Engagement struct {
	Score   int              `json:"score"`
	Max     int              `json:"max"`
	Details EngagementResult `json:"details"`
}

// Categories holds the five rubric sections.
type Categories struct {
	ContentStructure ContentStructure `json:"content_structure"`
	SpeechRate       SpeechRate       `json:"speech_rate"`
	LanguageGrammar  LanguageGrammar  `json:"language_grammar"`
	Clarity          Clarity          `json:"clarity"`
	Engagement       Engagement       `json:"engagement"`
}

// Report is the full evaluation of one transcript. It is built once and
// never modified afterwards.
type Report struct {
	OverallScore int        `json:"overall_score"`
	MaxScore     int        `json:"max_score"`
	Percentage   float64    `json:"percentage"`
	Categories   Categories `json:"categories"`
	WordCount    int        `json:"word_count"`
	DurationSec  int        `json:"duration_sec"`
}

// SubScores returns every leaf score keyed by rubric category name.
func (r *Report) SubScores() map[string]int {
	c := r.Categories
	return map[string]int{
		"salutation":  c.ContentStructure.Salutation.Score,
		"keywords":    c.ContentStructure.Keywords.Score,
		"flow":        c.ContentStructure.Flow.Score,
		"speech_rate": c.SpeechRate.Details.Score,
		"grammar":     c.LanguageGrammar.Grammar.Score,
		"vocabulary":  c.LanguageGrammar.Vocabulary.Score,
		"clarity":     c.Clarity.Details.Score,
		"engagement":  c.Engagement.Details.Score,
	}
}
