// Package scoring implements the introduction rubric: one scorer per
// category and an Evaluator that composes them into a single report.
package scoring

import "math"

// Category names a rubric line item.
type Category string

// Rubric categories.
const (
	CategorySalutation Category = "salutation"
	CategoryKeywords   Category = "keywords"
	CategoryFlow       Category = "flow"
	CategorySpeechRate Category = "speech_rate"
	CategoryGrammar    Category = "grammar"
	CategoryVocabulary Category = "vocabulary"
	CategoryClarity    Category = "clarity"
	CategoryEngagement Category = "engagement"
)

// Category maxima. They add up to MaxScore.
const (
	maxSalutation = 5
	maxKeywords   = 30
	maxFlow       = 5
	maxSpeechRate = 10
	maxGrammar    = 10
	maxVocabulary = 10
	maxClarity    = 15
	maxEngagement = 15

	// MaxScore is the best possible overall score.
	MaxScore = 100
)

// Section totals as reported under "categories".
const (
	maxContentStructure = maxSalutation + maxKeywords + maxFlow
	maxLanguageGrammar  = maxGrammar + maxVocabulary
)

// DefaultDurationSec is used when the caller does not supply a duration.
const DefaultDurationSec = 52

var categoryMax = map[Category]int{
	CategorySalutation: maxSalutation,
	CategoryKeywords:   maxKeywords,
	CategoryFlow:       maxFlow,
	CategorySpeechRate: maxSpeechRate,
	CategoryGrammar:    maxGrammar,
	CategoryVocabulary: maxVocabulary,
	CategoryClarity:    maxClarity,
	CategoryEngagement: maxEngagement,
}

// MaxFor returns the maximum points of c, or 0 for an unknown category.
func MaxFor(c Category) int {
	return categoryMax[c]
}

// Section is a report-level grouping of categories.
type Section struct {
	Name       string     `json:"name"`
	Max        int        `json:"max"`
	Categories []Category `json:"categories"`
}

// Sections returns the rubric layout in report order.
func Sections() []Section {
	return []Section{
		{Name: "content_structure", Max: maxContentStructure, Categories: []Category{CategorySalutation, CategoryKeywords, CategoryFlow}},
		{Name: "speech_rate", Max: maxSpeechRate, Categories: []Category{CategorySpeechRate}},
		{Name: "language_grammar", Max: maxLanguageGrammar, Categories: []Category{CategoryGrammar, CategoryVocabulary}},
		{Name: "clarity", Max: maxClarity, Categories: []Category{CategoryClarity}},
		{Name: "engagement", Max: maxEngagement, Categories: []Category{CategoryEngagement}},
	}
}

// band maps a threshold to the points it earns.
type band struct {
	threshold float64
	score     int
}

// scoreAtLeast returns the score of the first band whose threshold v meets.
// Bands must be ordered by descending threshold.
func scoreAtLeast(v float64, bands []band, fallback int) int {
	for _, b := range bands {
		if v >= b.threshold {
			return b.score
		}
	}
	return fallback
}

// scoreAtMost returns the score of the first band whose threshold v does not
// exceed. Bands must be ordered by ascending threshold.
func scoreAtMost(v float64, bands []band, fallback int) int {
	for _, b := range bands {
		if v <= b.threshold {
			return b.score
		}
	}
	return fallback
}

// ratioBands is shared by the grammar and vocabulary scorers.
var ratioBands = []band{
	{threshold: 0.9, score: 10},
	{threshold: 0.7, score: 8},
	{threshold: 0.5, score: 6},
	{threshold: 0.3, score: 4},
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
