package scoring

import (
	"fmt"
	"strings"

	"github.com/okian/introeval/internal/domain/lexical"
	"github.com/okian/introeval/internal/domain/model"
)

// salutationRule is one entry of the greeting classifier. Rules are tried in
// order and the first matching one wins.
type salutationRule struct {
	match  func(text string) bool
	result model.SalutationResult
}

func containsAnyOf(phrases ...string) func(string) bool {
	return func(text string) bool { return lexical.ContainsAny(text, phrases) }
}

var salutationRules = []salutationRule{
	{
		match:  containsAnyOf("excited to introduce", "feeling great"),
		result: model.SalutationResult{Score: 5, Level: "Excellent", Feedback: "Excellent greeting with enthusiasm"},
	},
	{
		match:  containsAnyOf("good morning", "good afternoon", "good evening", "good day", "hello everyone"),
		result: model.SalutationResult{Score: 4, Level: "Good", Feedback: "Good formal greeting"},
	},
	{
		// Substring match: "hi" also fires inside words such as "this".
		match:  containsAnyOf("hi", "hello"),
		result: model.SalutationResult{Score: 2, Level: "Normal", Feedback: "Basic greeting found"},
	},
}

var noSalutation = model.SalutationResult{Score: 0, Level: "None", Feedback: "No greeting detected"}

// ScoreSalutation classifies the greeting of a transcript (0-5 points).
func ScoreSalutation(transcript string) model.SalutationResult {
	text := lexical.Normalize(transcript)
	for _, rule := range salutationRules {
		if rule.match(text) {
			return rule.result
		}
	}
	return noSalutation
}

// keywordCategory is a topic with the phrases that signal it.
type keywordCategory struct {
	name     string
	triggers []string
}

var requiredKeywords = []keywordCategory{
	{name: "name", triggers: []string{"name", "myself", "i am", "i'm"}},
	{name: "age", triggers: []string{"years old", "age", "year old"}},
	{name: "school/class", triggers: []string{"class", "school", "studying", "student"}},
	{name: "family", triggers: []string{"family", "father", "mother", "parents", "brother", "sister"}},
	{name: "hobbies", triggers: []string{"hobby", "hobbies", "enjoy", "like", "love", "play", "playing"}},
}

var optionalKeywords = []keywordCategory{
	{name: "about family", triggers: []string{"kind", "loving", "caring", "supportive"}},
	{name: "origin", triggers: []string{"from", "live in", "come from"}},
	{name: "ambition/goal", triggers: []string{"ambition", "goal", "dream", "want to", "aspire"}},
	{name: "fun fact", triggers: []string{"fun fact", "interesting", "unique", "special"}},
	{name: "strengths", triggers: []string{"good at", "strength", "achievement", "proud"}},
}

const (
	requiredKeywordPoints = 4
	optionalKeywordPoints = 2
	optionalKeywordCap    = 10
)

// ScoreKeywords checks topic coverage (0-30 points). Found lists required
// categories first, then optional ones, each in declaration order.
func ScoreKeywords(transcript string) model.KeywordResult {
	text := lexical.Normalize(transcript)
	found := make([]string, 0, len(requiredKeywords)+len(optionalKeywords))
	missing := make([]string, 0, len(requiredKeywords))

	score := 0
	for _, c := range requiredKeywords {
		if lexical.ContainsAny(text, c.triggers) {
			score += requiredKeywordPoints
			found = append(found, c.name)
		} else {
			missing = append(missing, c.name)
		}
	}

	optional := 0
	for _, c := range optionalKeywords {
		if lexical.ContainsAny(text, c.triggers) {
			optional++
			found = append(found, c.name)
		}
	}
	score += min(optional*optionalKeywordPoints, optionalKeywordCap)

	missingText := "None"
	if len(missing) > 0 {
		missingText = strings.Join(missing, ", ")
	}

	return model.KeywordResult{
		Score:    score,
		Found:    found,
		Missing:  missing,
		Feedback: fmt.Sprintf("Found %d keywords. Missing: %s", len(found), missingText),
	}
}

var (
	flowGreetings = []string{"hello", "hi", "good morning", "good afternoon", "good evening"}
	flowNames     = []string{"name", "myself", "i am", "i'm"}
	flowClosings  = []string{"thank", "thanks", "listening"}
)

// nameWindow is how many leading sentences may carry the name.
const nameWindow = 3

// ScoreFlow checks that the introduction opens with a greeting, gives the
// name early and closes with thanks (0-5 points).
func ScoreFlow(transcript string) model.FlowResult {
	sentences := lexical.Sentences(transcript)

	// A single sentence cannot both open and carry the body.
	salutationFirst := len(sentences) >= 2 &&
		lexical.ContainsAny(lexical.Normalize(sentences[0]), flowGreetings)

	nameEarly := false
	for i := 0; i < min(nameWindow, len(sentences)); i++ {
		if lexical.ContainsAny(lexical.Normalize(sentences[i]), flowNames) {
			nameEarly = true
			break
		}
	}

	closing := len(sentences) > 0 &&
		lexical.ContainsAny(lexical.Normalize(sentences[len(sentences)-1]), flowClosings)

	switch {
	case salutationFirst && nameEarly && closing:
		return model.FlowResult{Score: 5, Feedback: "Excellent flow with proper order"}
	case salutationFirst && nameEarly:
		return model.FlowResult{Score: 4, Feedback: "Good flow, missing proper closing"}
	case nameEarly:
		return model.FlowResult{Score: 2, Feedback: "Partial flow detected"}
	default:
		return model.FlowResult{Score: 0, Feedback: "Flow order not followed"}
	}
}
