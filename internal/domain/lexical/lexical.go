// Package lexical provides the text primitives shared by the rubric scorers.
//
// Matching is deliberately coarse: phrases are tested as plain substrings of
// the lowercased text, so "hi" matches inside "this". Callers that need
// token-boundary matching must not use these helpers.
package lexical

import "strings"

// sentenceDelimiter is the only character treated as a sentence boundary.
const sentenceDelimiter = "."

// Normalize lowercases s. No locale rules or punctuation stripping apply.
func Normalize(s string) string {
	return strings.ToLower(s)
}

// ContainsAny reports whether text contains any phrase as a substring.
// Phrases are checked in order; text is expected to be normalized already.
func ContainsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// Words splits s on runs of whitespace.
func Words(s string) []string {
	return strings.Fields(s)
}

// WordCount returns the number of whitespace-separated tokens in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// Sentences splits s on periods, trims each fragment and drops empty ones.
// The original casing is kept.
func Sentences(s string) []string {
	parts := strings.Split(s, sentenceDelimiter)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// CountOccurrences counts non-overlapping occurrences of phrase in text.
// An empty phrase never matches.
func CountOccurrences(text, phrase string) int {
	if phrase == "" {
		return 0
	}
	return strings.Count(text, phrase)
}
