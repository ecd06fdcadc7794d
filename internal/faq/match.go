// Package faq implements the widget's question matching.
//
// The algorithm is deliberately minimal: a case-insensitive exact lookup,
// then a case-insensitive substring filter for suggestions. End users already
// depend on this behavior, so it is part of the observable contract — do not
// add ranking, fuzzing, or tokenization here.
package faq

import (
	"strings"

	"github.com/Salaheddine999/askio-sub000/internal/domain"
)

// Result is the outcome of matching one user input against a FAQ list.
// Exactly one of the two shapes applies: an exact hit carries the answer,
// otherwise Suggestions holds candidate questions for the user to pick from.
type Result struct {
	Exact       bool
	Answer      string
	Suggestions []string
}

// Match scans entries in order and returns the answer of the first entry
// whose question equals input case-insensitively. Duplicate questions are
// legal; earlier entries shadow later ones (first-match policy).
//
// Without an exact hit, Suggestions is the ordered subset of questions that
// contain input as a case-insensitive substring. An empty subset falls back
// to the full question list, so suggestions are never empty while any FAQ
// exists. An empty FAQ list yields a no-hit result with no suggestions.
func Match(input string, entries []domain.FAQEntry) Result {
	if len(entries) == 0 {
		return Result{}
	}

	for _, e := range entries {
		if strings.EqualFold(e.Question, input) {
			return Result{Exact: true, Answer: e.Answer}
		}
	}

	needle := strings.ToLower(input)
	var filtered []string
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Question), needle) {
			filtered = append(filtered, e.Question)
		}
	}
	if len(filtered) == 0 {
		filtered = make([]string, 0, len(entries))
		for _, e := range entries {
			filtered = append(filtered, e.Question)
		}
	}

	return Result{Suggestions: filtered}
}

// AnswerFor returns the answer of the first entry whose question equals q
// case-insensitively. Used by the suggestion-click path, where the question
// is known to exist.
func AnswerFor(q string, entries []domain.FAQEntry) (string, bool) {
	for _, e := range entries {
		if strings.EqualFold(e.Question, q) {
			return e.Answer, true
		}
	}
	return "", false
}
