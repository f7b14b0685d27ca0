package app

import (
	"strings"

	"trivia-quiz/internal/domain"
)

// Validate reports whether submitted answers q. Empty submissions are wrong.
// Set-valued answers compare as sets; scalar answers compare trimmed and case-folded.
func Validate(q domain.Question, submitted domain.Answer) bool {
	if submitted.IsEmpty() {
		return false
	}

	if q.Correct.Multi {
		values := submitted.Values
		if !submitted.Multi {
			values = []string{submitted.Value}
		}
		return sameSet(values, q.Correct.Values)
	}

	if submitted.Multi {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(submitted.Value), strings.TrimSpace(q.Correct.Value))
}

func sameSet(submitted, correct []string) bool {
	selected := make(map[string]struct{}, len(submitted))
	for _, v := range submitted {
		selected[v] = struct{}{}
	}
	expected := make(map[string]struct{}, len(correct))
	for _, v := range correct {
		expected[v] = struct{}{}
	}
	if len(selected) != len(expected) {
		return false
	}
	for v := range expected {
		if _, ok := selected[v]; !ok {
			return false
		}
	}
	return true
}
