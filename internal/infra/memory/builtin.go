package memory

import (
	"sort"

	"trivia-quiz/internal/domain"
)

// DefaultBankID is the bank played when none is configured.
const DefaultBankID = "javascript"

// BuiltinBanks returns the banks compiled into the binary.
func BuiltinBanks() map[string]domain.Bank {
	return map[string]domain.Bank{
		DefaultBankID: {
			ID:    DefaultBankID,
			Title: "JavaScript Trivia",
			Questions: []domain.Question{
				{
					ID:     "js-const",
					Kind:   domain.SingleChoice,
					Prompt: "Which keyword declares a constant in JavaScript?",
					Options: []domain.Option{
						{Label: "var", Value: "var"},
						{Label: "let", Value: "let"},
						{Label: "const", Value: "const"},
						{Label: "static", Value: "static"},
					},
					Correct: domain.Single("const"),
				},
				{
					ID:      "js-strict-equality",
					Kind:    domain.FreeText,
					Prompt:  "What is the strict equality operator in JavaScript?",
					Correct: domain.Single("==="),
				},
				{
					ID:     "js-primitives",
					Kind:   domain.MultiChoice,
					Prompt: "Which of the following are JavaScript primitive types?",
					Options: []domain.Option{
						{Label: "number", Value: "number"},
						{Label: "object", Value: "object"},
						{Label: "string", Value: "string"},
						{Label: "boolean", Value: "boolean"},
						{Label: "Array", Value: "Array"},
					},
					Correct: domain.Set("number", "string", "boolean"),
				},
				{
					ID:      "js-let",
					Kind:    domain.FreeText,
					Prompt:  "Which keyword is used to declare a variable that can change?",
					Correct: domain.Single("let"),
				},
				{
					ID:     "js-filter",
					Kind:   domain.SingleChoice,
					Prompt: "Which method is commonly used to filter elements in an array?",
					Options: []domain.Option{
						{Label: "map()", Value: "map"},
						{Label: "filter()", Value: "filter"},
						{Label: "reduce()", Value: "reduce"},
						{Label: "forEach()", Value: "forEach"},
					},
					Correct: domain.Single("filter"),
				},
			},
		},
		"legacy": {
			ID:    "legacy",
			Title: "JavaScript Trivia (classic)",
			Questions: []domain.Question{
				{
					ID:     "classic-const",
					Kind:   domain.SingleChoice,
					Prompt: "Which keyword declares a constant in JavaScript?",
					Options: []domain.Option{
						{Label: "var", Value: "var"},
						{Label: "let", Value: "let"},
						{Label: "const", Value: "const"},
						{Label: "static", Value: "static"},
					},
					Correct: domain.Single("const"),
				},
				{
					ID:      "classic-strict-equality",
					Kind:    domain.FreeText,
					Prompt:  "What is the strict equality operator in JavaScript?",
					Correct: domain.Single("==="),
				},
				{
					ID:     "classic-primitives",
					Kind:   domain.MultiChoice,
					Prompt: "Which of the following are JavaScript primitive types?",
					Options: []domain.Option{
						{Label: "number", Value: "number"},
						{Label: "object", Value: "object"},
						{Label: "string", Value: "string"},
						{Label: "boolean", Value: "boolean"},
						{Label: "Array", Value: "Array"},
					},
					Correct: domain.Set("number", "string", "boolean"),
				},
				{
					ID:      "classic-let",
					Kind:    domain.FreeText,
					Prompt:  "Which keyword is used to declare a variable that can change?",
					Correct: domain.Single("let"),
				},
			},
		},
	}
}

// BuiltinBankIDs lists the built-in bank ids in sorted order.
func BuiltinBankIDs() []string {
	banks := BuiltinBanks()
	ids := make([]string, 0, len(banks))
	for id := range banks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
