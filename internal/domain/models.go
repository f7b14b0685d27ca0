package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind selects how a question is asked and validated.
type Kind string

const (
	SingleChoice Kind = "single"
	FreeText     Kind = "text"
	MultiChoice  Kind = "multi"
)

// NoAnswer is how an absent answer is rendered.
const NoAnswer = "No Answer"

// Option is one selectable choice of a question.
type Option struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
}

// Answer is either a single value or a set of values (multi choice).
// The zero Answer means no answer was captured.
type Answer struct {
	Value  string
	Values []string
	Multi  bool
}

// Single builds a scalar answer.
func Single(v string) Answer {
	return Answer{Value: v}
}

// Set builds a set-valued answer.
func Set(vs ...string) Answer {
	return Answer{Values: vs, Multi: true}
}

// IsEmpty reports whether nothing was submitted.
func (a Answer) IsEmpty() bool {
	if a.Multi {
		return len(a.Values) == 0
	}
	return strings.TrimSpace(a.Value) == ""
}

// String renders the answer for reports: comma-joined for sets, NoAnswer when empty.
func (a Answer) String() string {
	if a.IsEmpty() {
		return NoAnswer
	}
	if a.Multi {
		return strings.Join(a.Values, ", ")
	}
	return a.Value
}

// UnmarshalYAML accepts either a scalar or a sequence.
func (a *Answer) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*a = Answer{Value: node.Value}
		return nil
	case yaml.SequenceNode:
		var values []string
		if err := node.Decode(&values); err != nil {
			return err
		}
		*a = Set(values...)
		return nil
	}
	return fmt.Errorf("answer: unsupported yaml node at line %d", node.Line)
}

func (a Answer) MarshalYAML() (interface{}, error) {
	if a.Multi {
		return a.Values, nil
	}
	return a.Value, nil
}

// UnmarshalJSON accepts either a string or an array of strings.
func (a *Answer) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err == nil {
		*a = Set(values...)
		return nil
	}
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("answer: %w", err)
	}
	*a = Answer{Value: value}
	return nil
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.Multi {
		if a.Values == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(a.Values)
	}
	return json.Marshal(a.Value)
}

// Question is immutable once a bank has been loaded.
type Question struct {
	ID      string   `yaml:"id" json:"id"`
	Kind    Kind     `yaml:"kind" json:"kind"`
	Prompt  string   `yaml:"prompt" json:"prompt"`
	Options []Option `yaml:"options,omitempty" json:"options,omitempty"`
	Correct Answer   `yaml:"correct" json:"correct"`
}

// CorrectLabel renders the correct answer the way a player saw it: option
// labels for choice questions, the raw value otherwise.
func (q Question) CorrectLabel() string {
	if q.Kind == FreeText || q.Correct.IsEmpty() {
		return q.Correct.String()
	}
	values := q.Correct.Values
	if !q.Correct.Multi {
		values = []string{q.Correct.Value}
	}
	labels := make([]string, len(values))
	for i, v := range values {
		labels[i] = q.labelFor(v)
	}
	return strings.Join(labels, ", ")
}

func (q Question) labelFor(value string) string {
	for _, o := range q.Options {
		if o.Value == value && o.Label != "" {
			return o.Label
		}
	}
	return value
}

// Bank is an ordered collection of questions.
type Bank struct {
	ID        string     `yaml:"id" json:"id"`
	Title     string     `yaml:"title" json:"title"`
	Questions []Question `yaml:"questions" json:"questions"`
}

// QuestionResult records one answered question. UserAnswer may be empty.
type QuestionResult struct {
	QuestionPrompt   string `json:"questionPrompt"`
	UserAnswer       Answer `json:"userAnswer"`
	CorrectAnswer    Answer `json:"correctAnswer"`
	IsCorrect        bool   `json:"isCorrect"`
	TimeTakenSeconds int    `json:"timeTakenSeconds"`
}
