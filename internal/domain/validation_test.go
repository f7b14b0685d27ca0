package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestQuestionValidate(t *testing.T) {
	opts := []Option{{Label: "a", Value: "a"}, {Label: "b", Value: "b"}, {Label: "c", Value: "c"}}
	cases := []struct {
		name    string
		q       Question
		wantErr error
	}{
		{"single ok", Question{Kind: SingleChoice, Prompt: "p", Options: opts, Correct: Single("b")}, nil},
		{"single not an option", Question{Kind: SingleChoice, Prompt: "p", Options: opts, Correct: Single("z")}, ErrInvalidQuestion},
		{"multi ok", Question{Kind: MultiChoice, Prompt: "p", Options: opts, Correct: Set("a", "c")}, nil},
		{"multi duplicate", Question{Kind: MultiChoice, Prompt: "p", Options: opts, Correct: Set("a", "a")}, ErrInvalidQuestion},
		{"multi scalar", Question{Kind: MultiChoice, Prompt: "p", Options: opts, Correct: Single("a")}, ErrInvalidQuestion},
		{"text ok", Question{Kind: FreeText, Prompt: "p", Correct: Single("===")}, nil},
		{"text empty", Question{Kind: FreeText, Prompt: "p"}, ErrInvalidQuestion},
		{"unknown kind", Question{Kind: "essay", Prompt: "p", Correct: Single("x")}, ErrUnknownKind},
		{"missing prompt", Question{Kind: FreeText, Correct: Single("x")}, ErrInvalidQuestion},
	}
	for _, tc := range cases {
		err := tc.q.Validate()
		if tc.wantErr == nil && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
	}
}

func TestBankValidateNamesQuestion(t *testing.T) {
	bank := Bank{ID: "b", Questions: []Question{
		{Kind: FreeText, Prompt: "ok", Correct: Single("x")},
		{Kind: FreeText, Prompt: "bad"},
	}}
	err := bank.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if got := err.Error(); got != `bank "b" question 2: invalid question: missing correct answer` {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestAnswerDecodesScalarOrList(t *testing.T) {
	var q struct {
		One  Answer `yaml:"one"`
		Many Answer `yaml:"many"`
	}
	src := "one: const\nmany: [number, string]\n"
	if err := yaml.Unmarshal([]byte(src), &q); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if q.One.Multi || q.One.Value != "const" {
		t.Fatalf("expected scalar const, got %+v", q.One)
	}
	if !q.Many.Multi || len(q.Many.Values) != 2 {
		t.Fatalf("expected two values, got %+v", q.Many)
	}

	var a Answer
	if err := json.Unmarshal([]byte(`["x","y"]`), &a); err != nil {
		t.Fatalf("json list: %v", err)
	}
	if a.String() != "x, y" {
		t.Fatalf("expected joined answer, got %q", a.String())
	}
	if err := json.Unmarshal([]byte(`"let"`), &a); err != nil {
		t.Fatalf("json scalar: %v", err)
	}
	if a.Multi || a.Value != "let" {
		t.Fatalf("expected scalar let, got %+v", a)
	}
}

func TestAnswerStringMarksEmpty(t *testing.T) {
	if got := (Answer{}).String(); got != NoAnswer {
		t.Fatalf("expected %q, got %q", NoAnswer, got)
	}
	if got := Set().String(); got != NoAnswer {
		t.Fatalf("expected %q for empty set, got %q", NoAnswer, got)
	}
}

func TestCorrectLabelUsesOptionLabels(t *testing.T) {
	opts := []Option{{Label: "Number", Value: "number"}, {Label: "Plain Object", Value: "object"}, {Label: "String", Value: "string"}}
	cases := []struct {
		name string
		q    Question
		want string
	}{
		{"single", Question{Kind: SingleChoice, Options: opts, Correct: Single("object")}, "Plain Object"},
		{"multi keeps answer order", Question{Kind: MultiChoice, Options: opts, Correct: Set("string", "number")}, "String, Number"},
		{"text is raw", Question{Kind: FreeText, Correct: Single("===")}, "==="},
		{"unknown value falls back", Question{Kind: SingleChoice, Options: opts, Correct: Single("symbol")}, "symbol"},
		{"no answer", Question{Kind: SingleChoice, Options: opts}, NoAnswer},
	}
	for _, tc := range cases {
		if got := tc.q.CorrectLabel(); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}
