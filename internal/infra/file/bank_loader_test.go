package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"trivia-quiz/internal/domain"
)

const yamlBank = `
title: Go basics
questions:
  - id: q1
    kind: single
    prompt: Which keyword starts a goroutine?
    options:
      - {label: go, value: go}
      - {label: run, value: run}
    correct: go
  - id: q2
    kind: multi
    prompt: Which are reference types?
    options:
      - {label: map, value: map}
      - {label: int, value: int}
      - {label: slice, value: slice}
    correct: [map, slice]
  - id: q3
    kind: text
    prompt: What does defer run at?
    correct: function return
`

const jsonBank = `{
  "id": "json-bank",
  "questions": [
    {"id": "q1", "kind": "text", "prompt": "2 + 2?", "correct": "4"}
  ]
}`

func TestReadBankYAML(t *testing.T) {
	path := writeFile(t, "go-basics.yaml", yamlBank)

	bank, err := ReadBank(path)
	if err != nil {
		t.Fatalf("read bank: %v", err)
	}
	if bank.ID != "go-basics" {
		t.Fatalf("expected id from file name, got %q", bank.ID)
	}
	if len(bank.Questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(bank.Questions))
	}
	if q := bank.Questions[1]; !q.Correct.Multi || len(q.Correct.Values) != 2 {
		t.Fatalf("expected set answer, got %+v", q.Correct)
	}
	if err := bank.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestLoaderServesJSONByDeclaredID(t *testing.T) {
	path := writeFile(t, "bank.json", jsonBank)
	loader := NewBankLoader(path)

	bank, err := loader.LoadBank(context.Background(), "json-bank")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if bank.Questions[0].Correct.Value != "4" {
		t.Fatalf("unexpected answer %+v", bank.Questions[0].Correct)
	}

	if _, err := loader.LoadBank(context.Background(), "other"); !errors.Is(err, domain.ErrBankNotFound) {
		t.Fatalf("expected ErrBankNotFound, got %v", err)
	}
}

func TestReadBankMissingFile(t *testing.T) {
	_, err := ReadBank(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, domain.ErrBankNotFound) {
		t.Fatalf("expected ErrBankNotFound, got %v", err)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestShippedBankIsValid(t *testing.T) {
	bank, err := ReadBank(filepath.Join("..", "..", "..", "config", "banks", "go-basics.yaml"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if bank.ID != "go-basics" || len(bank.Questions) != 3 {
		t.Fatalf("unexpected bank %+v", bank)
	}
	if err := bank.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}
