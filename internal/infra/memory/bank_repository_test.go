package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"trivia-quiz/internal/domain"
)

func TestBankRepositoryCaches(t *testing.T) {
	loader := &countingLoader{
		BankLoader: NewStaticBankLoader(map[string]domain.Bank{
			"bank-1": sampleBank(),
		}),
	}
	repo := NewBankRepository(loader, time.Minute)

	if _, err := repo.GetBank(context.Background(), "bank-1"); err != nil {
		t.Fatalf("get bank: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := repo.GetBank(context.Background(), "bank-1"); err != nil {
		t.Fatalf("get bank 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestBankRepositoryReloadsAfterExpiry(t *testing.T) {
	loader := &countingLoader{
		BankLoader: NewStaticBankLoader(map[string]domain.Bank{"bank-1": sampleBank()}),
	}
	repo := NewBankRepository(loader, time.Minute)
	now := time.Unix(1_700_000_000, 0)
	repo.clock = func() time.Time { return now }

	_, _ = repo.GetBank(context.Background(), "bank-1")
	now = now.Add(2 * time.Minute)
	_, _ = repo.GetBank(context.Background(), "bank-1")
	if loader.calls != 2 {
		t.Fatalf("expected reload after ttl, loader calls %d", loader.calls)
	}
}

func TestBankRepositoryRejectsInvalidBankWithoutCaching(t *testing.T) {
	bad := sampleBank()
	bad.Questions[0].Correct = domain.Single("5")
	loader := &countingLoader{
		BankLoader: NewStaticBankLoader(map[string]domain.Bank{"bank-1": bad}),
	}
	repo := NewBankRepository(loader, time.Minute)

	for i := 0; i < 2; i++ {
		if _, err := repo.GetBank(context.Background(), "bank-1"); !errors.Is(err, domain.ErrInvalidQuestion) {
			t.Fatalf("expected ErrInvalidQuestion, got %v", err)
		}
	}
	if loader.calls != 2 {
		t.Fatalf("invalid bank must not be cached, loader calls %d", loader.calls)
	}
}

func TestBankRepositoryNamesUnnamedBank(t *testing.T) {
	unnamed := sampleBank()
	unnamed.ID = ""
	repo := NewBankRepository(NewStaticBankLoader(map[string]domain.Bank{"bank-1": unnamed}), time.Minute)

	bank, err := repo.GetBank(context.Background(), "bank-1")
	if err != nil {
		t.Fatalf("get bank: %v", err)
	}
	if bank.ID != "bank-1" {
		t.Fatalf("expected id from lookup, got %q", bank.ID)
	}
}

func TestStaticBankLoaderUnknown(t *testing.T) {
	_, err := NewStaticBankLoader(nil).LoadBank(context.Background(), "nope")
	if !errors.Is(err, domain.ErrBankNotFound) {
		t.Fatalf("expected ErrBankNotFound, got %v", err)
	}
}

type failingLoader struct{ err error }

func (l failingLoader) LoadBank(context.Context, string) (domain.Bank, error) {
	return domain.Bank{}, l.err
}

func TestChainLoaderFallsThroughOnNotFound(t *testing.T) {
	chain := ChainLoader{
		NewStaticBankLoader(nil),
		NewStaticBankLoader(map[string]domain.Bank{"bank-1": sampleBank()}),
	}
	bank, err := chain.LoadBank(context.Background(), "bank-1")
	if err != nil || bank.ID != "bank-1" {
		t.Fatalf("expected fallback to second loader, got %+v %v", bank, err)
	}

	if _, err := chain.LoadBank(context.Background(), "nope"); !errors.Is(err, domain.ErrBankNotFound) {
		t.Fatalf("expected ErrBankNotFound, got %v", err)
	}
}

func TestChainLoaderStopsOnOtherErrors(t *testing.T) {
	boom := errors.New("connection refused")
	chain := ChainLoader{
		failingLoader{err: boom},
		NewStaticBankLoader(map[string]domain.Bank{"bank-1": sampleBank()}),
	}
	if _, err := chain.LoadBank(context.Background(), "bank-1"); !errors.Is(err, boom) {
		t.Fatalf("expected backing store error, got %v", err)
	}
}

func TestBuiltinBanksAreValid(t *testing.T) {
	for _, id := range BuiltinBankIDs() {
		bank := BuiltinBanks()[id]
		if err := bank.Validate(); err != nil {
			t.Fatalf("builtin bank %s: %v", id, err)
		}
	}
	if got := len(BuiltinBanks()[DefaultBankID].Questions); got != 5 {
		t.Fatalf("expected 5 default questions, got %d", got)
	}
}

type countingLoader struct {
	BankLoader
	calls int
}

func (l *countingLoader) LoadBank(ctx context.Context, bankID string) (domain.Bank, error) {
	l.calls++
	return l.BankLoader.LoadBank(ctx, bankID)
}

func sampleBank() domain.Bank {
	return domain.Bank{
		ID: "bank-1",
		Questions: []domain.Question{
			{
				ID:     "q1",
				Kind:   domain.SingleChoice,
				Prompt: "What is 2 + 2?",
				Options: []domain.Option{
					{Label: "3", Value: "3"},
					{Label: "4", Value: "4"},
				},
				Correct: domain.Single("4"),
			},
		},
	}
}
