package app

import (
	"context"

	"trivia-quiz/internal/domain"
)

// BankRepository loads question banks (from cache/backing store). Returned
// banks have passed domain.Bank.Validate.
type BankRepository interface {
	GetBank(ctx context.Context, bankID string) (domain.Bank, error)
}

// PlayRepository tracks the engines currently running (in-memory, Redis, etc).
type PlayRepository interface {
	Add(playID string, engine *Engine)
	Get(playID string) (*Engine, bool)
	Remove(playID string)
	Len() int
}
