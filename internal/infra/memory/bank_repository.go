package memory

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"trivia-quiz/internal/domain"
)

// BankLoader fetches question banks from a backing store (file, database, built-ins).
type BankLoader interface {
	LoadBank(ctx context.Context, bankID string) (domain.Bank, error)
}

// BankRepository serves validated banks from a TTL cache. A bank is validated
// once, when it is loaded; banks that fail validation are never cached.
type BankRepository struct {
	loader BankLoader
	ttl    time.Duration
	clock  func() time.Time
	fills  singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	banks map[string]bankEntry
}

type bankEntry struct {
	bank      domain.Bank
	expiresAt time.Time
}

func (e bankEntry) fresh(now time.Time) bool {
	return now.Before(e.expiresAt)
}

func NewBankRepository(loader BankLoader, ttl time.Duration) *BankRepository {
	return &BankRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		banks:  make(map[string]bankEntry),
	}
}

func (r *BankRepository) GetBank(ctx context.Context, bankID string) (domain.Bank, error) {
	if bank, ok := r.lookup(bankID); ok {
		return bank, nil
	}

	// concurrent misses for one bank share a single load
	result, err, _ := r.fills.Do(bankID, func() (interface{}, error) {
		if bank, ok := r.lookup(bankID); ok {
			return bank, nil
		}
		bank, err := LoadValidated(ctx, r.loader, bankID)
		if err != nil {
			return domain.Bank{}, err
		}
		r.store(bankID, bank)
		return bank, nil
	})
	if err != nil {
		return domain.Bank{}, err
	}
	return result.(domain.Bank), nil
}

func (r *BankRepository) lookup(bankID string) (domain.Bank, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.banks[bankID]
	if !ok || !entry.fresh(r.clock()) {
		return domain.Bank{}, false
	}
	return entry.bank, true
}

func (r *BankRepository) store(bankID string, bank domain.Bank) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.banks[bankID] = bankEntry{bank: bank, expiresAt: r.clock().Add(r.ttlWithJitter())}
}

func (r *BankRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// up to 10% more, so banks loaded together do not expire together
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// LoadValidated loads a bank, names it after bankID when the source left the
// id empty, and checks it before anyone plays it.
func LoadValidated(ctx context.Context, loader BankLoader, bankID string) (domain.Bank, error) {
	bank, err := loader.LoadBank(ctx, bankID)
	if err != nil {
		return domain.Bank{}, err
	}
	if bank.ID == "" {
		bank.ID = bankID
	}
	if err := bank.Validate(); err != nil {
		return domain.Bank{}, err
	}
	return bank, nil
}

// StaticBankLoader is a loader backed by an in-memory map (built-ins, tests).
type StaticBankLoader struct {
	banks map[string]domain.Bank
}

func NewStaticBankLoader(banks map[string]domain.Bank) *StaticBankLoader {
	return &StaticBankLoader{banks: banks}
}

func (l *StaticBankLoader) LoadBank(_ context.Context, bankID string) (domain.Bank, error) {
	if bank, ok := l.banks[bankID]; ok {
		return bank, nil
	}
	return domain.Bank{}, domain.ErrBankNotFound
}

// ChainLoader asks each loader in turn, moving on only when a bank is not found.
type ChainLoader []BankLoader

func (c ChainLoader) LoadBank(ctx context.Context, bankID string) (domain.Bank, error) {
	for _, loader := range c {
		bank, err := loader.LoadBank(ctx, bankID)
		if err == nil {
			return bank, nil
		}
		if !errors.Is(err, domain.ErrBankNotFound) {
			return domain.Bank{}, err
		}
	}
	return domain.Bank{}, domain.ErrBankNotFound
}
