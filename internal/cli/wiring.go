package cli

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/config"
	"trivia-quiz/internal/infra/file"
	"trivia-quiz/internal/infra/memory"
	pgstore "trivia-quiz/internal/infra/postgres"
	redisstore "trivia-quiz/internal/infra/redis"
)

// runtime is the wired service plus the resources it holds open.
type runtime struct {
	service *app.QuizService
	bankID  string
	closers []func()
}

func (r *runtime) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
}

// buildRuntime picks the bank source (file or Postgres, each backed by the
// built-ins), the bank cache (Redis or in-memory) and the play registry.
// With a bank file and no bank id, the file's bank is played.
func buildRuntime(ctx context.Context, cfg config.Config, logger *zap.Logger) (*runtime, error) {
	rt := &runtime{bankID: cfg.Quiz.Bank}
	if rt.bankID == "" {
		rt.bankID = memory.DefaultBankID
	}

	builtins := memory.NewStaticBankLoader(memory.BuiltinBanks())
	var loader memory.BankLoader = builtins
	switch {
	case cfg.Quiz.BankFile != "":
		fileLoader := file.NewBankLoader(cfg.Quiz.BankFile)
		if cfg.Quiz.Bank == "" {
			rt.bankID = fileLoader.ID()
		}
		loader = memory.ChainLoader{fileLoader, builtins}
	case cfg.Postgres.URL != "":
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, err
		}
		rt.closers = append(rt.closers, pool.Close)
		loader = memory.ChainLoader{pgstore.NewBankLoader(pool), builtins}
	}

	cacheTTL := config.Duration(cfg.Quiz.CacheTTL, config.DefaultCacheTTL)
	var banks app.BankRepository
	var plays app.PlayRepository
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		rt.closers = append(rt.closers, func() { _ = client.Close() })
		banks = redisstore.NewBankRepository(client, loader, cacheTTL, logger)
		plays = redisstore.NewPlayStore(client, config.Duration(cfg.Redis.TTL, 10*time.Minute))
	} else {
		banks = memory.NewBankRepository(loader, cacheTTL)
		plays = memory.NewPlayStore()
	}

	rt.service = app.NewQuizService(banks, plays, app.Settings{
		TimeLimit:   cfg.TimeLimit(),
		DefaultName: cfg.Quiz.DefaultName,
	}, logger)
	logger.Debug("runtime ready",
		zap.String("bank", rt.bankID),
		zap.Duration("time_limit", cfg.TimeLimit()),
		zap.Bool("redis", cfg.Redis.Addr != ""),
		zap.Bool("postgres", cfg.Postgres.URL != ""),
	)
	return rt, nil
}
