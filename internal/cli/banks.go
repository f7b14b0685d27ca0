package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"trivia-quiz/internal/config"
	"trivia-quiz/internal/domain"
	"trivia-quiz/internal/infra/file"
	"trivia-quiz/internal/infra/memory"
	pgstore "trivia-quiz/internal/infra/postgres"
	"trivia-quiz/internal/logging"
)

// NewBanksCmd lists the available question banks and imports bank files into Postgres.
func NewBanksCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "banks",
		Short: "List question banks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			return listBanks(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "import FILE...",
		Short: "Validate bank files and store them in Postgres",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return importBanks(cmd.Context(), opts, args, cmd.OutOrStdout())
		},
	})
	return cmd
}

func listBanks(ctx context.Context, cfg config.Config, out io.Writer) error {
	builtins := memory.BuiltinBanks()
	for _, id := range memory.BuiltinBankIDs() {
		bank := builtins[id]
		fmt.Fprintf(out, "%-12s %2d questions  %s (built-in)\n", id, len(bank.Questions), bank.Title)
	}

	if cfg.Quiz.BankFile != "" {
		bank, err := file.ReadBank(cfg.Quiz.BankFile)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%-12s %2d questions  %s (%s)\n", bank.ID, len(bank.Questions), bank.Title, cfg.Quiz.BankFile)
	}

	if cfg.Postgres.URL == "" {
		return nil
	}
	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	ids, err := pgstore.NewBankLoader(pool).ListBanks(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Fprintf(out, "%-12s (postgres)\n", id)
	}
	return nil
}

func importBanks(ctx context.Context, opts *options, paths []string, out io.Writer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}
	logger, err := logging.New(cfg.Log.Level, "info")
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	banks := make([]domain.Bank, 0, len(paths))
	for _, path := range paths {
		bank, err := file.ReadBank(path)
		if err != nil {
			return err
		}
		if err := bank.Validate(); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		banks = append(banks, bank)
	}

	if err := runMigrationsWithConfig(ctx, cfg, logger); err != nil {
		return err
	}
	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	store := pgstore.NewBankLoader(pool)
	for _, bank := range banks {
		if err := store.SaveBank(ctx, bank); err != nil {
			return err
		}
		logger.Info("bank imported", zap.String("bank", bank.ID), zap.Int("questions", len(bank.Questions)))
		fmt.Fprintf(out, "imported %s (%d questions)\n", bank.ID, len(bank.Questions))
	}
	return nil
}
