package cli

import (
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"trivia-quiz/internal/config"
)

// options carries the persistent flags shared by every subcommand.
type options struct {
	configPath string
	timeLimit  string
	bank       string
	bankFile   string
	logLevel   string
}

// Execute runs the CLI.
func Execute() error {
	config.LoadDotEnv()
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "trivia",
		Short:        "Timed trivia quiz for the terminal",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", os.Getenv("TRIVIA_CONFIG"), "path to YAML config (default "+config.DefaultPath+")")
	flags.StringVar(&opts.timeLimit, "time-limit", "", "quiz time limit, e.g. 60s or 90")
	flags.StringVar(&opts.bank, "bank", "", "question bank id")
	flags.StringVar(&opts.bankFile, "bank-file", "", "YAML or JSON question bank file")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(NewPlayCmd(opts))
	cmd.AddCommand(NewServeCmd(opts))
	cmd.AddCommand(NewMigrateCmd(opts))
	cmd.AddCommand(NewBanksCmd(opts))
	return cmd
}

// loadConfig reads the config file, then env vars, then flags. A missing
// default config file is fine; a missing explicit one is not.
func loadConfig(opts *options) (config.Config, error) {
	path := opts.configPath
	explicit := path != ""
	if !explicit {
		path = config.DefaultPath
	}

	cfg, err := config.Load(path)
	if err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return cfg, err
		}
		cfg = config.Config{}
	}
	fileBankFile := cfg.Quiz.BankFile
	cfg.ApplyEnv()

	if opts.timeLimit != "" {
		cfg.Quiz.TimeLimit = opts.timeLimit
	}
	if opts.bank != "" {
		cfg.Quiz.Bank = opts.bank
	}
	if opts.bankFile != "" {
		cfg.Quiz.BankFile = opts.bankFile
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	// a bank file given by env or flag is played under its own id unless a
	// bank id was given the same way
	bankGiven := opts.bank != "" || os.Getenv("TRIVIA_BANK") != ""
	if cfg.Quiz.BankFile != fileBankFile && !bankGiven {
		cfg.Quiz.Bank = ""
	}
	return cfg, nil
}
