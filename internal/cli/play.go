package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"trivia-quiz/internal/logging"
	"trivia-quiz/internal/transport/terminal"
)

// NewPlayCmd builds the subcommand that runs the quiz in the terminal. It is
// also what the root command runs.
func NewPlayCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play the quiz in this terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), opts)
		},
	}
}

func runPlay(ctx context.Context, opts *options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log.Level, "warn")
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	rt, err := buildRuntime(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	// Ctrl+C aborts the pending prompt; the partial summary is still shown.
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupts)

	console := terminal.New(os.Stdin, os.Stdout, terminal.WithInterrupts(interrupts))
	return rt.service.Play(ctx, rt.bankID, console, console)
}
