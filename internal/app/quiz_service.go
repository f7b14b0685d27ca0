package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trivia-quiz/internal/domain"
)

// Settings are the quiz knobs shared by every play.
type Settings struct {
	TimeLimit   time.Duration
	DefaultName string
}

// QuizService contains the quiz use cases shared by the terminal and websocket front ends.
type QuizService struct {
	banks    BankRepository
	plays    PlayRepository
	settings Settings
	logger   *zap.Logger
}

func NewQuizService(banks BankRepository, plays PlayRepository, settings Settings, logger *zap.Logger) *QuizService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuizService{banks: banks, plays: plays, settings: settings, logger: logger}
}

// Settings returns the configured quiz settings.
func (s *QuizService) Settings() Settings {
	return s.settings
}

// Bank returns the validated bank for bankID.
func (s *QuizService) Bank(ctx context.Context, bankID string) (domain.Bank, error) {
	bank, err := s.banks.GetBank(ctx, bankID)
	if err != nil {
		return domain.Bank{}, fmt.Errorf("load bank %q: %w", bankID, err)
	}
	return bank, nil
}

// NewEngine builds an engine for the bank.
func (s *QuizService) NewEngine(ctx context.Context, bankID string, prompt Prompter, display Display, opts ...EngineOption) (*Engine, error) {
	bank, err := s.Bank(ctx, bankID)
	if err != nil {
		return nil, err
	}

	base := []EngineOption{WithLogger(s.logger), WithDefaultName(s.settings.DefaultName)}
	return NewEngine(bank, prompt, display, s.settings.TimeLimit, append(base, opts...)...), nil
}

// Play runs a full session for one player until they exit. The play is
// visible in the play repository while it runs.
func (s *QuizService) Play(ctx context.Context, bankID string, prompt Prompter, display Display, opts ...EngineOption) error {
	engine, err := s.NewEngine(ctx, bankID, prompt, display, opts...)
	if err != nil {
		return err
	}

	playID := uuid.NewString()
	s.plays.Add(playID, engine)
	defer s.plays.Remove(playID)

	s.logger.Debug("play started", zap.String("play", playID), zap.String("bank", bankID))
	return engine.Run(ctx)
}

// ActivePlays reports how many sessions are running.
func (s *QuizService) ActivePlays() int {
	return s.plays.Len()
}
