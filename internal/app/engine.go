package app

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trivia-quiz/internal/domain"
)

// Phase is a state of the quiz session machine.
type Phase string

const (
	NotStarted   Phase = "not_started"
	AwaitingName Phase = "awaiting_name"
	Running      Phase = "running"
	Expired      Phase = "expired"
	Completed    Phase = "completed"
	Aborted      Phase = "aborted"
	Summarizing  Phase = "summarizing"
	Exit         Phase = "exit"
)

// DefaultPlayerName is used when the player enters a blank name.
const DefaultPlayerName = "Player"

// Prompter collects one answer per call. Implementations must return promptly
// once ctx is done, and return domain.ErrInputAborted when the player cancels.
type Prompter interface {
	AskName(ctx context.Context) (string, error)
	AskSingleChoice(ctx context.Context, prompt string, options []domain.Option) (string, error)
	AskFreeText(ctx context.Context, prompt string) (string, error)
	AskMultiChoice(ctx context.Context, prompt string, options []domain.Option) ([]string, error)
	AskReplay(ctx context.Context) (bool, error)
}

// Display is line-oriented output; nothing flows back to the engine.
type Display interface {
	Welcome(name string, limit time.Duration)
	Question(number, total, secondsLeft int, q domain.Question)
	Feedback(correct bool, q domain.Question)
	TimeUp(name string)
	TooSlow()
	Aborted()
	Summary(report Report)
	Goodbye(name string)
}

var errDeadline = errors.New("deadline reached")

type reply struct {
	answer domain.Answer
	err    error
}

// Engine drives one player's quiz sessions.
type Engine struct {
	bank        domain.Bank
	prompt      Prompter
	display     Display
	clock       *Clock
	rnd         *rand.Rand
	logger      *zap.Logger
	defaultName string

	attempt string
	phase   Phase
	state   SessionState
}

// EngineOption customizes an Engine.
type EngineOption func(*Engine)

// WithClock replaces the wall clock, typically with a fake in tests.
func WithClock(clock *Clock) EngineOption {
	return func(e *Engine) { e.clock = clock }
}

// WithRand makes the shuffle order reproducible.
func WithRand(rnd *rand.Rand) EngineOption {
	return func(e *Engine) { e.rnd = rnd }
}

// WithLogger logs phase transitions and each recorded attempt.
func WithLogger(logger *zap.Logger) EngineOption {
	return func(e *Engine) { e.logger = logger }
}

// WithPlayerName presets the name so the name prompt is skipped.
func WithPlayerName(name string) EngineOption {
	return func(e *Engine) { e.state.UserName = strings.TrimSpace(name) }
}

// WithDefaultName overrides DefaultPlayerName.
func WithDefaultName(name string) EngineOption {
	return func(e *Engine) {
		if name != "" {
			e.defaultName = name
		}
	}
}

// NewEngine prepares a play of bank that ends after timeLimit. It does not
// validate the bank.
func NewEngine(bank domain.Bank, prompt Prompter, display Display, timeLimit time.Duration, opts ...EngineOption) *Engine {
	e := &Engine{
		bank:        bank,
		prompt:      prompt,
		display:     display,
		defaultName: DefaultPlayerName,
		phase:       NotStarted,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.clock == nil {
		e.clock = NewClock(timeLimit)
	}
	if e.rnd == nil {
		e.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	e.state.TimeLimit = e.clock.Limit()
	return e
}

// Phase returns the current machine state.
func (e *Engine) Phase() Phase {
	return e.phase
}

// State returns a copy of the session state.
func (e *Engine) State() SessionState {
	return e.state.clone()
}

// Run plays attempts until the player chooses to exit. Aborting the name or
// replay prompt also exits; neither is an error.
func (e *Engine) Run(ctx context.Context) error {
	for {
		if _, err := e.Play(ctx); err != nil {
			if isAbort(err) {
				e.transition(Exit)
				return nil
			}
			return err
		}

		again, err := e.prompt.AskReplay(ctx)
		if err != nil && !isAbort(err) {
			return err
		}
		if err != nil || !again {
			e.transition(Exit)
			e.display.Goodbye(e.state.UserName)
			return nil
		}

		e.logger.Debug("replay requested", zap.String("attempt", e.attempt))
		e.state.reset()
		e.clock.Reset()
		e.transition(NotStarted)
	}
}

// Play runs a single attempt, from the name prompt to the displayed summary.
// The returned error is non-nil only when the name prompt fails.
func (e *Engine) Play(ctx context.Context) (Report, error) {
	e.attempt = uuid.NewString()

	if e.state.UserName == "" {
		e.transition(AwaitingName)
		name, err := e.prompt.AskName(ctx)
		if err != nil {
			return Report{}, err
		}
		name = strings.TrimSpace(name)
		if name == "" {
			name = e.defaultName
		}
		e.state.UserName = name
	}

	e.display.Welcome(e.state.UserName, e.clock.Limit())
	questions := shuffle(e.bank.Questions, e.rnd)

	e.state.StartTime = e.clock.Arm()
	e.transition(Running)
	outcome := e.loop(ctx, questions)

	// disarm before summarizing so a late deadline cannot race the report
	e.clock.Disarm()
	e.transition(outcome)

	e.transition(Summarizing)
	report := BuildSummary(e.state, len(questions), e.clock.Elapsed())
	report.Outcome = outcome
	e.display.Summary(report)
	e.logger.Info("attempt finished",
		zap.String("attempt", e.attempt),
		zap.String("player", e.state.UserName),
		zap.String("outcome", string(outcome)),
		zap.Int("score", report.Correct),
		zap.Int("total", report.Total),
	)
	return report, nil
}

func (e *Engine) loop(ctx context.Context, questions []domain.Question) Phase {
	for i, q := range questions {
		if e.clock.IsExpired() {
			e.display.TimeUp(e.state.UserName)
			return Expired
		}

		e.display.Question(i+1, len(questions), e.clock.RemainingSeconds(), q)
		presentedAt := e.clock.Now()

		answer, err := e.await(ctx, q)
		if errors.Is(err, errDeadline) {
			e.display.TimeUp(e.state.UserName)
			return Expired
		}
		if err != nil {
			e.logger.Info("input aborted", zap.String("attempt", e.attempt), zap.Error(err))
			e.display.Aborted()
			return Aborted
		}

		// the deadline may have passed before its signal was observed
		if e.clock.IsExpired() {
			e.display.TooSlow()
			return Expired
		}

		correct := Validate(q, answer)
		e.display.Feedback(correct, q)
		e.state.record(domain.QuestionResult{
			QuestionPrompt:   q.Prompt,
			UserAnswer:       answer,
			CorrectAnswer:    q.Correct,
			IsCorrect:        correct,
			TimeTakenSeconds: int(e.clock.Now().Sub(presentedAt) / time.Second),
		})
	}
	return Completed
}

// await races the prompt against the deadline signal and ctx. The prompt
// goroutine is cancelled on return and its late reply is dropped.
func (e *Engine) await(ctx context.Context, q domain.Question) (domain.Answer, error) {
	askCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	replies := make(chan reply, 1)
	go func() {
		answer, err := e.ask(askCtx, q)
		replies <- reply{answer: answer, err: err}
	}()

	select {
	case r := <-replies:
		return r.answer, r.err
	case <-e.clock.Expired():
		return domain.Answer{}, errDeadline
	case <-ctx.Done():
		return domain.Answer{}, ctx.Err()
	}
}

func (e *Engine) ask(ctx context.Context, q domain.Question) (domain.Answer, error) {
	switch q.Kind {
	case domain.SingleChoice:
		v, err := e.prompt.AskSingleChoice(ctx, q.Prompt, q.Options)
		return domain.Single(v), err
	case domain.FreeText:
		v, err := e.prompt.AskFreeText(ctx, q.Prompt)
		return domain.Single(v), err
	case domain.MultiChoice:
		vs, err := e.prompt.AskMultiChoice(ctx, q.Prompt, q.Options)
		return domain.Set(vs...), err
	}
	return domain.Answer{}, nil
}

func (e *Engine) transition(to Phase) {
	e.logger.Debug("state transition",
		zap.String("attempt", e.attempt),
		zap.String("from", string(e.phase)),
		zap.String("to", string(to)),
	)
	e.phase = to
}

func isAbort(err error) bool {
	return errors.Is(err, domain.ErrInputAborted) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
