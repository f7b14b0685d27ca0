package app_test

import (
	"context"
	"sync"
	"time"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
)

// fakeTime is a manual time source; timers fire when Advance passes them.
type fakeTime struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func newFakeTime() *fakeTime {
	return &fakeTime{now: time.Date(2024, 11, 22, 10, 0, 0, 0, time.UTC)}
}

func (ft *fakeTime) Now() time.Time {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	return ft.now
}

func (ft *fakeTime) AfterFunc(d time.Duration, f func()) func() bool {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	t := &fakeTimer{at: ft.now.Add(d), f: f}
	ft.timers = append(ft.timers, t)
	if d <= 0 {
		t.fired = true
		go f()
	}
	return func() bool {
		ft.mu.Lock()
		defer ft.mu.Unlock()
		active := !t.stopped && !t.fired
		t.stopped = true
		return active
	}
}

func (ft *fakeTime) Advance(d time.Duration) {
	ft.mu.Lock()
	ft.now = ft.now.Add(d)
	var due []func()
	for _, t := range ft.timers {
		if !t.stopped && !t.fired && !t.at.After(ft.now) {
			t.fired = true
			due = append(due, t.f)
		}
	}
	ft.mu.Unlock()
	for _, f := range due {
		f()
	}
}

func (ft *fakeTime) pending() int {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	n := 0
	for _, t := range ft.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (ft *fakeTime) clock(limit time.Duration) *app.Clock {
	return app.NewClockWithTime(limit, ft.Now, ft.AfterFunc)
}

// scriptedPrompter answers from a prompt->answer table. before runs ahead of
// every question answer and may return an error to fail that prompt.
type scriptedPrompter struct {
	mu          sync.Mutex
	name        string
	nameErr     error
	answers     map[string]domain.Answer
	before      func(ctx context.Context, call int) error
	replays     []bool
	calls       int
	nameCalls   int
	replayCalls int
}

func (p *scriptedPrompter) AskName(context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nameCalls++
	return p.name, p.nameErr
}

func (p *scriptedPrompter) answer(ctx context.Context, prompt string) (domain.Answer, error) {
	p.mu.Lock()
	p.calls++
	call := p.calls
	before := p.before
	p.mu.Unlock()

	if before != nil {
		if err := before(ctx, call); err != nil {
			return domain.Answer{}, err
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.answers[prompt], nil
}

func (p *scriptedPrompter) AskSingleChoice(ctx context.Context, prompt string, _ []domain.Option) (string, error) {
	a, err := p.answer(ctx, prompt)
	return a.Value, err
}

func (p *scriptedPrompter) AskFreeText(ctx context.Context, prompt string) (string, error) {
	a, err := p.answer(ctx, prompt)
	return a.Value, err
}

func (p *scriptedPrompter) AskMultiChoice(ctx context.Context, prompt string, _ []domain.Option) ([]string, error) {
	a, err := p.answer(ctx, prompt)
	return a.Values, err
}

func (p *scriptedPrompter) AskReplay(context.Context) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.replayCalls++
	if len(p.replays) == 0 {
		return false, nil
	}
	again := p.replays[0]
	p.replays = p.replays[1:]
	return again, nil
}

func (p *scriptedPrompter) questionCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

type recordingDisplay struct {
	mu        sync.Mutex
	welcomes  []string
	questions int
	feedback  []bool
	timeUps   int
	tooSlow   int
	aborted   int
	summaries []app.Report
	goodbyes  int
}

func (d *recordingDisplay) Welcome(name string, _ time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.welcomes = append(d.welcomes, name)
}

func (d *recordingDisplay) Question(int, int, int, domain.Question) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.questions++
}

func (d *recordingDisplay) Feedback(correct bool, _ domain.Question) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.feedback = append(d.feedback, correct)
}

func (d *recordingDisplay) TimeUp(string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.timeUps++
}

func (d *recordingDisplay) TooSlow() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tooSlow++
}

func (d *recordingDisplay) Aborted() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.aborted++
}

func (d *recordingDisplay) Summary(r app.Report) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.summaries = append(d.summaries, r)
}

func (d *recordingDisplay) Goodbye(string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.goodbyes++
}

func fourQuestionBank() domain.Bank {
	return domain.Bank{
		ID: "classic",
		Questions: []domain.Question{
			{
				ID:     "const",
				Kind:   domain.SingleChoice,
				Prompt: "Which keyword declares a constant in JavaScript?",
				Options: []domain.Option{
					{Label: "var", Value: "var"},
					{Label: "let", Value: "let"},
					{Label: "const", Value: "const"},
				},
				Correct: domain.Single("const"),
			},
			{
				ID:      "strict",
				Kind:    domain.FreeText,
				Prompt:  "What is the strict equality operator in JavaScript?",
				Correct: domain.Single("==="),
			},
			{
				ID:     "primitives",
				Kind:   domain.MultiChoice,
				Prompt: "Which of the following are JavaScript primitive types?",
				Options: []domain.Option{
					{Label: "number", Value: "number"},
					{Label: "object", Value: "object"},
					{Label: "string", Value: "string"},
					{Label: "boolean", Value: "boolean"},
				},
				Correct: domain.Set("number", "string", "boolean"),
			},
			{
				ID:      "let",
				Kind:    domain.FreeText,
				Prompt:  "Which keyword is used to declare a variable that can change?",
				Correct: domain.Single("let"),
			},
		},
	}
}

// correctAnswers answers every question of bank correctly, multi choice in a shuffled order.
func correctAnswers(bank domain.Bank) map[string]domain.Answer {
	out := make(map[string]domain.Answer, len(bank.Questions))
	for _, q := range bank.Questions {
		a := q.Correct
		if a.Multi {
			vs := append([]string(nil), a.Values...)
			for i, j := 0, len(vs)-1; i < j; i, j = i+1, j-1 {
				vs[i], vs[j] = vs[j], vs[i]
			}
			a = domain.Set(vs...)
		}
		out[q.Prompt] = a
	}
	return out
}
