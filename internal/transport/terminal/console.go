package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/term"

	"trivia-quiz/internal/domain"
)

// Console is the terminal Prompter and Display. Input lines are read by a
// single goroutine. After a prompt is cancelled by the deadline, lines typed
// for it are dropped before the next prompt reads.
type Console struct {
	out        io.Writer
	lines      chan string
	interrupts <-chan os.Signal
	color      bool
	stale      atomic.Bool

	mu sync.Mutex
}

// Option customizes a Console.
type Option func(*Console)

// WithInterrupts makes a signal on ch abort the pending prompt.
func WithInterrupts(ch <-chan os.Signal) Option {
	return func(c *Console) { c.interrupts = ch }
}

// WithColor forces ANSI styling on or off.
func WithColor(enabled bool) Option {
	return func(c *Console) { c.color = enabled }
}

// New starts reading lines from in. Color defaults to on when out is a terminal.
func New(in io.Reader, out io.Writer, opts ...Option) *Console {
	c := &Console{
		out:   out,
		lines: make(chan string),
		color: isTerminal(out),
	}
	for _, opt := range opts {
		opt(c)
	}
	go c.readLines(in)
	return c
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (c *Console) readLines(in io.Reader) {
	defer close(c.lines)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		c.lines <- scanner.Text()
	}
}

// drain discards lines already typed for a cancelled prompt.
func (c *Console) drain() {
	for {
		select {
		case _, ok := <-c.lines:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

func (c *Console) readLine(ctx context.Context, label string) (string, error) {
	if c.stale.Swap(false) {
		c.drain()
	}
	c.printf("%s", label)
	select {
	case line, ok := <-c.lines:
		if !ok {
			c.println()
			return "", domain.ErrInputAborted
		}
		return line, nil
	case <-c.interrupts:
		c.println()
		return "", domain.ErrInputAborted
	case <-ctx.Done():
		c.stale.Store(true)
		return "", ctx.Err()
	}
}

func (c *Console) AskName(ctx context.Context) (string, error) {
	return c.readLine(ctx, c.style("Enter your name player: ", bold))
}

func (c *Console) AskSingleChoice(ctx context.Context, prompt string, options []domain.Option) (string, error) {
	c.println(c.style(prompt, bold) + " " + c.style("(Type the number or the answer)", gray))
	c.printOptions(options)
	line, err := c.readLine(ctx, "Your answer: ")
	if err != nil {
		return "", err
	}
	value, ok := resolveOption(line, options)
	if !ok {
		c.println(c.style("⚠️  Invalid choice. This question will count as incorrect.", yellow))
	}
	return value, nil
}

func (c *Console) AskFreeText(ctx context.Context, prompt string) (string, error) {
	c.println(c.style(prompt, bold) + " " + c.style("(Type your answer)", gray))
	return c.readLine(ctx, "Your answer: ")
}

func (c *Console) AskMultiChoice(ctx context.Context, prompt string, options []domain.Option) ([]string, error) {
	c.println(c.style(prompt, bold) + " " + c.style("(Pick MORE THAN ONE, e.g. 1,3,4)", gray))
	c.printOptions(options)
	line, err := c.readLine(ctx, "Your answers: ")
	if err != nil {
		return nil, err
	}
	values, ok := resolveOptions(line, options)
	if !ok {
		c.println(c.style("⚠️  Invalid input. This question will count as incorrect.", yellow))
	}
	return values, nil
}

func (c *Console) AskReplay(ctx context.Context) (bool, error) {
	c.println("What would you like to do next?")
	c.println("  1. 🔄 Play Again")
	c.println("  2. 🚪 Exit")
	for {
		line, err := c.readLine(ctx, "Your choice: ")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "1", "p", "play", "play again", "y", "yes":
			return true, nil
		case "2", "e", "exit", "q", "quit", "n", "no":
			return false, nil
		}
		c.println(c.style("Please type 1 to play again or 2 to exit.", yellow))
	}
}

func (c *Console) printOptions(options []domain.Option) {
	for i, opt := range options {
		c.printf("  %d. %s\n", i+1, opt.Label)
	}
}

// resolveOption maps a 1-based number, value or label to the option value.
// Unresolvable non-empty input is returned raw with ok false.
func resolveOption(input string, options []domain.Option) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", true
	}
	if n, err := strconv.Atoi(input); err == nil {
		if n >= 1 && n <= len(options) {
			return options[n-1].Value, true
		}
		return input, false
	}
	for _, opt := range options {
		if strings.EqualFold(opt.Value, input) || strings.EqualFold(opt.Label, input) {
			return opt.Value, true
		}
	}
	return input, false
}

func resolveOptions(input string, options []domain.Option) ([]string, bool) {
	var values []string
	ok := true
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, valid := resolveOption(part, options)
		if !valid {
			ok = false
		}
		values = append(values, v)
	}
	return values, ok
}

func (c *Console) printf(format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) println(lines ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(lines) == 0 {
		fmt.Fprintln(c.out)
		return
	}
	for _, l := range lines {
		fmt.Fprintln(c.out, l)
	}
}
