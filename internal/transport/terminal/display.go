package terminal

import (
	"fmt"
	"time"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
)

const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	blue   = "\033[34m"
	cyan   = "\033[36m"
	gray   = "\033[90m"

	rule     = "====================================="
	thinRule = "-------------------------------------"
)

func (c *Console) style(s, code string) string {
	if !c.color || code == "" {
		return s
	}
	return code + s + reset
}

func (c *Console) clearScreen() {
	if c.color {
		c.printf("\033[2J\033[H")
	}
}

func (c *Console) Welcome(name string, limit time.Duration) {
	c.clearScreen()
	c.println(
		c.style(rule, blue),
		c.style("🤯  Trivia CLI", bold+yellow),
		c.style(rule, blue),
		"",
		c.style(fmt.Sprintf("Welcome, %s! Let's get started.", c.style(name, bold)), green),
		fmt.Sprintf("You have %s seconds to complete the quiz.", c.style(fmt.Sprint(int(limit/time.Second)), bold)),
	)
}

func (c *Console) Question(number, total, secondsLeft int, _ domain.Question) {
	c.println("", c.style(fmt.Sprintf("Question %d/%d", number, total), cyan)+" "+c.style(fmt.Sprintf("(%ds left)", secondsLeft), yellow))
}

func (c *Console) Feedback(correct bool, q domain.Question) {
	if correct {
		c.println(c.style("✅ Correct!", green))
		return
	}
	c.println(c.style("❌ Incorrect. The correct answer was: "+q.CorrectLabel(), red))
}

func (c *Console) TimeUp(name string) {
	c.println("", "", c.style("⏲️  TIME IS UP! ⏲️", bold+red), c.style(fmt.Sprintf("Sorry %s, you ran out of time.", name), gray))
}

func (c *Console) TooSlow() {
	c.println("", c.style("Too slow! Time expired.", red))
}

func (c *Console) Aborted() {
	c.println("", c.style("Quiz stopped. Here is how you did so far.", yellow))
}

func (c *Console) Summary(report app.Report) {
	c.println(RenderSummary(report, c.style)...)
}

func (c *Console) Goodbye(name string) {
	c.println("", c.style(fmt.Sprintf("Thank you for playing, %s! Goodbye.", name), bold))
}

// RenderSummary lays out the report as terminal lines. style applies an ANSI
// code; pass a no-op to get plain text.
func RenderSummary(r app.Report, style func(s, code string) string) []string {
	lines := []string{
		"",
		style(rule, blue),
		style(fmt.Sprintf("      📈 Results for %s", r.UserName), bold),
		style(rule, blue),
		"",
		style("Detailed Report:", bold),
		"",
	}

	if len(r.Details) == 0 {
		lines = append(lines, style("No questions were answered.", gray))
	}
	for _, d := range r.Details {
		lines = append(lines, fmt.Sprintf("%d. %s", d.Number, style(d.Prompt, bold)))
		if d.IsCorrect {
			lines = append(lines, style("   ✅ Your Answer: "+d.UserAnswer, green))
		} else {
			lines = append(lines,
				style("   ❌ Your Answer: "+d.UserAnswer, red),
				style("      Correct Answer: "+d.CorrectAnswer, green),
			)
		}
		lines = append(lines, style(fmt.Sprintf("      (Time: %ds)", d.TimeTakenSeconds), gray), "")
	}

	lines = append(lines,
		style(thinRule, blue),
		fmt.Sprintf("Questions attempted: %d/%d", r.Attempted, r.Total),
		fmt.Sprintf("Final Score:    %s / %d (%d%%)", style(fmt.Sprint(r.Correct), yellow), r.Total, r.Percent),
		fmt.Sprintf("Total Time:     %ds", r.ElapsedSeconds),
		fmt.Sprintf("Avg Time:       %.1fs", r.AverageSeconds),
		"",
		remarkLine(r, style),
		style(rule, blue),
		"",
	)
	return lines
}

func remarkLine(r app.Report, style func(s, code string) string) string {
	switch r.Remark {
	case app.RemarkTop:
		return style(fmt.Sprintf("🎉 CONGRATULATIONS, %s! You got everything right!", r.UserName), bold+green)
	case app.RemarkPass:
		return style(fmt.Sprintf("👏 Great job, %s! You passed!", r.UserName), cyan)
	default:
		return style(fmt.Sprintf("📚 Keep studying, %s.", r.UserName), yellow)
	}
}

// Plain is a style func that leaves text untouched.
func Plain(s, _ string) string {
	return s
}
