package app

import (
	"math"
	"time"
)

// Remark is the closing message tier of a report.
type Remark string

const (
	RemarkTop   Remark = "top"
	RemarkPass  Remark = "pass"
	RemarkStudy Remark = "study"
)

const (
	topPercent  = 100
	passPercent = 70
)

// ResultLine is one formatted row of the detailed report.
type ResultLine struct {
	Number           int    `json:"number"`
	Prompt           string `json:"prompt"`
	UserAnswer       string `json:"userAnswer"`
	CorrectAnswer    string `json:"correctAnswer"`
	IsCorrect        bool   `json:"isCorrect"`
	TimeTakenSeconds int    `json:"timeTakenSeconds"`
}

// Report summarizes one attempt.
type Report struct {
	UserName       string       `json:"userName"`
	Outcome        Phase        `json:"outcome"`
	Attempted      int          `json:"attempted"`
	Correct        int          `json:"correct"`
	Total          int          `json:"total"`
	Percent        int          `json:"percent"`
	ElapsedSeconds int          `json:"elapsedSeconds"`
	AverageSeconds float64      `json:"averageSeconds"`
	Details        []ResultLine `json:"details"`
	Remark         Remark       `json:"remark"`
}

// BuildSummary derives the report for state. elapsed is the time since the
// attempt started, zero if it never did.
func BuildSummary(state SessionState, totalQuestions int, elapsed time.Duration) Report {
	report := Report{
		UserName:  state.UserName,
		Attempted: len(state.Results),
		Correct:   state.Score,
		Total:     totalQuestions,
		Details:   make([]ResultLine, 0, len(state.Results)),
	}

	if totalQuestions > 0 {
		report.Percent = int(math.Round(float64(state.Score) / float64(totalQuestions) * 100))
	}
	if !state.StartTime.IsZero() && elapsed > 0 {
		report.ElapsedSeconds = int(elapsed / time.Second)
	}

	spent := 0
	for i, r := range state.Results {
		spent += r.TimeTakenSeconds
		report.Details = append(report.Details, ResultLine{
			Number:           i + 1,
			Prompt:           r.QuestionPrompt,
			UserAnswer:       r.UserAnswer.String(),
			CorrectAnswer:    r.CorrectAnswer.String(),
			IsCorrect:        r.IsCorrect,
			TimeTakenSeconds: r.TimeTakenSeconds,
		})
	}
	if len(state.Results) > 0 {
		avg := float64(spent) / float64(len(state.Results))
		report.AverageSeconds = math.Round(avg*10) / 10
	}

	report.Remark = remarkFor(report.Percent)
	return report
}

func remarkFor(percent int) Remark {
	switch {
	case percent >= topPercent:
		return RemarkTop
	case percent >= passPercent:
		return RemarkPass
	default:
		return RemarkStudy
	}
}
