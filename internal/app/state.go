package app

import (
	"time"

	"trivia-quiz/internal/domain"
)

// SessionState is owned by one Engine and mutated only from its goroutine.
type SessionState struct {
	UserName  string
	TimeLimit time.Duration
	StartTime time.Time
	Score     int
	Results   []domain.QuestionResult
}

func (s *SessionState) record(res domain.QuestionResult) {
	s.Results = append(s.Results, res)
	if res.IsCorrect {
		s.Score++
	}
}

// reset prepares a replay; the player's name survives.
func (s *SessionState) reset() {
	s.Score = 0
	s.Results = nil
	s.StartTime = time.Time{}
}

func (s SessionState) clone() SessionState {
	out := s
	out.Results = append([]domain.QuestionResult(nil), s.Results...)
	return out
}
