package memory

import (
	"sync"

	"trivia-quiz/internal/app"
)

// PlayStore is an in-memory implementation of app.PlayRepository.
type PlayStore struct {
	mu    sync.RWMutex
	plays map[string]*app.Engine
}

func NewPlayStore() *PlayStore {
	return &PlayStore{
		plays: make(map[string]*app.Engine),
	}
}

func (s *PlayStore) Add(playID string, engine *app.Engine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plays[playID] = engine
}

func (s *PlayStore) Get(playID string) (*app.Engine, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	engine, ok := s.plays[playID]
	return engine, ok
}

func (s *PlayStore) Remove(playID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.plays, playID)
}

func (s *PlayStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.plays)
}
