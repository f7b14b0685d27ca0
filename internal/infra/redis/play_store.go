package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"trivia-quiz/internal/app"
)

// PlayStore is a Redis-aware implementation of app.PlayRepository.
// Engines stay in a local map; Redis only carries a liveness marker per play
// so operators can see active plays across instances.
type PlayStore struct {
	client *redis.Client
	ttl    time.Duration
	mu     sync.RWMutex
	plays  map[string]*app.Engine
}

func NewPlayStore(client *redis.Client, ttl time.Duration) *PlayStore {
	return &PlayStore{
		client: client,
		ttl:    ttl,
		plays:  make(map[string]*app.Engine),
	}
}

func (s *PlayStore) Add(playID string, engine *app.Engine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plays[playID] = engine
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(playID), "1", s.ttl).Err()
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
	if _, ok := s.plays[playID]; !ok {
		return
	}
	delete(s.plays, playID)
	_ = s.client.Del(context.Background(), s.key(playID)).Err()
}

func (s *PlayStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.plays)
}

func (s *PlayStore) key(playID string) string {
	return "trivia:play:" + playID
}
