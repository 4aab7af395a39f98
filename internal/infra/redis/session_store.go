package redis

import (
	"context"
	"sync"
	"time"

	"anagram-quiz-service/internal/app"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// SessionStore is a Redis-aware implementation of app.SessionRepository.
// Notes:
//   - Sessions (and their countdown goroutines) live in process; Redis only
//     carries a liveness marker per session so operators can count active games.
//   - Markers expire after ttl of inactivity and are refreshed on every lookup, so a
//     crashed instance does not leave stale keys behind.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*app.Session
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		sessions: make(map[string]*app.Session),
	}
}

func (s *SessionStore) GetOrCreate(sessionID string, create func(id string) *app.Session) *app.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[sessionID]; ok {
		return session
	}
	session := create(sessionID)
	s.sessions[sessionID] = session
	s.touch(sessionID)
	return session
}

// touch writes the liveness marker with a fresh ttl. Failures are only logged.
func (s *SessionStore) touch(sessionID string) {
	if err := s.client.Set(context.Background(), s.key(sessionID), "1", s.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("session", sessionID).Msg("refresh session marker")
	}
}

func (s *SessionStore) Get(sessionID string) (*app.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, false
	}
	s.touch(sessionID)
	return session, true
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return
	}
	delete(s.sessions, sessionID)
	_ = s.client.Del(context.Background(), s.key(sessionID)).Err()
}

func (s *SessionStore) key(sessionID string) string {
	return "anagram:session:" + sessionID
}
