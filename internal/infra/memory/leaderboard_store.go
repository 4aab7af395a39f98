package memory

import (
	"context"
	"sync"
)

// LeaderboardStore keeps the leaderboard blob in process memory.
type LeaderboardStore struct {
	mu   sync.Mutex
	blob []byte
}

func NewLeaderboardStore() *LeaderboardStore {
	return &LeaderboardStore{}
}

func (s *LeaderboardStore) Load(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.blob == nil {
		return nil, nil
	}
	return append([]byte(nil), s.blob...), nil
}

func (s *LeaderboardStore) Update(_ context.Context, fn func(current []byte) ([]byte, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(append([]byte(nil), s.blob...))
	if err != nil {
		return err
	}
	s.blob = next
	return nil
}
