package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultLeaderboardKey holds the JSON leaderboard blob.
const DefaultLeaderboardKey = "anagram:leaderboard"

const maxUpdateAttempts = 50

// ErrUpdateConflict is returned when optimistic retries are exhausted.
var ErrUpdateConflict = errors.New("leaderboard update conflicted too many times")

// LeaderboardStore keeps the leaderboard as a single Redis string. Updates use
// WATCH/MULTI so concurrent writers never lose an entry.
type LeaderboardStore struct {
	client *redis.Client
	key    string
}

func NewLeaderboardStore(client *redis.Client, key string) *LeaderboardStore {
	if key == "" {
		key = DefaultLeaderboardKey
	}
	return &LeaderboardStore{client: client, key: key}
}

func (s *LeaderboardStore) Load(ctx context.Context) ([]byte, error) {
	blob, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get leaderboard: %w", err)
	}
	return blob, nil
}

func (s *LeaderboardStore) Update(ctx context.Context, fn func(current []byte) ([]byte, error)) error {
	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, s.key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		next, err := fn(current)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.key, next, 0)
			return nil
		})
		return err
	}

	for i := 0; i < maxUpdateAttempts; i++ {
		err := s.client.Watch(ctx, txf, s.key)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return ErrUpdateConflict
}
