package app

import (
	"context"
	"strings"

	"anagram-quiz-service/internal/domain"
	"anagram-quiz-service/internal/leaderboard"
	"github.com/rs/zerolog/log"
)

// LeaderboardStore persists the leaderboard as a single blob.
type LeaderboardStore interface {
	// Load returns the stored blob, or nil when nothing has been saved yet.
	Load(ctx context.Context) ([]byte, error)
	// Update performs an atomic read-modify-write of the blob.
	Update(ctx context.Context, fn func(current []byte) ([]byte, error)) error
}

// LeaderboardService records and reads the capped high-score list.
type LeaderboardService struct {
	store    LeaderboardStore
	capacity int
}

func NewLeaderboardService(store LeaderboardStore, capacity int) *LeaderboardService {
	if capacity <= 0 {
		capacity = leaderboard.DefaultCapacity
	}
	return &LeaderboardService{store: store, capacity: capacity}
}

// Load never fails: unreadable or corrupt data is reported as an empty board.
func (l *LeaderboardService) Load(ctx context.Context) domain.Leaderboard {
	blob, err := l.store.Load(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("leaderboard read failed, serving empty board")
		return domain.Leaderboard{Entries: []domain.LeaderboardEntry{}}
	}
	entries, ok := leaderboard.Decode(blob, l.capacity)
	if !ok {
		log.Warn().Msg("leaderboard data is corrupt, serving empty board")
	}
	return domain.Leaderboard{Entries: entries}
}

// Record inserts name/score and persists the truncated board.
func (l *LeaderboardService) Record(ctx context.Context, name string, score int) (domain.Leaderboard, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Leaderboard{}, domain.ErrEmptyName
	}
	if score < 0 {
		score = 0
	}

	var updated []domain.LeaderboardEntry
	err := l.store.Update(ctx, func(current []byte) ([]byte, error) {
		entries, ok := leaderboard.Decode(current, l.capacity)
		if !ok {
			log.Warn().Msg("leaderboard data is corrupt, starting a new board")
		}
		updated = leaderboard.Insert(entries, domain.LeaderboardEntry{Name: name, Score: score}, l.capacity)
		return leaderboard.Encode(updated)
	})
	if err != nil {
		return domain.Leaderboard{}, err
	}
	return domain.Leaderboard{Entries: updated}, nil
}
