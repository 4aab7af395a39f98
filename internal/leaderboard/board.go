// Package leaderboard implements the capped, score-ordered board and its JSON blob form.
package leaderboard

import (
	"encoding/json"
	"sort"
	"strings"

	"anagram-quiz-service/internal/domain"
)

// DefaultCapacity is the number of entries kept.
const DefaultCapacity = 5

// Insert appends entry, orders by score (ties keep insertion order) and truncates to capacity.
func Insert(entries []domain.LeaderboardEntry, entry domain.LeaderboardEntry, capacity int) []domain.LeaderboardEntry {
	out := make([]domain.LeaderboardEntry, 0, len(entries)+1)
	out = append(out, entries...)
	out = append(out, entry)
	return normalize(out, capacity)
}

func normalize(entries []domain.LeaderboardEntry, capacity int) []domain.LeaderboardEntry {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	if len(entries) > capacity {
		entries = entries[:capacity]
	}
	return entries
}

// Decode parses a persisted blob. Absent or malformed data yields an empty board and ok=false
// for malformed input; entries are re-sorted and truncated so the invariants always hold.
func Decode(blob []byte, capacity int) (entries []domain.LeaderboardEntry, ok bool) {
	if len(strings.TrimSpace(string(blob))) == 0 {
		return []domain.LeaderboardEntry{}, true
	}
	var raw []domain.LeaderboardEntry
	if err := json.Unmarshal(blob, &raw); err != nil {
		return []domain.LeaderboardEntry{}, false
	}
	if raw == nil {
		raw = []domain.LeaderboardEntry{}
	}
	return normalize(raw, capacity), true
}

// Encode renders entries as the persisted JSON array.
func Encode(entries []domain.LeaderboardEntry) ([]byte, error) {
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}
	return json.Marshal(entries)
}
